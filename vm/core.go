// This file is part of zforth - https://github.com/db47h/zforth
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"math"
)

func (i *Instance) push(v Cell) {
	if i.sp >= len(i.data) {
		abort(DataStackOverrun)
	}
	i.data[i.sp] = v
	i.sp++
}

func (i *Instance) pop() Cell {
	if i.sp <= 0 {
		abort(DataStackUnderrun)
	}
	i.sp--
	return i.data[i.sp]
}

func (i *Instance) rpush(v Cell) {
	if i.rsp >= len(i.address) {
		abort(ReturnStackOverrun)
	}
	i.address[i.rsp] = v
	i.rsp++
}

func (i *Instance) rpop() Cell {
	if i.rsp <= 0 {
		abort(ReturnStackUnderrun)
	}
	i.rsp--
	return i.address[i.rsp]
}

// Push pushes the argument on top of the data stack. It returns
// DataStackOverrun if the stack is full.
func (i *Instance) Push(v Cell) error {
	if i.sp >= len(i.data) {
		return DataStackOverrun
	}
	i.data[i.sp] = v
	i.sp++
	return nil
}

// Pop pops the value on top of the data stack and returns it. It returns
// DataStackUnderrun if the stack is empty.
func (i *Instance) Pop() (Cell, error) {
	if i.sp <= 0 {
		return 0, DataStackUnderrun
	}
	i.sp--
	return i.data[i.sp], nil
}

// Rpush pushes the argument on top of the address stack.
func (i *Instance) Rpush(v Cell) error {
	if i.rsp >= len(i.address) {
		return ReturnStackOverrun
	}
	i.address[i.rsp] = v
	i.rsp++
	return nil
}

// Rpop pops the value on top of the address stack and returns it.
func (i *Instance) Rpop() (Cell, error) {
	if i.rsp <= 0 {
		return 0, ReturnStackUnderrun
	}
	i.rsp--
	return i.address[i.rsp], nil
}

func flag(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

func bits(c Cell) int64 {
	return int64(float64(c))
}

// run executes byte code starting at pc until the outermost OpExit.
func (i *Instance) run(pc int) {
	i.exec(pc, i.rsp)
}

// resume continues an execution suspended by a syscall waiting for input.
func (i *Instance) resume(p pending) {
	base := i.rsp
	for _, f := range p.frames {
		i.rpush(f)
	}
	i.exec(p.pc, base)
}

func (i *Instance) exec(pc, base int) {
	for {
		if i.trace != nil {
			i.traceOp(pc)
		}
		op := Opcode(i.byteAt(pc))
		pc++
		i.insCount++
		switch op {
		case OpLit:
			i.push(i.cellAt(pc))
			pc += CellSize
		case OpCall:
			target := i.addr(i.cellAt(pc))
			i.rpush(Cell(pc + CellSize))
			pc = target
		case OpJump:
			pc = i.addr(i.cellAt(pc))
		case OpJz:
			if i.pop() == 0 {
				pc = i.addr(i.cellAt(pc))
			} else {
				pc += CellSize
			}
		case OpExit:
			if i.rsp <= base {
				return
			}
			pc = i.addr(i.rpop())
		case OpSys:
			if !i.sysCall(syscallID(i.pop()), nil) {
				// waiting for input: suspend until the next word
				i.pending.suspend = true
				i.pending.pc = pc
				i.pending.frames = append([]Cell(nil), i.address[base:i.rsp]...)
				i.rsp = base
				return
			}
		default:
			i.op(op)
		}
	}
}

// op executes a single instruction without operand.
func (i *Instance) op(op Opcode) {
	switch op {
	case OpNop:
	case OpDup:
		v := i.pop()
		i.push(v)
		i.push(v)
	case OpDrop:
		i.pop()
	case OpSwap:
		b, a := i.pop(), i.pop()
		i.push(b)
		i.push(a)
	case OpOver:
		b, a := i.pop(), i.pop()
		i.push(a)
		i.push(b)
		i.push(a)
	case OpRot:
		c, b, a := i.pop(), i.pop(), i.pop()
		i.push(b)
		i.push(c)
		i.push(a)
	case OpPick:
		n, err := i.pop().Int()
		if err != nil || n < 0 || n >= i.sp {
			abort(DataStackUnderrun)
		}
		i.push(i.data[i.sp-1-n])
	case OpPush:
		i.rpush(i.pop())
	case OpPop:
		i.push(i.rpop())
	case OpFetch:
		i.push(i.cellAt(i.addr(i.pop())))
	case OpStore:
		a := i.addr(i.pop())
		v := i.pop()
		if err := i.mem.SetCell(a, v); err != nil {
			abort(OutsideMemory)
		}
	case OpCFetch:
		i.push(Cell(i.byteAt(i.addr(i.pop()))))
	case OpCStore:
		a := i.addr(i.pop())
		i.mem[a] = byte(bits(i.pop()))
	case OpAdd:
		b := i.pop()
		i.push(i.pop() + b)
	case OpSub:
		b := i.pop()
		i.push(i.pop() - b)
	case OpMul:
		b := i.pop()
		i.push(i.pop() * b)
	case OpDiv:
		b := i.pop()
		i.push(i.pop() / b)
	case OpMod:
		b := i.pop()
		i.push(Cell(math.Mod(float64(i.pop()), float64(b))))
	case OpEq:
		b := i.pop()
		i.push(flag(i.pop() == b))
	case OpLt:
		b := i.pop()
		i.push(flag(i.pop() < b))
	case OpAnd:
		b := i.pop()
		i.push(Cell(bits(i.pop()) & bits(b)))
	case OpOr:
		b := i.pop()
		i.push(Cell(bits(i.pop()) | bits(b)))
	case OpXor:
		b := i.pop()
		i.push(Cell(bits(i.pop()) ^ bits(b)))
	case OpComma:
		i.comma(i.pop())
	case OpCComma:
		i.commaByte(byte(bits(i.pop())))
	case OpHere:
		i.push(Cell(i.varInt(varHere)))
	case OpDepth:
		i.push(Cell(i.sp))
	case OpSys:
		i.sysCall(syscallID(i.pop()), nil)
	default:
		abort(InternalError)
	}
}
