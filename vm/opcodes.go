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

// Opcode is a byte code instruction.
type Opcode byte

// VM opcodes. OpLit, OpCall, OpJump and OpJz are followed by a one cell
// operand.
const (
	OpNop Opcode = iota
	OpLit
	OpCall
	OpJump
	OpJz
	OpExit
	OpDup
	OpDrop
	OpSwap
	OpOver
	OpRot
	OpPick
	OpPush
	OpPop
	OpFetch
	OpStore
	OpCFetch
	OpCStore
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpLt
	OpAnd
	OpOr
	OpXor
	OpComma
	OpCComma
	OpHere
	OpDepth
	OpSys
	opCount
)

// opcode names, also the primitive words of the interpreter. Opcodes with an
// operand have no word.
var opcodes = [opCount]string{
	OpNop:    "nop",
	OpLit:    "lit",
	OpCall:   "call",
	OpJump:   "jump",
	OpJz:     "jz",
	OpExit:   "exit",
	OpDup:    "dup",
	OpDrop:   "drop",
	OpSwap:   "swap",
	OpOver:   "over",
	OpRot:    "rot",
	OpPick:   "pick",
	OpPush:   ">r",
	OpPop:    "r>",
	OpFetch:  "@",
	OpStore:  "!",
	OpCFetch: "c@",
	OpCStore: "c!",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "mod",
	OpEq:     "=",
	OpLt:     "<",
	OpAnd:    "and",
	OpOr:     "or",
	OpXor:    "xor",
	OpComma:  ",",
	OpCComma: "c,",
	OpHere:   "here",
	OpDepth:  "depth",
	OpSys:    "sys",
}

func (op Opcode) String() string {
	if op >= opCount {
		return "???"
	}
	return opcodes[op]
}

func (op Opcode) hasOperand() bool {
	switch op {
	case OpLit, OpCall, OpJump, OpJz:
		return true
	}
	return false
}

type primitive struct {
	op          Opcode
	compileOnly bool
	compiler    func(i *Instance)
}

// primitives maps built in words to opcodes. Compiler words run immediately
// in both interpretation and compilation state.
var primitives = map[string]primitive{}

func init() {
	for op, name := range opcodes {
		if Opcode(op).hasOperand() || Opcode(op) == OpNop {
			continue
		}
		primitives[name] = primitive{op: Opcode(op), compileOnly: Opcode(op) == OpExit}
	}
	primitives[":"] = primitive{compiler: (*Instance).colon}
	primitives[";"] = primitive{compileOnly: true, compiler: (*Instance).semicolon}
	primitives["immediate"] = primitive{compiler: (*Instance).immediate}
	primitives["if"] = primitive{compileOnly: true, compiler: (*Instance).compileIf}
	primitives["else"] = primitive{compileOnly: true, compiler: (*Instance).compileElse}
	primitives["then"] = primitive{compileOnly: true, compiler: (*Instance).compileThen}
	primitives["begin"] = primitive{compileOnly: true, compiler: (*Instance).compileBegin}
	primitives["until"] = primitive{compileOnly: true, compiler: (*Instance).compileUntil}
	primitives["("] = primitive{compiler: func(i *Instance) { i.comment = true }}
}
