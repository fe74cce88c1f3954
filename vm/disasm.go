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
	"fmt"
	"io"

	"github.com/db47h/zforth/internal/hio"
)

// Disassemble writes a disassembly of the instruction at position pc to the
// specified io.Writer and returns the position of the next instruction and
// any write error.
func Disassemble(mem Image, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*hio.ErrWriter)
	if ew == nil {
		ew = hio.NewErrWriter(w)
	}
	if pc < 0 || pc >= len(mem) {
		io.WriteString(ew, "???")
		return pc, ew.Err
	}
	op := Opcode(mem[pc])
	io.WriteString(ew, op.String())
	pc++
	if op.hasOperand() {
		v, err := mem.Cell(pc)
		if err != nil {
			io.WriteString(ew, " ???")
			return len(mem), ew.Err
		}
		io.WriteString(ew, " ")
		io.WriteString(ew, v.String())
		pc += CellSize
	}
	return pc, ew.Err
}

// DisassembleWord writes a disassembly of the named word, one instruction per
// line, up to and including the first exit instruction.
func (i *Instance) DisassembleWord(name string, w io.Writer) error {
	pc, ok := i.Lookup(name)
	if !ok {
		return NotAWord
	}
	ew := hio.NewErrWriter(w)
	for pc < len(i.mem) {
		op := Opcode(i.mem[pc])
		fmt.Fprintf(ew, "% 8d\t", pc)
		pc, _ = Disassemble(i.mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
		if op == OpExit {
			break
		}
	}
	return nil
}

func (i *Instance) traceOp(pc int) {
	ew := hio.NewErrWriter(i.trace)
	fmt.Fprintf(ew, "% 8d\t", pc)
	Disassemble(i.mem, pc, ew)
	fmt.Fprintf(ew, "\t%v\n", i.Data())
}
