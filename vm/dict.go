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

// Dictionary layout. The first cells of the image hold the interpreter
// variables, so that a saved image restores definitions and compilation
// state.
//
// Each word header is laid out as:
//
//	link  Cell   address of the previous header, 0 ends the list
//	flags byte
//	len   byte   name length
//	name  [len]byte
//	code  ...    byte code, terminated by OpExit
const (
	varHere     = 0
	varLatest   = CellSize
	varState    = 2 * CellSize
	varDefining = 3 * CellSize
	dictStart   = 4 * CellSize
)

const (
	flagImmediate = 1 << iota
)

const (
	maxNameLen = 255
	// link, flags and name length
	minHeaderSize = CellSize + 2
)

func abort(r Result) {
	panic(r)
}

func (i *Instance) cellAt(off int) Cell {
	v, err := i.mem.Cell(off)
	if err != nil {
		abort(OutsideMemory)
	}
	return v
}

func (i *Instance) byteAt(off int) byte {
	if off < 0 || off >= len(i.mem) {
		abort(OutsideMemory)
	}
	return i.mem[off]
}

func (i *Instance) addr(c Cell) int {
	n, err := c.Int()
	if err != nil || n < 0 || n >= len(i.mem) {
		abort(OutsideMemory)
	}
	return n
}

func (i *Instance) setVar(v int, c Cell) {
	if err := i.mem.SetCell(v, c); err != nil {
		abort(OutsideMemory)
	}
}

func (i *Instance) varInt(v int) int {
	n, err := i.cellAt(v).Int()
	if err != nil {
		abort(InternalError)
	}
	return n
}

func (i *Instance) compiling() bool {
	return i.cellAt(varState) != 0
}

// comma appends a cell to the dictionary.
func (i *Instance) comma(v Cell) {
	h := i.varInt(varHere)
	if err := i.mem.SetCell(h, v); err != nil {
		abort(OutsideMemory)
	}
	i.setVar(varHere, Cell(h+CellSize))
}

// commaByte appends a byte to the dictionary.
func (i *Instance) commaByte(b byte) {
	h := i.varInt(varHere)
	if err := i.mem.WriteBytes(h, []byte{b}); err != nil {
		abort(OutsideMemory)
	}
	i.setVar(varHere, Cell(h+1))
}

// header writes a new word header at HERE and returns its address. The word
// is not linked into the dictionary.
func (i *Instance) header(name string) int {
	if len(name) > maxNameLen {
		abort(InternalError)
	}
	h := i.varInt(varHere)
	i.comma(i.cellAt(varLatest))
	i.commaByte(0)
	i.commaByte(byte(len(name)))
	for k := 0; k < len(name); k++ {
		i.commaByte(name[k])
	}
	return h
}

func (i *Instance) nameOf(hdr int) string {
	n := int(i.byteAt(hdr + CellSize + 1))
	b, err := i.mem.slice(hdr+CellSize+2, n)
	if err != nil {
		abort(OutsideMemory)
	}
	return string(b)
}

// code returns the address of the byte code of the word at hdr.
func (i *Instance) code(hdr int) int {
	return hdr + CellSize + 2 + int(i.byteAt(hdr+CellSize+1))
}

func (i *Instance) flags(hdr int) byte {
	return i.byteAt(hdr + CellSize)
}

// find looks up name in the dictionary, newest definition first. A link
// chain longer than the image can hold is a cycle and aborts.
func (i *Instance) find(name string) (int, bool) {
	limit := len(i.mem) / minHeaderSize
	for hdr, n := i.varInt(varLatest), 0; hdr != 0; n++ {
		if n > limit {
			abort(InternalError)
		}
		if i.nameOf(hdr) == name {
			return hdr, true
		}
		hdr = i.addr(i.cellAt(hdr))
	}
	return 0, false
}

// Lookup returns the code address of the named word. ok is false if the word
// is not found or the dictionary is corrupt.
func (i *Instance) Lookup(name string) (addr int, ok bool) {
	defer func() {
		if e := recover(); e != nil {
			if _, isResult := e.(Result); !isResult {
				panic(e)
			}
			addr, ok = 0, false
		}
	}()
	hdr, ok := i.find(name)
	if !ok {
		return 0, false
	}
	return i.code(hdr), true
}

func (i *Instance) colon() {
	i.pending = pending{kind: pendName}
}

func (i *Instance) define(name string) {
	i.setVar(varDefining, Cell(i.header(name)))
	i.setVar(varState, 1)
}

func (i *Instance) semicolon() {
	i.commaByte(byte(OpExit))
	if d := i.varInt(varDefining); d != 0 {
		i.setVar(varLatest, Cell(d))
	}
	i.setVar(varDefining, 0)
	i.setVar(varState, 0)
}

func (i *Instance) immediate() {
	hdr := i.varInt(varLatest)
	if hdr == 0 {
		return
	}
	f := hdr + CellSize
	i.mem[i.addr(Cell(f))] |= flagImmediate
}

func (i *Instance) compileIf() {
	i.commaByte(byte(OpJz))
	i.push(Cell(i.varInt(varHere)))
	i.comma(0)
}

func (i *Instance) compileElse() {
	i.commaByte(byte(OpJump))
	fwd := i.varInt(varHere)
	i.comma(0)
	i.patch(i.pop(), i.varInt(varHere))
	i.push(Cell(fwd))
}

func (i *Instance) compileThen() {
	i.patch(i.pop(), i.varInt(varHere))
}

func (i *Instance) compileBegin() {
	i.push(Cell(i.varInt(varHere)))
}

func (i *Instance) compileUntil() {
	i.commaByte(byte(OpJz))
	i.comma(i.pop())
}

// patch stores the target address in the operand at ref.
func (i *Instance) patch(ref Cell, target int) {
	if err := i.mem.SetCell(i.addr(ref), Cell(target)); err != nil {
		abort(OutsideMemory)
	}
}
