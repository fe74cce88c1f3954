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
	"encoding/binary"
	"math"
)

// CellSize is the number of bytes used by a Cell in the memory image.
const CellSize = 8

// Image encapsulates a VM's memory: a fixed size byte buffer. All accessors
// check their bounds and return OutsideMemory rather than panicking.
type Image []byte

func (i Image) slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(i) || n > len(i)-off {
		return nil, OutsideMemory
	}
	return i[off : off+n : off+n], nil
}

// Span returns the n bytes starting at offset off. Both values are cells,
// usually popped from the data stack. The returned slice aliases the image.
//
// Span returns OutsideMemory if either cell is not a valid integer or if
// off+n is past the end of the image. off+n == len(i) is valid.
func (i Image) Span(off, n Cell) ([]byte, error) {
	o, err := off.Int()
	if err != nil {
		return nil, OutsideMemory
	}
	l, err := n.Int()
	if err != nil {
		return nil, OutsideMemory
	}
	return i.slice(o, l)
}

// ReadBytes returns a copy of the count bytes starting at off.
func (i Image) ReadBytes(off, count int) ([]byte, error) {
	b, err := i.slice(off, count)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// WriteBytes copies b into the image at offset off. Nothing is written if b
// does not fit.
func (i Image) WriteBytes(off int, b []byte) error {
	dst, err := i.slice(off, len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Cell returns the cell stored at offset off.
func (i Image) Cell(off int) (Cell, error) {
	b, err := i.slice(off, CellSize)
	if err != nil {
		return 0, err
	}
	return Cell(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
}

// SetCell stores v at offset off.
func (i Image) SetCell(off int, v Cell) error {
	b, err := i.slice(off, CellSize)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, math.Float64bits(float64(v)))
	return nil
}
