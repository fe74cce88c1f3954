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

package main

import (
	"io"
	"strconv"

	"github.com/db47h/zforth/internal/hio"
	"github.com/db47h/zforth/vm"
)

func dumpCells(w io.Writer, a []vm.Cell) {
	for k, c := range a {
		if k > 0 {
			w.Write([]byte{' '})
		}
		io.WriteString(w, c.String())
	}
}

func dumpBytes(w io.Writer, a []byte) {
	b := make([]byte, 0, 4)
	for k, c := range a {
		b = b[:0]
		if k > 0 {
			b = append(b, ' ')
		}
		w.Write(strconv.AppendInt(b, int64(c), 10))
	}
}

// dumpVM dumps the virtual machine stacks and the used part of the memory
// image to the specified io.Writer.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := hio.NewErrWriter(w)
	ew.Write([]byte{'\x1C'})
	dumpCells(ew, i.Data())
	ew.Write([]byte{'\x1D'})
	dumpCells(ew, i.Address())
	ew.Write([]byte{'\x1D'})
	dumpBytes(ew, i.Image()[:i.Here()])
	return ew.Err
}
