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
	"io"
	"math"
	"strconv"

	"fortio.org/safecast"
	"github.com/pkg/errors"
)

// Cell is the raw type stored on the stacks. Cells are stored in the memory
// image as little endian IEEE 754 doubles, CellSize bytes each.
type Cell float64

// Int converts c to an int, truncating towards zero. It fails if c is NaN,
// infinite, or does not fit in an int.
func (c Cell) Int() (int, error) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("cell %v is not a number", f)
	}
	n, err := safecast.Truncate[int](f)
	return n, errors.Wrapf(err, "cell %v", f)
}

// String returns the cell in the VM's native print format (%.14g).
func (c Cell) String() string {
	return strconv.FormatFloat(float64(c), 'g', 14, 64)
}

const (
	defaultImageSize = 16384
	minImageSize     = 256
	defaultDataSize  = 256
	defaultAddrSize  = 256
)

// Instance represents a VM instance.
type Instance struct {
	mem      Image
	size     int
	data     []Cell
	sp       int
	address  []Cell
	rsp      int
	sys      SyscallHandler
	trace    io.Writer
	pending  pending
	comment  bool
	insCount int64
}

// Option interface
type Option func(*Instance) error

// Size sets the memory image size in bytes. The image is allocated once by
// New, the option is rejected afterwards. The default is 16384 bytes.
func Size(size int) Option {
	return func(i *Instance) error {
		if i.mem != nil {
			return errors.New("memory image size cannot be changed")
		}
		if size < minImageSize {
			return errors.Errorf("memory image size %d too small, need at least %d bytes", size, minImageSize)
		}
		i.size = size
		return nil
	}
}

// DataSize sets the data stack size in cells. It will not erase the stack, but
// data may be lost if set to a smaller size. The default is 256 cells.
func DataSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid data stack size %d", size)
		}
		t := make([]Cell, size)
		if i.sp > size {
			i.sp = size
		}
		copy(t, i.data[:i.sp])
		i.data = t
		return nil
	}
}

// AddressSize sets the address (return) stack size in cells. It will not
// erase the stack, but data may be lost if set to a smaller size. The default
// is 256 cells.
func AddressSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid address stack size %d", size)
		}
		t := make([]Cell, size)
		if i.rsp > size {
			i.rsp = size
		}
		copy(t, i.address[:i.rsp])
		i.address = t
		return nil
	}
}

// Trace enables execution tracing to w. A nil writer disables tracing.
func Trace(w io.Writer) Option {
	return func(i *Instance) error { i.trace = w; return nil }
}

// Syscall sets the handler invoked by the sys primitive.
func Syscall(h SyscallHandler) Option {
	return func(i *Instance) error { i.sys = h; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance with an empty dictionary. Call Bootstrap to
// populate it with the default words, or load a saved image into the slice
// returned by Image.
//
// Options will be set by calling SetOptions.
func New(opts ...Option) (*Instance, error) {
	i := &Instance{size: defaultImageSize}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.data == nil {
		i.data = make([]Cell, defaultDataSize)
	}
	if i.address == nil {
		i.address = make([]Cell, defaultAddrSize)
	}
	i.mem = make(Image, i.size)
	i.setVar(varHere, dictStart)
	return i, nil
}

// Image returns the live memory image. Its length never changes. Callers
// should not retain it: the VM owns the buffer.
func (i *Instance) Image() Image {
	return i.mem
}

// Data returns the data stack, bottom first. Note that value changes will be
// reflected in the instance's stack, but re-slicing will not affect it. To
// add/remove values on the data stack, use the Push and Pop functions.
func (i *Instance) Data() []Cell {
	return i.data[:i.sp]
}

// Address returns the address stack, bottom first.
func (i *Instance) Address() []Cell {
	return i.address[:i.rsp]
}

// Depth returns the data stack depth.
func (i *Instance) Depth() int {
	return i.sp
}

// Here returns the address of the first free byte of the dictionary. If the
// image holds an invalid value, Here returns the image size.
func (i *Instance) Here() int {
	c, err := i.mem.Cell(varHere)
	if err != nil {
		return len(i.mem)
	}
	n, err := c.Int()
	if err != nil || n < 0 || n > len(i.mem) {
		return len(i.mem)
	}
	return n
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
