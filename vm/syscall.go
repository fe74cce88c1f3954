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

import "math"

// SyscallID identifies a host callback raised by the sys primitive.
//
// Ids below SysUser are reserved by the VM. Applications define their own
// calls as SysUser+k.
type SyscallID int

// Core syscalls.
const (
	SysEmit SyscallID = iota
	SysPrint
	SysTell

	SysUser SyscallID = 128
)

// SyscallHandler is the function prototype for the host side of the sys
// primitive.
//
// aux is nil on the first invocation. A handler that needs a word argument
// returns NeedsInput; the VM then calls it again with the next
// whitespace-delimited word of input, which may come from a later call to
// Eval. When it returns OK, execution resumes right after the sys
// instruction. Any other non-OK result aborts the evaluation.
type SyscallHandler func(id SyscallID, aux *string) Result

// syscallID converts a cell to a syscall id. Cells that are not integers map
// to -1, which no handler binds.
func syscallID(c Cell) SyscallID {
	f := float64(c)
	if math.IsNaN(f) || f != math.Trunc(f) {
		return -1
	}
	n, err := c.Int()
	if err != nil {
		return -1
	}
	return SyscallID(n)
}

type pendingKind int

const (
	pendNone pendingKind = iota
	pendName
	pendSyscall
)

// pending records a primitive waiting for the next input word. For a
// syscall raised from byte code, pc and frames hold the suspended execution:
// the next instruction and the return stack entries above the run's base.
type pending struct {
	kind    pendingKind
	id      SyscallID
	suspend bool
	pc      int
	frames  []Cell
}

// sysCall invokes the syscall handler. It returns false if the handler asked
// for more input, in which case the current execution must be unwound.
func (i *Instance) sysCall(id SyscallID, aux *string) bool {
	if i.sys == nil {
		abort(InternalError)
	}
	switch r := i.sys(id, aux); r {
	case OK:
		return true
	case NeedsInput:
		i.pending = pending{kind: pendSyscall, id: id}
		return false
	default:
		abort(r)
	}
	return true
}
