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

package host

import (
	"fmt"
	"io"
	"math"

	"github.com/db47h/zforth/internal/hio"
	"github.com/db47h/zforth/vm"
)

// Application syscalls, in the user band.
const (
	SysQuit vm.SyscallID = vm.SysUser + iota
	SysSin
	SysInclude
	SysSave
)

// Handler is the function prototype for syscall handlers. aux is the word
// argument, nil until the handler has returned vm.NeedsInput once.
type Handler func(h *Host, id vm.SyscallID, aux *string) vm.Result

func defaultCalls() map[vm.SyscallID]Handler {
	return map[vm.SyscallID]Handler{
		vm.SysEmit:  emitChar,
		vm.SysPrint: printCell,
		vm.SysTell:  tellString,
		SysQuit:     quitHost,
		SysSin:      sine,
		SysInclude:  includeFile,
		SysSave:     saveImage,
	}
}

// Dispatch runs the handler bound to id. Its signature matches
// vm.SyscallHandler.
//
// Ids without a binding go to the Unhandled handler and never abort the
// evaluation by default. Once the host is halted, Dispatch does nothing.
func (h *Host) Dispatch(id vm.SyscallID, aux *string) vm.Result {
	if h.halted {
		return vm.OK
	}
	fn := h.calls[id]
	if fn == nil {
		fn = h.unknown
	}
	return fn(h, id, aux)
}

// write sends p to the output channel and flushes it. Output errors are
// reported, not propagated to the VM.
func (h *Host) write(p []byte) {
	if _, err := h.out.Write(p); err != nil {
		h.reportf("output error: %v\n", err)
		return
	}
	h.flush()
}

func (h *Host) flush() {
	if err := hio.Flush(h.out); err != nil {
		h.reportf("output error: %v\n", err)
	}
}

func (h *Host) reportf(format string, args ...interface{}) {
	fmt.Fprintf(h.diag, format, args...)
	hio.Flush(h.diag)
}

func unhandled(h *Host, id vm.SyscallID, _ *string) vm.Result {
	h.reportf("unhandled syscall %d\n", id)
	return vm.OK
}

func emitChar(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	c, err := h.m.Pop()
	if err != nil {
		return vm.ResultOf(err)
	}
	h.write([]byte{byte(int64(c))})
	return vm.OK
}

func printCell(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	c, err := h.m.Pop()
	if err != nil {
		return vm.ResultOf(err)
	}
	if _, err = io.WriteString(h.out, c.String()+" "); err != nil {
		h.reportf("output error: %v\n", err)
	}
	return vm.OK
}

func tellString(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	n, err := h.m.Pop()
	if err != nil {
		return vm.ResultOf(err)
	}
	off, err := h.m.Pop()
	if err != nil {
		return vm.ResultOf(err)
	}
	b, err := h.m.Image().Span(off, n)
	if err != nil {
		return vm.ResultOf(err)
	}
	h.write(b)
	return vm.OK
}

func quitHost(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	h.write([]byte{'\n'})
	h.halted = true
	h.exit(0)
	return vm.OK
}

func sine(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	c, err := h.m.Pop()
	if err != nil {
		return vm.ResultOf(err)
	}
	return vm.ResultOf(h.m.Push(vm.Cell(math.Sin(float64(c)))))
}

func includeFile(h *Host, _ vm.SyscallID, aux *string) vm.Result {
	if aux == nil {
		return vm.NeedsInput
	}
	// errors are reported by Include
	h.Include(*aux)
	return vm.OK
}

func saveImage(h *Host, _ vm.SyscallID, _ *string) vm.Result {
	h.Save(h.saveFile)
	return vm.OK
}
