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

// Package host connects a zForth VM to the outside world.
//
// A Host owns the output and diagnostic channels and implements the three
// boundary crossings between the VM and the host program:
//
//   - the syscall bridge (Dispatch), bound to the VM's sys primitive;
//   - the evaluation loop (RunLine, Include, Interact), which reports aborts;
//   - memory image persistence (Save, Load).
//
// Everything runs on the caller's goroutine. The include syscall re-enters
// the evaluation loop recursively, up to a configurable depth.
package host

import (
	"io"
	"os"

	"github.com/db47h/zforth/vm"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Machine is the evaluator side of the bridge. *vm.Instance implements it.
type Machine interface {
	// Eval evaluates one line of source.
	Eval(line string) vm.Result
	// Push pushes a cell on the data stack.
	Push(v vm.Cell) error
	// Pop pops a cell from the data stack.
	Pop() (vm.Cell, error)
	// Image returns the live memory image.
	Image() vm.Image
}

// DefaultIncludeDepth is the default limit of nested includes.
const DefaultIncludeDepth = 16

// Host is the context shared by the syscall bridge, the evaluation loop and
// image persistence.
type Host struct {
	m        Machine
	out      io.Writer
	diag     io.Writer
	errColor *color.Color
	trColor  *color.Color
	saveFile string
	maxDepth int
	depth    int
	exit     func(code int)
	halted   bool
	calls    map[vm.SyscallID]Handler
	unknown  Handler
}

// Option interface
type Option func(*Host) error

// Output sets the output channel used by the emit, print and tell syscalls.
// If w has a Flush method, it is flushed whenever output must be visible.
// The default is os.Stdout.
func Output(w io.Writer) Option {
	return func(h *Host) error { h.out = w; return nil }
}

// Diag sets the diagnostic channel. The default is os.Stderr.
func Diag(w io.Writer) Option {
	return func(h *Host) error { h.diag = w; return nil }
}

// Color forces colored diagnostics and trace output on or off. Without this
// option, github.com/fatih/color decides, based on whether os.Stdout is a
// terminal. Since diagnostics go to the Diag channel, callers writing them to
// another terminal, like cmd/zforth with os.Stderr, should set it explicitly.
func Color(enable bool) Option {
	return func(h *Host) error {
		for _, c := range []*color.Color{h.errColor, h.trColor} {
			if enable {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
		return nil
	}
}

// SaveFile sets the file name used by the save syscall. The default is
// DefaultSaveFile.
func SaveFile(name string) Option {
	return func(h *Host) error {
		if name == "" {
			return errors.New("empty save file name")
		}
		h.saveFile = name
		return nil
	}
}

// MaxIncludeDepth sets the maximum nesting of included files.
func MaxIncludeDepth(depth int) Option {
	return func(h *Host) error {
		if depth < 1 {
			return errors.Errorf("invalid include depth %d", depth)
		}
		h.maxDepth = depth
		return nil
	}
}

// Exit sets the function called by the quit syscall. The default is os.Exit.
func Exit(fn func(code int)) Option {
	return func(h *Host) error { h.exit = fn; return nil }
}

// BindSyscall binds the provided handler to the given syscall id, replacing
// any previous binding, including the default ones.
func BindSyscall(id vm.SyscallID, handler Handler) Option {
	return func(h *Host) error {
		h.calls[id] = handler
		return nil
	}
}

// Unhandled sets the handler called for ids without a binding. The default
// handler reports the id on the diagnostic channel and returns vm.OK.
func Unhandled(handler Handler) Option {
	return func(h *Host) error { h.unknown = handler; return nil }
}

// SetOptions sets the provided options.
func (h *Host) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Host for the given machine. The machine's sys primitive
// must be bound to the Dispatch method; NewVM does all the wiring.
func New(m Machine, opts ...Option) (*Host, error) {
	h := &Host{
		m:        m,
		out:      os.Stdout,
		diag:     os.Stderr,
		errColor: color.New(color.FgRed),
		trColor:  color.New(color.Bold, color.FgBlack),
		saveFile: DefaultSaveFile,
		maxDepth: DefaultIncludeDepth,
		exit:     os.Exit,
		calls:    defaultCalls(),
		unknown:  unhandled,
	}
	if err := h.SetOptions(opts...); err != nil {
		return nil, err
	}
	return h, nil
}

// NewVM creates a VM instance and a Host bound to it. If trace is true, the
// VM traces execution on the host's diagnostic channel.
func NewVM(trace bool, vmOpts []vm.Option, opts ...Option) (*vm.Instance, *Host, error) {
	i, err := vm.New(vmOpts...)
	if err != nil {
		return nil, nil, err
	}
	h, err := New(i, opts...)
	if err != nil {
		return nil, nil, err
	}
	wire := []vm.Option{vm.Syscall(h.Dispatch)}
	if trace {
		wire = append(wire, vm.Trace(h.TraceWriter()))
	}
	if err = i.SetOptions(wire...); err != nil {
		return nil, nil, err
	}
	return i, h, nil
}

// Machine returns the machine bound to h.
func (h *Host) Machine() Machine {
	return h.m
}

// Halted returns true once the quit syscall has run. A halted host ignores
// syscalls and input lines.
func (h *Host) Halted() bool {
	return h.halted
}

type traceWriter struct {
	h *Host
}

func (w traceWriter) Write(p []byte) (int, error) {
	if _, err := w.h.trColor.Fprint(w.h.diag, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// TraceWriter returns a writer that styles everything written to it as
// trace output on the diagnostic channel.
func (h *Host) TraceWriter() io.Writer {
	return traceWriter{h}
}
