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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/zforth/internal/hio"
	"github.com/db47h/zforth/vm"
	"github.com/pkg/errors"
)

// RunLine evaluates one line of source. If the evaluation aborts, the line and
// the diagnostic are reported on the diagnostic channel; the host stays
// usable. The output channel is flushed before RunLine returns.
func (h *Host) RunLine(line string) vm.Result {
	if h.halted {
		return vm.OK
	}
	r := h.m.Eval(line)
	h.flush()
	if msg, ok := Classify(r); ok {
		h.errColor.Fprintf(h.diag, "\n%s\nabort: %s\n", line, msg)
		hio.Flush(h.diag)
	}
	return r
}

// Include evaluates the named file line by line. Each line is independent:
// an abort is reported and evaluation continues with the next line.
//
// Errors opening or reading the file are reported before being returned.
func (h *Host) Include(fileName string) error {
	if h.depth >= h.maxDepth {
		err := errors.Errorf("include %s: nesting deeper than %d", fileName, h.maxDepth)
		h.reportf("%v\n", err)
		return err
	}
	f, err := os.Open(fileName)
	if err != nil {
		h.reportf("error opening file '%s': %v\n", fileName, err)
		return errors.Wrap(err, "include failed")
	}
	defer f.Close()
	h.depth++
	defer func() { h.depth-- }()
	if err = h.feed(f, false); err != nil {
		h.reportf("error reading file '%s': %v\n", fileName, err)
	}
	return err
}

// Interact evaluates lines read from r until EOF or until the host is
// halted. Empty lines are skipped. EOF is a normal exit condition and returns
// nil.
func (h *Host) Interact(r io.Reader) error {
	return h.feed(r, true)
}

func (h *Host) feed(r io.Reader, interactive bool) error {
	br := bufio.NewReader(r)
	for !h.halted {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimRight(line, "\r\n")
			if !interactive || line != "" {
				h.RunLine(line)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "read failed")
		}
	}
	return nil
}

// Prelude defines the words bound to the application syscalls: quit, sin,
// include and save. It is meant to run right after vm.(*Instance).Bootstrap.
func (h *Host) Prelude() error {
	for _, w := range []struct {
		name string
		id   vm.SyscallID
	}{
		{"quit", SysQuit},
		{"sin", SysSin},
		{"include", SysInclude},
		{"save", SysSave},
	} {
		line := fmt.Sprintf(": %s %d sys ;", w.name, w.id)
		if r := h.RunLine(line); r.Aborted() {
			return errors.Wrapf(r, "prelude %q", line)
		}
	}
	return nil
}
