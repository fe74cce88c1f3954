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

package host_test

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/zforth/host"
	"github.com/db47h/zforth/vm"
)

func TestEmit(t *testing.T) {
	e := setup(t)
	if err := e.i.Push(65); err != nil {
		t.Fatal(err)
	}
	n := e.out.flushes
	if r := e.h.Dispatch(vm.SysEmit, nil); r != vm.OK {
		t.Fatal(r)
	}
	e.checkOut(t, "A")
	if e.out.flushes != n+1 {
		t.Error("emit did not flush output")
	}
	e.run(t, "66 emit 10 emit", vm.OK)
	e.checkOut(t, "AB\n")
}

func TestPrint(t *testing.T) {
	e := setup(t)
	e.run(t, "42 . 0.5 . -3 .", vm.OK)
	e.checkOut(t, "42 0.5 -3 ")
	e.run(t, ".", vm.DataStackUnderrun)
}

func TestTell(t *testing.T) {
	e := setup(t)
	e.run(t, "here 72 c, 105 c, here over - tell", vm.OK)
	e.checkOut(t, "Hi")

	end := len(e.i.Image())
	e.out.Reset()
	e.run(t, strconv.Itoa(end-5)+" 5 tell", vm.OK)
	e.checkOut(t, "\x00\x00\x00\x00\x00")
	e.run(t, strconv.Itoa(end)+" 0 tell", vm.OK)

	e.out.Reset()
	e.diag.Reset()
	e.run(t, strconv.Itoa(end-5)+" 6 tell", vm.OutsideMemory)
	e.checkOut(t, "")
	if !strings.HasSuffix(e.diag.String(), "abort: outside memory\n") {
		t.Errorf("unexpected report %q", e.diag.String())
	}
}

func TestUnhandled(t *testing.T) {
	e := setup(t)
	e.run(t, "999 sys 1 .", vm.OK)
	e.checkOut(t, "1 ")
	if s := e.diag.String(); s != "unhandled syscall 999\n" {
		t.Errorf("unexpected report %q", s)
	}
}

func TestBindSyscall(t *testing.T) {
	var got []string
	e := setup(t,
		host.BindSyscall(200, func(h *host.Host, _ vm.SyscallID, aux *string) vm.Result {
			if aux == nil {
				return vm.NeedsInput
			}
			got = append(got, *aux)
			return vm.OK
		}),
		host.Unhandled(func(*host.Host, vm.SyscallID, *string) vm.Result {
			return vm.InternalError
		}))
	e.run(t, "200 sys hello 200 sys world", vm.OK)
	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Errorf("unexpected arguments %v", got)
	}
	e.run(t, "201 sys", vm.InternalError)
}

func TestQuit(t *testing.T) {
	e := setup(t)
	e.run(t, "65 emit quit 66 emit", vm.OK)
	e.checkOut(t, "A\n")
	if len(e.code) != 1 || e.code[0] != 0 {
		t.Fatalf("unexpected exit codes %v", e.code)
	}
	if !e.h.Halted() {
		t.Fatal("host not halted")
	}
	e.run(t, "67 emit", vm.OK)
	e.checkOut(t, "A\n")
}

func TestSin(t *testing.T) {
	e := setup(t)
	e.run(t, "0 sin", vm.OK)
	v, err := e.i.Pop()
	if err != nil || v != 0 {
		t.Fatalf("0 sin: got %v, %v", v, err)
	}
	e.run(t, "1.5707963267948966 sin", vm.OK)
	if v, _ = e.i.Pop(); math.Abs(float64(v)-1) > 1e-12 {
		t.Fatalf("pi/2 sin: got %v", v)
	}
	e.run(t, "sin", vm.DataStackUnderrun)
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestInclude(t *testing.T) {
	e := setup(t)
	if r := e.h.Dispatch(host.SysInclude, nil); r != vm.NeedsInput {
		t.Fatalf("expected NeedsInput, got %v", r)
	}
	name := filepath.Join(e.dir, "a.zf")
	writeFile(t, name, "65 emit\nfrob\n: b 66 emit ;\nb\n")
	e.run(t, "include "+name, vm.OK)
	e.checkOut(t, "AB")
	if s := e.diag.String(); s != "\nfrob\nabort: not a word\n" {
		t.Errorf("unexpected report %q", s)
	}

	// the file name on the next line
	e.out.Reset()
	e.run(t, "include", vm.NeedsInput)
	e.run(t, name, vm.OK)
	e.checkOut(t, "AB")
}

func TestInclude_compiled(t *testing.T) {
	e := setup(t)
	name := filepath.Join(e.dir, "a.zf")
	writeFile(t, name, "65 emit\n")
	e.run(t, ": inc include 66 emit ;", vm.OK)
	e.run(t, "inc "+name+" 67 emit", vm.OK)
	e.checkOut(t, "ABC")

	// file name on the next line
	e.out.Reset()
	e.run(t, "inc", vm.NeedsInput)
	e.run(t, name+" 67 emit", vm.OK)
	e.checkOut(t, "ABC")
	if e.diag.Len() != 0 {
		t.Errorf("unexpected diagnostics %q", e.diag.String())
	}
}

func TestInclude_missing(t *testing.T) {
	e := setup(t)
	name := filepath.Join(e.dir, "missing.zf")
	e.run(t, "include "+name+" 1 .", vm.OK)
	e.checkOut(t, "1 ")
	if s := e.diag.String(); !strings.HasPrefix(s, "error opening file '"+name+"'") {
		t.Errorf("unexpected report %q", s)
	}
}

func TestInclude_depth(t *testing.T) {
	e := setup(t, host.MaxIncludeDepth(3))
	name := filepath.Join(e.dir, "self.zf")
	writeFile(t, name, "65 emit include "+name+"\n")
	e.run(t, "include "+name, vm.OK)
	e.checkOut(t, "AAA")
	if s := e.diag.String(); !strings.Contains(s, "nesting deeper than 3") {
		t.Errorf("unexpected report %q", s)
	}
	// depth is restored
	e.out.Reset()
	e.diag.Reset()
	e.run(t, "include "+name, vm.OK)
	e.checkOut(t, "AAA")
}

func TestSave(t *testing.T) {
	e := setup(t)
	e.run(t, "save", vm.OK)
	st, err := os.Stat(filepath.Join(e.dir, "zforth.save"))
	if err != nil {
		t.Fatal(err)
	}
	if st.Size() != int64(len(e.i.Image())) {
		t.Errorf("expected %d bytes, got %d", len(e.i.Image()), st.Size())
	}
}
