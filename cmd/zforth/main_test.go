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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/zforth/vm"
)

func TestDumpVM(t *testing.T) {
	i, err := vm.New()
	if err != nil {
		t.Fatal(err)
	}
	i.Push(1)
	i.Push(2)
	var b bytes.Buffer
	if err = dumpVM(i, &b); err != nil {
		t.Fatal(err)
	}
	exp := "\x1C1 2\x1D\x1D0 0 0 0 0 0 64 64" + strings.Repeat(" 0", 24)
	if s := b.String(); s != exp {
		t.Errorf("expected %q, got %q", exp, s)
	}
}

type session struct {
	cfg    config
	stdout *os.File
	stderr *os.File
}

func newSession(t *testing.T) *session {
	t.Helper()
	dir := t.TempDir()
	s := &session{cfg: defaultConfig()}
	s.cfg.Color = "off"
	s.cfg.SaveFile = filepath.Join(dir, "zforth.save")
	var err error
	if s.stdout, err = os.Create(filepath.Join(dir, "stdout")); err != nil {
		t.Fatal(err)
	}
	if s.stderr, err = os.Create(filepath.Join(dir, "stderr")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		s.stdout.Close()
		s.stderr.Close()
	})
	return s
}

func (s *session) run(t *testing.T, input string, args ...string) (string, string) {
	t.Helper()
	s.stdout.Truncate(0)
	s.stdout.Seek(0, 0)
	s.stderr.Truncate(0)
	s.stderr.Seek(0, 0)
	if err := run(s.cfg, args, strings.NewReader(input), s.stdout, s.stderr); err != nil {
		t.Fatal(err)
	}
	out, err := os.ReadFile(s.stdout.Name())
	if err != nil {
		t.Fatal(err)
	}
	diag, err := os.ReadFile(s.stderr.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(out), string(diag)
}

func TestRun(t *testing.T) {
	s := newSession(t)
	src := filepath.Join(t.TempDir(), "sq.zf")
	if err := os.WriteFile(src, []byte(": sq dup * ;\n"), 0666); err != nil {
		t.Fatal(err)
	}
	out, diag := s.run(t, "3 sq .\nfrob\n4 sq .\n", src)
	if out != "9 16 " {
		t.Errorf("unexpected output %q", out)
	}
	if diag != "\nfrob\nabort: not a word\n" {
		t.Errorf("unexpected diagnostics %q", diag)
	}
}

func TestRun_saveLoad(t *testing.T) {
	s := newSession(t)
	if out, diag := s.run(t, ": cube dup dup * * ;\nsave\n"); out != "" || diag != "" {
		t.Fatalf("unexpected output %q, %q", out, diag)
	}
	s.cfg.Load = s.cfg.SaveFile
	if out, diag := s.run(t, "3 cube .\n"); out != "27 " || diag != "" {
		t.Fatalf("unexpected output %q, %q", out, diag)
	}

	// a failed load falls back to a fresh dictionary
	s.cfg.Load = filepath.Join(t.TempDir(), "missing")
	out, diag := s.run(t, "2 1+ .\n")
	if out != "3 " {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasPrefix(diag, "error loading image") {
		t.Errorf("unexpected diagnostics %q", diag)
	}
}

func TestRun_dump(t *testing.T) {
	s := newSession(t)
	s.cfg.Dump = true
	out, _ := s.run(t, "7 8\n")
	if !strings.HasPrefix(out, "\x1C7 8\x1D\x1D") {
		t.Errorf("unexpected dump %q", out)
	}
}
