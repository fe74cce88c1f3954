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
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Eval evaluates one line of source text and returns the outcome.
//
// Any abort resets both stacks and the compilation state; the dictionary is
// left as is. If the last word of the line left a primitive waiting for an
// argument (e.g. ":" or a syscall returning NeedsInput), Eval returns
// NeedsInput and the first word of the next line will be used.
//
// Eval may be called recursively from a syscall handler.
func (i *Instance) Eval(line string) (res Result) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case Result:
				res = e
			case runtime.Error:
				res = InternalError
			default:
				panic(e)
			}
			i.reset()
		}
	}()
	for _, w := range strings.Fields(line) {
		if w == "\\" && !i.comment && i.pending.kind == pendNone {
			break
		}
		i.word(w)
	}
	if i.pending.kind != pendNone {
		return NeedsInput
	}
	return OK
}

func (i *Instance) reset() {
	i.sp = 0
	i.rsp = 0
	i.pending = pending{}
	i.comment = false
	i.setVar(varState, 0)
	i.setVar(varDefining, 0)
}

func (i *Instance) word(w string) {
	if i.comment {
		if strings.HasSuffix(w, ")") {
			i.comment = false
		}
		return
	}
	if i.trace != nil {
		fmt.Fprintf(i.trace, "word %q\n", w)
	}
	if p := i.pending; p.kind != pendNone {
		i.pending = pending{}
		switch p.kind {
		case pendName:
			i.define(w)
		case pendSyscall:
			switch {
			case !i.sysCall(p.id, &w):
				// still waiting, keep the suspended execution
				i.pending = p
			case p.suspend:
				i.resume(p)
			}
		}
		return
	}
	compiling := i.compiling()
	if hdr, ok := i.find(w); ok {
		code := i.code(hdr)
		if compiling && i.flags(hdr)&flagImmediate == 0 {
			i.commaByte(byte(OpCall))
			i.comma(Cell(code))
			return
		}
		i.run(code)
		return
	}
	if p, ok := primitives[w]; ok {
		switch {
		case p.compileOnly && !compiling:
			abort(CompileOnlyWord)
		case p.compiler != nil:
			p.compiler(i)
		case compiling:
			i.commaByte(byte(p.op))
		default:
			i.insCount++
			i.op(p.op)
		}
		return
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		abort(NotAWord)
	}
	if compiling {
		i.commaByte(byte(OpLit))
		i.comma(Cell(v))
		return
	}
	i.push(Cell(v))
}

// Bootstrap populates the dictionary with the default words. It is meant to
// be called on a fresh instance, when no saved image is loaded.
func (i *Instance) Bootstrap() error {
	for n, line := range strings.Split(bootstrap, "\n") {
		if r := i.Eval(line); r.Aborted() {
			return errors.Wrapf(r, "bootstrap line %d", n+1)
		}
	}
	return nil
}

const bootstrap = `
: emit 0 sys ;
: . 1 sys ;
: tell 2 sys ;
: cr 10 emit ;
: space 32 emit ;
: nip swap drop ;
: 2dup over over ;
: 2drop drop drop ;
: 0= 0 = ;
: not 0= ;
: > swap < ;
: <> = not ;
: 1+ 1 + ;
: 1- 1 - ;
: negate 0 swap - ;
: abs dup 0 < if negate then ;
: min 2dup > if swap then drop ;
: max 2dup < if swap then drop ;
: cells 8 * ;
: +! dup @ rot + swap ! ;
`
