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

import "github.com/db47h/zforth/vm"

var diagnostics = map[vm.Result]string{
	vm.InternalError:       "internal error",
	vm.OutsideMemory:       "outside memory",
	vm.DataStackOverrun:    "dstack overrun",
	vm.DataStackUnderrun:   "dstack underrun",
	vm.ReturnStackOverrun:  "rstack overrun",
	vm.ReturnStackUnderrun: "rstack underrun",
	vm.NotAWord:            "not a word",
	vm.CompileOnlyWord:     "compile-only word",
}

// Classify returns the diagnostic text for an evaluation result. ok is false
// for vm.OK and vm.NeedsInput, which are not failures.
func Classify(r vm.Result) (msg string, ok bool) {
	msg, ok = diagnostics[r]
	return msg, ok
}
