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
	"testing"

	"github.com/db47h/zforth/host"
	"github.com/db47h/zforth/vm"
)

func TestClassify(t *testing.T) {
	for _, test := range []struct {
		r   vm.Result
		msg string
		ok  bool
	}{
		{vm.OK, "", false},
		{vm.NeedsInput, "", false},
		{vm.InternalError, "internal error", true},
		{vm.OutsideMemory, "outside memory", true},
		{vm.DataStackOverrun, "dstack overrun", true},
		{vm.DataStackUnderrun, "dstack underrun", true},
		{vm.ReturnStackOverrun, "rstack overrun", true},
		{vm.ReturnStackUnderrun, "rstack underrun", true},
		{vm.NotAWord, "not a word", true},
		{vm.CompileOnlyWord, "compile-only word", true},
		{vm.Result(42), "", false},
	} {
		msg, ok := host.Classify(test.r)
		if msg != test.msg || ok != test.ok {
			t.Errorf("Classify(%v): expected %q, %v, got %q, %v", test.r, test.msg, test.ok, msg, ok)
		}
	}
}
