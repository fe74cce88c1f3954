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

import "github.com/pkg/errors"

// Result is the outcome of an evaluation. Any value other than OK and
// NeedsInput means that execution was aborted.
//
// Result implements error so that stack and memory accessors can return it
// directly. Use errors.Cause to recover a Result from a wrapped error.
type Result int

// Evaluation results.
const (
	OK Result = iota
	InternalError
	OutsideMemory
	DataStackOverrun
	DataStackUnderrun
	ReturnStackOverrun
	ReturnStackUnderrun
	NotAWord
	CompileOnlyWord
	NeedsInput
)

var resultNames = [...]string{
	"OK",
	"InternalError",
	"OutsideMemory",
	"DataStackOverrun",
	"DataStackUnderrun",
	"ReturnStackOverrun",
	"ReturnStackUnderrun",
	"NotAWord",
	"CompileOnlyWord",
	"NeedsInput",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "Result(?)"
	}
	return resultNames[r]
}

func (r Result) Error() string {
	return "vm: " + r.String()
}

// Aborted returns true if r signals an aborted evaluation.
func (r Result) Aborted() bool {
	return r != OK && r != NeedsInput
}

// ResultOf extracts the Result carried by err. A nil error is OK, errors that
// do not wrap a Result are reported as InternalError.
func ResultOf(err error) Result {
	if err == nil {
		return OK
	}
	if r, ok := errors.Cause(err).(Result); ok {
		return r
	}
	return InternalError
}
