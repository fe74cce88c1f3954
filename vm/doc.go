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

// Package vm implements a minimal zForth style virtual machine.
//
// The VM owns a fixed size byte memory image, a data stack and an address
// (return) stack. The dictionary lives inside the image, so that saving the
// image with all its bytes and loading it back restores every definition.
//
// The outer interpreter (Eval) reads whitespace delimited words: known words
// are executed or compiled depending on the compilation state, numbers are
// pushed or compiled as literals, anything else aborts with NotAWord.
//
// Host capabilities are reached through the sys primitive, which pops a
// SyscallID from the data stack and calls the SyscallHandler bound with the
// Syscall option. Handlers use Pop and Push to exchange arguments and results
// with the VM. The first cell popped by a handler is the last one pushed by
// the program.
//
// Aborts are reported as Result values. They reset both stacks and leave the
// instance ready for the next call to Eval.
package vm
