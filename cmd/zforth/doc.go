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

// The zforth command line tool runs the zForth VM interactively.
//
// Usage:
//
//	zforth [flags] [src ...]
//
//	    --color string        colorize diagnostics (auto|on|off) (default "auto")
//	    --config file         read configuration from file (default "zforth.toml")
//	    --dump                dump stacks and used memory upon exit
//	    --include-depth int   maximum include nesting (default 16)
//	-l, --load file           load dictionary from file
//	-o, --save-file file      file written by the save word (default "zforth.save")
//	    --size int            memory image size in bytes (default 16384)
//	-t, --trace               enable tracing
//
// On startup, zforth either loads a memory image (-l) or bootstraps a fresh
// dictionary, then includes every src file in order and reads lines from
// stdin until EOF. Aborts are reported on stderr, in red when stderr is a
// terminal, and never stop the interpreter.
//
// The following words are bound to host syscalls on top of the VM's core
// words (emit . tell):
//
//	quit       ( -- )      print a newline and exit
//	sin        ( n -- n )  sine
//	include    ( -- )      include the file named by the next word
//	save       ( -- )      save the memory image to the save file
//
// -load: the file must have been saved from an image of the same size. Files
// larger than the image are rejected and zforth falls back to a fresh
// dictionary. Shorter files only overwrite the beginning of the image.
//
// Flags override the values read from the configuration file, a TOML file
// with the keys size, trace, load, save_file, color, include_depth and dump.
// A missing zforth.toml is ignored.
//
// -dump: upon exit, write the data stack, the return stack and the used part
// of the memory image to stdout, separated by \x1D and prefixed by \x1C.
package main
