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
	"io"
	"os"

	"github.com/db47h/zforth/vm"
	"github.com/pkg/errors"
)

// DefaultSaveFile is the file written by the save syscall, in the current
// directory.
const DefaultSaveFile = "zforth.save"

// ErrImageSize is returned by Load when the file is larger than the memory
// image.
var ErrImageSize = errors.New("image file larger than memory image")

// Save writes the full memory image to fileName, overwriting any existing
// file. The file is a raw copy of the image bytes: no header, no checksum. On
// error, the partially written file is removed.
func Save(fileName string, img vm.Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = w.Write(img)
	return errors.Wrap(err, "write failed")
}

// Load reads fileName into the existing memory image, starting at offset 0,
// and returns the number of bytes read. The image is never resized.
//
// A file shorter than the image overwrites only the first bytes of the image;
// the remaining bytes keep their previous contents. A file larger than the
// image is rejected with an error wrapping ErrImageSize and the image is left
// untouched.
func Load(fileName string, img vm.Image) (n int, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return 0, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "fstat failed")
	}
	if sz := st.Size(); sz > int64(len(img)) {
		return 0, errors.Wrapf(ErrImageSize, "%s: %d bytes, expected at most %d", fileName, sz, len(img))
	}
	n, err = io.ReadFull(bufio.NewReader(f), img)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return n, errors.Wrap(err, "read failed")
}

// Save saves the machine's memory image to fileName. Errors are reported on
// the diagnostic channel before being returned.
func (h *Host) Save(fileName string) error {
	err := Save(fileName, h.m.Image())
	if err != nil {
		h.reportf("error saving image '%s': %v\n", fileName, err)
	}
	return err
}

// Load loads fileName into the machine's memory image. Errors are reported on
// the diagnostic channel before being returned. The stacks are not touched.
func (h *Host) Load(fileName string) (int, error) {
	n, err := Load(fileName, h.m.Image())
	if err != nil {
		h.reportf("error loading image '%s': %v\n", fileName, err)
	}
	return n, err
}
