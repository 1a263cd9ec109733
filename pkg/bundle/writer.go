// Copyright 2025 walteh LLC
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

// Package bundle writes the aggregated output artifact and its optional
// error log.
package bundle

import (
	"bufio"
	"fmt"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📦 Writer appends file blocks to the output artifact in the order they are
// handed to it. It is not safe for concurrent use; the combine pipeline
// serializes all Add calls onto one goroutine.
type Writer struct {
	path   string
	f      *os.File
	buf    *bufio.Writer
	files  int
	bytes  int64
	closed bool
}

// 🏭 Create opens the artifact at path, truncating any previous run's output
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Errorf("creating output file %s: %w", path, err)
	}
	return &Writer{
		path: path,
		f:    f,
		buf:  bufio.NewWriter(f),
	}, nil
}

// 📝 Add appends one file block: a blank line, a "// File:" header naming
// the path, a blank line, the raw contents, and a trailing newline.
func (w *Writer) Add(path string, contents []byte) error {
	if _, err := fmt.Fprintf(w.buf, "\n\n// File: %s\n\n", path); err != nil {
		return errors.Errorf("writing header for %s: %w", path, err)
	}
	n, err := w.buf.Write(contents)
	if err != nil {
		return errors.Errorf("writing contents of %s: %w", path, err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return errors.Errorf("terminating block for %s: %w", path, err)
	}

	w.files++
	w.bytes += int64(n)
	return nil
}

// 🔍 Path returns the artifact location
func (w *Writer) Path() string {
	return w.path
}

// 🔍 Files returns how many blocks have been appended
func (w *Writer) Files() int {
	return w.files
}

// 🔍 Bytes returns the total content bytes appended, headers excluded
func (w *Writer) Bytes() int64 {
	return w.bytes
}

// ✅ Close flushes buffered blocks and releases the file handle. Closing an
// already-closed writer is a no-op, so it is safe to both defer and call
// Close on the success path.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return errors.Errorf("flushing output file %s: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil {
		return errors.Errorf("closing output file %s: %w", w.path, err)
	}
	return nil
}
