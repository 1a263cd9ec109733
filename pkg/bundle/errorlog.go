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

package bundle

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📋 ErrorLog records per-file read failures, one line per file. Read
// failures never fail the run; the log exists so skipped files are not
// silently lost.
type ErrorLog struct {
	path   string
	f      *os.File
	buf    *bufio.Writer
	count  int
	closed bool
}

// 🏭 CreateErrorLog opens the log at path, truncating any previous run's log
func CreateErrorLog(path string) (*ErrorLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Errorf("creating error log %s: %w", path, err)
	}
	return &ErrorLog{
		path: path,
		f:    f,
		buf:  bufio.NewWriter(f),
	}, nil
}

// 📝 Record appends one line of the form
// "Error reading file <path>: <description>"
func (l *ErrorLog) Record(path string, cause error) error {
	if _, err := fmt.Fprintf(l.buf, "Error reading file %s: %v\n", path, cause); err != nil {
		return errors.Errorf("recording read error for %s: %w", path, err)
	}
	l.count++
	return nil
}

// 🔍 Path returns the log location
func (l *ErrorLog) Path() string {
	return l.path
}

// 🔍 Count returns how many failures have been recorded
func (l *ErrorLog) Count() int {
	return l.count
}

// ✅ Close flushes pending lines and releases the file handle. Like
// Writer.Close it is idempotent.
func (l *ErrorLog) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.buf.Flush(); err != nil {
		l.f.Close()
		return errors.Errorf("flushing error log %s: %w", l.path, err)
	}
	if err := l.f.Close(); err != nil {
		return errors.Errorf("closing error log %s: %w", l.path, err)
	}
	return nil
}

// 🗺️ ErrorLogPath derives the log location from the artifact location by
// replacing the artifact's extension with ".error.log"
func ErrorLogPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".error.log"
}
