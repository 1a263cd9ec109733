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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestWriter_BlockLayout(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bundle.txt")

	w, err := Create(out)
	require.NoError(t, err, "creating writer")

	require.NoError(t, w.Add("src/a.go", []byte("package a\n")), "adding first file")
	require.NoError(t, w.Add("docs/b.md", []byte("# b")), "adding second file")
	require.NoError(t, w.Close(), "closing writer")

	got, err := os.ReadFile(out)
	require.NoError(t, err, "reading artifact back")

	want := "\n\n// File: src/a.go\n\npackage a\n\n" +
		"\n\n// File: docs/b.md\n\n# b\n"
	assert.Equal(t, want, string(got), "artifact must use the exact block layout")
}

func TestWriter_Counters(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bundle.txt")

	w, err := Create(out)
	require.NoError(t, err)

	require.NoError(t, w.Add("a", []byte("12345")))
	require.NoError(t, w.Add("b", []byte("678")))
	require.NoError(t, w.Close())

	assert.Equal(t, 2, w.Files(), "two blocks appended")
	assert.Equal(t, int64(8), w.Bytes(), "content bytes only, headers excluded")
	assert.Equal(t, out, w.Path())
}

func TestWriter_TruncatesPreviousRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bundle.txt")
	require.NoError(t, os.WriteFile(out, []byte("stale artifact from an earlier run"), 0o644))

	w, err := Create(out)
	require.NoError(t, err)
	require.NoError(t, w.Add("a", []byte("fresh")))
	require.NoError(t, w.Close())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\n\n// File: a\n\nfresh\n", string(got), "previous contents must be gone")
}

func TestWriter_CreateFailsOnMissingDirectory(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "no", "such", "dir", "bundle.txt"))
	require.Error(t, err, "creating inside a missing directory must fail")
	assert.Contains(t, err.Error(), "creating output file", "error should say what it was doing")
}

func TestErrorLog_LineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.error.log")

	l, err := CreateErrorLog(path)
	require.NoError(t, err, "creating error log")

	require.NoError(t, l.Record("secrets/key.pem", errors.New("permission denied")))
	require.NoError(t, l.Record("img/logo.png", errors.New("invalid UTF-8 content")))
	require.NoError(t, l.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Error reading file secrets/key.pem: permission denied\n" +
		"Error reading file img/logo.png: invalid UTF-8 content\n"
	assert.Equal(t, want, string(got), "log lines must use the exact format")
	assert.Equal(t, 2, l.Count())
}

func TestErrorLogPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "replaces_txt_extension",
			output: "myrepo.txt",
			want:   "myrepo.error.log",
		},
		{
			name:   "appends_when_no_extension",
			output: "out",
			want:   "out.error.log",
		},
		{
			name:   "keeps_directory_prefix",
			output: "dist/snapshot.txt",
			want:   "dist/snapshot.error.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorLogPath(tt.output))
		})
	}
}
