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

package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given files (keyed by slash-relative path) under dir
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", rel)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", rel)
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// collect runs Walk and returns the yielded paths relative to root
func collect(t *testing.T, ctx context.Context, root string, opts Options) []string {
	t.Helper()
	var got []string
	err := Walk(ctx, root, opts, func(path string) error {
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err, "walking %s", root)
	return got
}

func TestWalk_YieldsRegularFilesInLexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.go":          "package b",
		"a.go":          "package a",
		"sub/nested.go": "package sub",
	})

	got := collect(t, testContext(t), root, Options{})
	assert.Equal(t, []string{"a.go", "b.go", "sub/nested.go"}, got, "walk order must be lexical")
}

func TestWalk_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":     "generated/\n*.cache\n",
		"a.cache":        "stale",
		"generated/x.go": "package gen",
		"src/main.go":    "package main",
		"sub/.gitignore": "local.out\n",
		"sub/local.out":  "scratch",
		"sub/kept.go":    "package sub",
	})

	got := collect(t, testContext(t), root, Options{})
	assert.Equal(t, []string{".gitignore", "src/main.go", "sub/.gitignore", "sub/kept.go"}, got,
		"gitignored entries must be skipped, nested .gitignore files honored")
}

func TestWalk_HonorsIgnoreMarkerFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".ignore":    "private.md\n",
		"private.md": "keep out",
		"public.md":  "fine",
	})

	got := collect(t, testContext(t), root, Options{})
	assert.Equal(t, []string{"public.md"}, got,
		".ignore entries and the marker file itself must be skipped")
}

func TestWalk_PruneDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep/a.go":     "package a",
		"skipme/b.go":   "package b",
		"skipme/c/d.go": "package d",
	})

	got := collect(t, testContext(t), root, Options{
		PruneDir: func(name string) bool { return name == "skipme" },
	})
	assert.Equal(t, []string{"keep/a.go"}, got, "pruned directories must not be descended")
}

func TestWalk_SkipPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":    "package main",
		"bundle.txt": "previous run output",
	})

	got := collect(t, testContext(t), root, Options{
		SkipPaths: []string{filepath.Join(root, "bundle.txt")},
	})
	assert.Equal(t, []string{"main.go"}, got, "skip paths must not be yielded")
}

func TestWalk_SkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real.go": "package real",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "real.go"), filepath.Join(root, "link.go")),
		"creating symlink fixture")

	got := collect(t, testContext(t), root, Options{})
	assert.Equal(t, []string{"real.go"}, got, "symlinks are not regular files")
}

func TestWalk_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := Walk(testContext(t), file, Options{}, func(string) error { return nil })
	require.Error(t, err, "walking a file must fail")
	assert.Contains(t, err.Error(), "not a directory")

	err = Walk(testContext(t), filepath.Join(root, "missing"), Options{}, func(string) error { return nil })
	require.Error(t, err, "walking a missing root must fail")
}

func TestWalk_StopsOnCancel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a"})

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := Walk(ctx, root, Options{}, func(string) error { return nil })
	require.Error(t, err, "canceled context must stop the walk")
	assert.Contains(t, err.Error(), "canceled")
}

func TestWalk_CallbackErrorAborts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go": "package a",
		"b.go": "package b",
	})

	boom := assert.AnError
	var seen int
	err := Walk(testContext(t), root, Options{}, func(string) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom, "callback errors must propagate")
	assert.Equal(t, 1, seen, "walk must stop at the first callback error")
}
