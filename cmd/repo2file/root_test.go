// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/repo2file/pkg/bundle"
)

// executeRoot runs a fresh root command with the given arguments.
func executeRoot(t *testing.T, args ...string) error {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644), "writing %s", name)
	}
}

// chdir moves the test into dir and restores the old working directory afterwards.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err, "getting working directory")
	require.NoError(t, os.Chdir(dir), "changing into %s", dir)
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "repo2file [input] [output]", cmd.Use, "command use line should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")
	assert.NotEmpty(t, cmd.Version, "should carry version info")
}

func TestRunRoot_WritesArtifact(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"main.go":                "package main\n",
		"README.md":              "# test repo\n",
		"node_modules/x/leaf.js": "module.exports = {}\n",
	})
	out := filepath.Join(t.TempDir(), "bundle.txt")

	err := executeRoot(t, src, out)
	require.NoError(t, err, "running repo2file")

	data, err := os.ReadFile(out)
	require.NoError(t, err, "reading artifact")
	assert.Contains(t, string(data), "// File: ", "artifact should contain file blocks")
	assert.Contains(t, string(data), "package main\n", "artifact should contain file contents")
	assert.NotContains(t, string(data), "leaf.js", "default policy should drop node_modules")
}

func TestRunRoot_IncludeOnlyFlag(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"main.go":   "package main\n",
		"README.md": "# skipped\n",
	})
	out := filepath.Join(t.TempDir(), "bundle.txt")

	err := executeRoot(t, src, out, "--include-files", "main.go")
	require.NoError(t, err, "running repo2file")

	data, err := os.ReadFile(out)
	require.NoError(t, err, "reading artifact")
	assert.Contains(t, string(data), "package main\n", "listed file should be included")
	assert.NotContains(t, string(data), "# skipped", "unlisted file should be excluded")
}

func TestRunRoot_ErrorLogFlag(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"good.go":    "package good\n",
		"binary.dat": "\xff\xfe\x00broken",
	})
	out := filepath.Join(t.TempDir(), "bundle.txt")

	err := executeRoot(t, src, out, "--error-log")
	require.NoError(t, err, "running repo2file")

	logData, err := os.ReadFile(bundle.ErrorLogPath(out))
	require.NoError(t, err, "reading error log")
	assert.Contains(t, string(logData), "stream did not contain valid UTF-8", "binary file should be reported")
}

func TestRunRoot_AsyncFlag(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
		"c.go": "package c\n",
	})

	syncOut := filepath.Join(t.TempDir(), "sync.txt")
	asyncOut := filepath.Join(t.TempDir(), "async.txt")

	require.NoError(t, executeRoot(t, src, syncOut), "sync run")
	require.NoError(t, executeRoot(t, src, asyncOut, "--async", "--workers", "2"), "async run")

	syncData, err := os.ReadFile(syncOut)
	require.NoError(t, err, "reading sync artifact")
	asyncData, err := os.ReadFile(asyncOut)
	require.NoError(t, err, "reading async artifact")
	assert.Equal(t, string(syncData), string(asyncData), "async artifact should match sync artifact")
}

func TestRunRoot_ConflictingModeFlags(t *testing.T) {
	err := executeRoot(t, t.TempDir(), "--include-files", "a.go", "--ignore-dirs", "vendor")
	require.Error(t, err, "conflicting flags should fail")
	assert.Contains(t, err.Error(), "include-files", "error should name the conflicting flag")
}

func TestRunRoot_MissingInput(t *testing.T) {
	err := executeRoot(t, filepath.Join(t.TempDir(), "absent"), filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err, "missing input should fail")
	assert.Contains(t, err.Error(), "reading input directory", "error should point at the input")
}

func TestRunRoot_DiscoversConfig(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.go": "package main\n"})

	work := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(work, ".repo2file.yaml"),
		[]byte("output: from-config.txt\n"),
		0o644,
	), "writing config")
	chdir(t, work)

	err := executeRoot(t, src)
	require.NoError(t, err, "running repo2file")

	assert.FileExists(t, filepath.Join(work, "from-config.txt"), "output name should come from the discovered config")
}

func TestRunRoot_PositionalOutputBeatsConfig(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.go": "package main\n"})

	cfgPath := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: ignored.txt\n"), 0o644), "writing config")

	out := filepath.Join(t.TempDir(), "chosen.txt")
	err := executeRoot(t, src, out, "--config", cfgPath)
	require.NoError(t, err, "running repo2file")

	assert.FileExists(t, out, "positional output should win")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(out), "ignored.txt"), "config output should be overridden")
}

func TestRunRoot_MissingConfigFile(t *testing.T) {
	err := executeRoot(t, t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "missing config file should fail")
	assert.Contains(t, err.Error(), "reading config file", "error should mention the config read")
}

func TestRunRoot_VersionFlag(t *testing.T) {
	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.ExecuteContext(context.Background()), "version flag should succeed")
	assert.Contains(t, buf.String(), "repo2file version info", "version output should carry the banner")
	assert.Contains(t, buf.String(), runtime.Version(), "version output should carry the Go version")
}

func TestDefaultOutput(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err, "getting working directory")

	assert.Equal(t, filepath.Base(wd)+".txt", defaultOutput("."), "dot input should use the working directory name")
	assert.Equal(t, "src.txt", defaultOutput(filepath.FromSlash("/tmp/somewhere/src")), "local input should use the directory name")
	assert.Equal(t, "copyrc.txt", defaultOutput("https://github.com/walteh/copyrc"), "github input should use the repository name")
	assert.Equal(t, "copyrc.txt", defaultOutput("https://github.com/walteh/copyrc.git@v0.2.0"), "pinned github input should drop the ref")
	assert.Equal(t, "service.txt", defaultOutput("git@example.com:team/service.git"), "ssh input should use the repository name")
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	require.NotNil(t, info, "version info should not be nil")
	assert.Equal(t, runtime.Version(), info.GoVersion, "go version should match the runtime")
	assert.NotEmpty(t, info.Platform, "platform should be populated")
}
