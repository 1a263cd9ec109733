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

package operation

import (
	"context"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/walteh/repo2file/pkg/bundle"
	"github.com/walteh/repo2file/pkg/remote"
	"github.com/walteh/repo2file/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Execute materializes the source if needed, walks it, and writes the
// artifact plus the optional error log
func (op *combineOperation) Execute(ctx context.Context) error {
	start := time.Now()

	root, cleanup, err := op.resolveSource(ctx)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	w, err := bundle.Create(op.cfg.Output)
	if err != nil {
		return errors.Errorf("creating output %s: %w", op.cfg.Output, err)
	}
	defer w.Close()

	var errLog *bundle.ErrorLog
	if op.cfg.ErrorLog {
		errLog, err = bundle.CreateErrorLog(bundle.ErrorLogPath(op.cfg.Output))
		if err != nil {
			return errors.Errorf("creating error log: %w", err)
		}
		defer errLog.Close()
	}

	wopts := walker.Options{
		PruneDir:  op.rules.PrunableDir,
		SkipPaths: op.skipPaths(root),
	}

	if op.cfg.Async {
		err = op.runAsync(ctx, root, wopts, w, errLog)
	} else {
		err = op.runSync(ctx, root, wopts, w, errLog)
	}
	if err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return errors.Errorf("finalizing output %s: %w", op.cfg.Output, err)
	}
	if errLog != nil {
		if err := errLog.Close(); err != nil {
			return errors.Errorf("finalizing error log: %w", err)
		}
	}

	op.reporter.Summary(ctx, op.cfg.Output, time.Since(start))
	return nil
}

// 🔄 runSync processes files inline in walk order
func (op *combineOperation) runSync(ctx context.Context, root string, wopts walker.Options, w *bundle.Writer, errLog *bundle.ErrorLog) error {
	return walker.Walk(ctx, root, wopts, func(path string) error {
		display := op.displayPath(path)

		if !op.rules.Decide(display).Included() {
			return op.emit(ctx, fileResult{display: display, excluded: true}, w, errLog)
		}

		data, err := op.readSource(path)
		return op.emit(ctx, fileResult{display: display, data: data, err: err}, w, errLog)
	})
}

// 🌐 resolveSource returns the directory to walk. Remote inputs are
// materialized into a staging directory first.
func (op *combineOperation) resolveSource(ctx context.Context) (string, func(), error) {
	input := op.cfg.Input
	if input == "" {
		input = "."
	}

	if !remote.IsRemote(input) {
		return input, nil, nil
	}

	op.reporter.StartFetch(ctx, input)
	root, cleanup, err := remote.Materialize(ctx, input)
	op.reporter.EndFetch(ctx, input, err)
	if err != nil {
		return "", nil, err
	}

	op.rebase = root
	return root, cleanup, nil
}

// fileResult carries one walked file from decide/read to the writer
type fileResult struct {
	display  string
	data     []byte
	err      error
	excluded bool
}

// 📥 readSource reads one file, treating non-UTF-8 content as unreadable so
// binaries surface in the error log instead of the artifact
func (op *combineOperation) readSource(path string) ([]byte, error) {
	data, err := op.readFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, errors.New("stream did not contain valid UTF-8")
	}
	return data, nil
}

// 📝 emit writes one result to the artifact, the error log, and the reporter
func (op *combineOperation) emit(ctx context.Context, r fileResult, w *bundle.Writer, errLog *bundle.ErrorLog) error {
	switch {
	case r.excluded:
		op.reporter.FileSkipped(ctx, r.display, "excluded by rules")
		return nil
	case r.err != nil:
		op.reporter.FileFailed(ctx, r.display, r.err)
		if errLog != nil {
			if err := errLog.Record(r.display, r.err); err != nil {
				return errors.Errorf("recording read failure: %w", err)
			}
		}
		return nil
	default:
		if err := w.Add(r.display, r.data); err != nil {
			return errors.Errorf("writing %s to output: %w", r.display, err)
		}
		op.reporter.FileAdded(ctx, r.display, len(r.data))
		return nil
	}
}

// 🏷️ displayPath is the path that appears in block headers and that the
// rule set judges: the walk path for local runs, the tree-relative path for
// remote runs. Always in slash form.
func (op *combineOperation) displayPath(path string) string {
	if op.rebase != "" {
		if rel, err := filepath.Rel(op.rebase, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

// skipPaths rewrites the artifact and error log locations into walker form
// so a run never ingests its own output
func (op *combineOperation) skipPaths(root string) []string {
	targets := []string{op.cfg.Output}
	if op.cfg.ErrorLog {
		targets = append(targets, bundle.ErrorLogPath(op.cfg.Output))
	}

	var skips []string
	for _, target := range targets {
		if entry, ok := skipEntry(root, target); ok {
			skips = append(skips, entry)
		}
	}
	return skips
}

// skipEntry maps target onto the path the walker would yield it as under
// root; ok is false when target lies outside the tree
func skipEntry(root, target string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(root, rel), true
}
