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

// Package walker traverses a source tree and yields candidate files for the
// inclusion decision. It owns the filesystem-level ignore conventions
// (.gitignore and .ignore marker files); the rule-set policy is applied by
// the caller on top of what the walk yields.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ignoreFilename is the extra per-directory marker honored alongside
// .gitignore. The marker files themselves are walk metadata and are never
// yielded.
const ignoreFilename = ".ignore"

// 🔧 Options tunes one traversal
type Options struct {
	// PruneDir, when set, names directories to skip wholesale
	PruneDir func(name string) bool
	// SkipPaths holds exact paths the walk must never yield, so a run's own
	// output artifact and error log stay out of themselves
	SkipPaths []string
}

// 🚶 Walk yields every regular file under root in lexical order, honoring
// per-directory .gitignore and .ignore files. fn receives paths as
// filepath.WalkDir produces them (root-joined). An error from fn aborts the
// walk; unreadable entries below the root are skipped, not fatal.
func Walk(ctx context.Context, root string, opts Options, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Errorf("reading input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("input %s is not a directory", root)
	}

	matchers := newIgnoreMatchers(ctx, root)

	skip := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[filepath.Clean(p)] = true
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return errors.Errorf("walking %s: %w", root, walkErr)
			}
			zerolog.Ctx(ctx).Debug().Err(walkErr).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return errors.Errorf("walk canceled: %w", err)
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if opts.PruneDir != nil && opts.PruneDir(d.Name()) {
				return filepath.SkipDir
			}
			if matchers.ignored(root, path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if skip[filepath.Clean(path)] {
			return nil
		}
		if d.Name() == ignoreFilename {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matchers.ignored(root, path, false) {
			return nil
		}

		return fn(path)
	})
}

// ignoreMatchers wraps the repository-level .gitignore and .ignore matchers.
// Either may be nil when construction fails; a tree without ignore metadata
// is not an error.
type ignoreMatchers struct {
	git    gitignore.GitIgnore
	custom gitignore.GitIgnore
}

func newIgnoreMatchers(ctx context.Context, root string) ignoreMatchers {
	logger := zerolog.Ctx(ctx)

	git, err := gitignore.NewRepository(root)
	if err != nil {
		logger.Debug().Err(err).Msg("walking without .gitignore handling")
		git = nil
	}

	custom, err := gitignore.NewRepositoryWithFile(root, ignoreFilename)
	if err != nil {
		logger.Debug().Err(err).Msg("walking without .ignore handling")
		custom = nil
	}

	return ignoreMatchers{git: git, custom: custom}
}

// ignored reports whether either marker convention excludes the entry
func (m ignoreMatchers) ignored(root, path string, isDir bool) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if m.git != nil {
		if match := m.git.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	if m.custom != nil {
		if match := m.custom.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}
