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

// Package remote materializes remote repositories into local staging
// directories so the rest of the pipeline only ever sees a directory tree.
package remote

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Fetcher is the interface for remote repository fetchers (e.g. GitHub)
type Fetcher interface {
	// Name returns the name of the fetcher (e.g. "github")
	Name() string
	// Supports reports whether this fetcher can materialize the given input
	Supports(input string) bool
	// Fetch materializes the repository under dir and returns the directory
	// holding its file tree
	Fetch(ctx context.Context, input string, dir string) (string, error)
}

// 🗺️ fetchers holds registered fetchers in registration order
var fetchers []Fetcher

// 📝 Register registers a fetcher. Fetchers register themselves from their
// package init; their Supports sets are disjoint, so order is cosmetic.
func Register(f Fetcher) {
	fetchers = append(fetchers, f)
}

// 🔍 Detect returns the first registered fetcher that supports input
func Detect(input string) (Fetcher, bool) {
	for _, f := range fetchers {
		if f.Supports(input) {
			return f, true
		}
	}
	return nil, false
}

// IsRemote reports whether input names a remote repository rather than a
// local directory
func IsRemote(input string) bool {
	_, ok := Detect(input)
	return ok
}

// 📥 Materialize fetches the repository behind input into a fresh staging
// directory. The returned cleanup removes the whole staging directory and
// must be called once the tree is no longer needed.
func Materialize(ctx context.Context, input string) (string, func(), error) {
	logger := zerolog.Ctx(ctx)

	f, ok := Detect(input)
	if !ok {
		return "", nil, errors.Errorf("no fetcher supports %q", input)
	}

	dir, err := os.MkdirTemp("", "repo2file-")
	if err != nil {
		return "", nil, errors.Errorf("creating staging directory: %w", err)
	}

	logger.Debug().
		Str("fetcher", f.Name()).
		Str("input", input).
		Str("dir", dir).
		Msg("materializing remote repository")

	root, err := f.Fetch(ctx, input, dir)
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, errors.Errorf("fetching %s: %w", input, err)
	}

	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("removing staging directory")
		}
	}

	return root, cleanup, nil
}
