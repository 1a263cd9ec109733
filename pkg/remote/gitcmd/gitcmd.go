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

// Package gitcmd fetches repositories the GitHub API cannot reach (ssh
// remotes, other hosts) by shelling out to the local git binary.
package gitcmd

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/repo2file/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.Register(&Fetcher{})
}

// 🎯 Fetcher clones repositories with `git clone --depth 1`
type Fetcher struct{}

// Name returns the name of the fetcher
func (f *Fetcher) Name() string {
	return "git"
}

// Supports reports whether input looks like a git remote. GitHub https URLs
// are left to the API-based fetcher even when they carry a .git suffix.
func (f *Fetcher) Supports(input string) bool {
	if strings.HasPrefix(input, "https://github.com/") {
		return false
	}
	return strings.HasPrefix(input, "git@") ||
		strings.HasPrefix(input, "ssh://") ||
		strings.HasPrefix(input, "git://") ||
		strings.HasSuffix(input, ".git")
}

// 📥 Fetch shallow-clones input into dir and returns the clone directory
func (f *Fetcher) Fetch(ctx context.Context, input string, dir string) (string, error) {
	dest := filepath.Join(dir, cloneDirName(input))

	zerolog.Ctx(ctx).Debug().Str("url", input).Str("dest", dest).Msg("cloning repository")

	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", "--depth", "1", input, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", errors.Errorf("running git clone for %s: %s: %w", input, msg, err)
		}
		return "", errors.Errorf("running git clone for %s: %w", input, err)
	}

	return dest, nil
}

// cloneDirName mirrors the directory name git itself would pick for a clone
func cloneDirName(input string) string {
	name := strings.TrimSuffix(input, "/")
	if i := strings.LastIndexAny(name, "/:"); i != -1 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		name = "repo"
	}
	return name
}
