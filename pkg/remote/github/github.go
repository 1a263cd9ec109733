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

package github

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/repo2file/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

const urlPrefix = "https://github.com/"

func init() {
	remote.Register(New())
}

// 🎯 Fetcher materializes github.com repositories through the GitHub API:
// the ref is pinned to a commit SHA and the snapshot comes down as a single
// archive, so no git binary is needed.
type Fetcher struct {
	client      GitHubClient
	downloads   httpDoer
	archiveBase string
}

// 🏭 New creates a new GitHub fetcher
func New() *Fetcher {
	hc := httpClient(context.Background())
	return &Fetcher{
		client:      &githubClientWrapper{client: github.NewClient(hc)},
		downloads:   hc,
		archiveBase: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Name returns the name of the fetcher
func (f *Fetcher) Name() string {
	return "github"
}

// Supports reports whether input is a github.com https URL
func (f *Fetcher) Supports(input string) bool {
	return strings.HasPrefix(input, urlPrefix)
}

// 📥 Fetch resolves the requested ref to a commit, downloads the archive for
// that commit, and extracts it under dir. The returned root is the directory
// holding the repository tree.
func (f *Fetcher) Fetch(ctx context.Context, input string, dir string) (string, error) {
	logger := zerolog.Ctx(ctx)

	owner, repo, ref, err := parseURL(input)
	if err != nil {
		return "", err
	}

	if ref == "" {
		repository, _, err := f.client.GetRepository(ctx, owner, repo)
		if err != nil {
			return "", errors.Errorf("getting default branch for %s/%s: %w", owner, repo, err)
		}
		ref = repository.GetDefaultBranch()
	}

	sha, _, err := f.client.GetCommitSHA(ctx, owner, repo, ref)
	if err != nil {
		return "", errors.Errorf("resolving ref %q for %s/%s: %w", ref, owner, repo, err)
	}

	logger.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Str("ref", ref).
		Str("sha", sha).
		Msg("resolved repository ref")

	url := fmt.Sprintf("%s/%s/%s/archive/%s.tar.gz", f.archiveBase, owner, repo, sha)
	data, err := f.download(ctx, url, ref)
	if err != nil {
		return "", err
	}

	root := filepath.Join(dir, repo)
	if err := extractTarball(data, root); err != nil {
		return "", errors.Errorf("extracting archive for %s/%s: %w", owner, repo, err)
	}

	return root, nil
}

// 🔍 parseURL splits https://github.com/owner/repo[.git][@ref] into its
// parts. The ref is empty when the URL does not pin one.
func parseURL(input string) (owner, repo, ref string, err error) {
	if !strings.HasPrefix(input, urlPrefix) {
		return "", "", "", errors.Errorf("not a github.com url: %s", input)
	}

	rest := strings.TrimPrefix(input, urlPrefix)
	if i := strings.LastIndex(rest, "@"); i != -1 {
		rest, ref = rest[:i], rest[i+1:]
		if ref == "" {
			return "", "", "", errors.Errorf("empty ref in %s", input)
		}
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")

	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", errors.Errorf("invalid github repository url: %s (expected https://github.com/owner/repo)", input)
	}

	return parts[0], parts[1], ref, nil
}
