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
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// httpDoer is the subset of http.Client used by the archive download
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// 📥 download fetches the archive bytes and verifies they look like a gzip
// stream before extraction is attempted
func (f *Fetcher) download(ctx context.Context, url string, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := f.downloads.Do(req)
	if err != nil {
		return nil, errors.Errorf("downloading archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Errorf("invalid tag or reference %q", ref)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response: %w", err)
	}

	// Verify it's actually a gzip file by checking magic number
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return nil, errors.Errorf("invalid archive format - expected gzip file, got: %s", string(data[:min(len(data), 1024)]))
	}

	return data, nil
}

// 📦 extractTarball unpacks a GitHub source archive under dest, dropping the
// single top-level directory GitHub prepends to every entry. Only regular
// files and directories are extracted.
func extractTarball(data []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Errorf("reading tar entry: %w", err)
		}

		if strings.HasPrefix(hdr.Name, "/") {
			return errors.Errorf("archive entry has absolute path: %s", hdr.Name)
		}
		for _, part := range strings.Split(hdr.Name, "/") {
			if part == ".." {
				return errors.Errorf("archive entry escapes extraction root: %s", hdr.Name)
			}
		}

		rel, ok := stripArchiveRoot(hdr.Name)
		if !ok {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(rel))
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating directory %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, hdr.FileInfo().Mode().Perm(), tr); err != nil {
				return errors.Errorf("extracting %s: %w", rel, err)
			}
		default:
			// Symlinks and other special entries are not part of a snapshot
		}
	}

	return nil
}

func writeEntry(target string, perm os.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Errorf("creating parent directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Errorf("creating file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return errors.Errorf("writing contents: %w", err)
	}

	return f.Close()
}

// stripArchiveRoot drops the first path component. The root directory entry
// itself yields ok=false.
func stripArchiveRoot(name string) (string, bool) {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	i := strings.Index(name, "/")
	if i == -1 {
		return "", false
	}
	rel := name[i+1:]
	if rel == "" || rel == "." {
		return "", false
	}
	return rel, true
}
