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

package config

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Config is the full run configuration for one invocation. Flags override
// file values field-by-field; the merged result is validated once before the
// run starts.
type Config struct {
	// Input is a local directory or a remote repository location
	Input string `json:"input,omitempty" yaml:"input,omitempty" hcl:"input,optional"`

	// Output is the artifact path
	Output string `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`

	// IgnoreFiles holds glob-or-literal file entries appended to the default
	// ignore globs
	IgnoreFiles []string `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty" hcl:"ignore_files,optional"`

	// IgnoreDirs holds directory names appended to the default ignore dirs
	IgnoreDirs []string `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty" hcl:"ignore_dirs,optional"`

	// IncludeFiles holds path suffixes that switch the run to include-only
	// mode; mutually exclusive with both ignore lists
	IncludeFiles []string `json:"include_files,omitempty" yaml:"include_files,omitempty" hcl:"include_files,optional"`

	// ErrorLog writes per-file read failures next to the output
	ErrorLog bool `json:"error_log,omitempty" yaml:"error_log,omitempty" hcl:"error_log,optional"`

	// Async reads file contents with a bounded worker pool
	Async bool `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`

	// Workers caps the async read pool; 0 means one per CPU
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`

	// location is the file this config was loaded from, empty for flag-only
	// runs
	location string
}

// ✅ Validate checks cross-field consistency. The include/ignore mutual
// exclusion is enforced here so a conflict between a config file and flags
// fails before any traversal, no matter which layer supplied which list.
func (cfg *Config) Validate(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().
		Str("location", cfg.location).
		Msg("validating config")

	if len(cfg.IncludeFiles) > 0 && (len(cfg.IgnoreFiles) > 0 || len(cfg.IgnoreDirs) > 0) {
		return errors.New("include_files cannot be combined with ignore_files or ignore_dirs")
	}
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return nil
}

// 🔍 Location returns the file this config was loaded from, or "" when the
// run was configured by flags alone
func (cfg *Config) Location() string {
	return cfg.location
}
