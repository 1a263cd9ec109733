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

package policy

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Mode selects the operating strategy of a resolved rule set
type Mode int

const (
	// IgnoreBased excludes files matching ignore rules and includes the rest
	IgnoreBased Mode = iota
	// IncludeOnly includes files matching an allow-list and excludes the rest
	IncludeOnly
)

// 📝 String returns a human-readable form of the mode
func (m Mode) String() string {
	switch m {
	case IgnoreBased:
		return "ignore-based"
	case IncludeOnly:
		return "include-only"
	default:
		return "unknown"
	}
}

// 🔧 Overrides carries the per-run rule additions supplied by flags or a
// config file. All fields are optional; IncludeFiles is mutually exclusive
// with the other two.
type Overrides struct {
	// IgnoreFiles holds extra glob-or-literal file entries
	IgnoreFiles []string
	// IgnoreDirs holds extra directory-component names
	IgnoreDirs []string
	// IncludeFiles holds path suffixes that switch the run to IncludeOnly
	IncludeFiles []string
}

// 📦 RuleSet is the effective policy for one run. It is immutable after
// Resolve and safe to share across concurrent Decide calls without locking.
type RuleSet struct {
	mode         Mode
	fileRules    []FileRule
	dirNames     map[string]bool
	includePaths []string
}

// 🏭 Resolve merges the built-in defaults with per-run overrides into one
// rule set. Supplying include entries together with either ignore list is a
// configuration error. Every file entry is validated as a glob here, before
// any file is evaluated; a malformed pattern rejects the whole run. Entries
// are whitespace-trimmed and empty ones (trailing commas in flag values)
// dropped.
func Resolve(defaults DefaultPolicy, o Overrides) (*RuleSet, error) {
	includes := cleanEntries(o.IncludeFiles)
	ignoreFiles := cleanEntries(o.IgnoreFiles)
	ignoreDirs := cleanEntries(o.IgnoreDirs)

	if len(includes) > 0 && (len(ignoreFiles) > 0 || len(ignoreDirs) > 0) {
		return nil, errors.New("include-files cannot be combined with ignore-files or ignore-dirs")
	}

	// Include-only runs discard every ignore rule, defaults included.
	if len(includes) > 0 {
		return &RuleSet{
			mode:         IncludeOnly,
			includePaths: includes,
		}, nil
	}

	merged := append(cleanEntries(defaults.IgnoreFiles), ignoreFiles...)
	rules := make([]FileRule, 0, len(merged)*2)
	for _, pattern := range merged {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		rules = append(rules,
			FileRule{Kind: KindGlob, Pattern: pattern},
			FileRule{Kind: KindLiteralSuffix, Pattern: pattern},
		)
	}

	names := append(cleanEntries(defaults.IgnoreDirs), ignoreDirs...)
	dirs := make(map[string]bool, len(names))
	for _, name := range names {
		dirs[name] = true
	}

	return &RuleSet{
		mode:      IgnoreBased,
		fileRules: rules,
		dirNames:  dirs,
	}, nil
}

// 🔍 Mode returns the operating strategy the set resolved to
func (rs *RuleSet) Mode() Mode {
	return rs.mode
}

// cleanEntries trims whitespace and drops empty entries
func cleanEntries(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
