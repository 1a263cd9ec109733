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
)

// 🏷️ RuleKind discriminates the two file-rule variants
type RuleKind uint8

const (
	// KindGlob evaluates the rule pattern as a glob
	KindGlob RuleKind = iota
	// KindLiteralSuffix evaluates the rule pattern as a literal path suffix
	KindLiteralSuffix
)

// 📝 String returns a human-readable form of the rule kind
func (k RuleKind) String() string {
	switch k {
	case KindGlob:
		return "glob"
	case KindLiteralSuffix:
		return "literal-suffix"
	default:
		return "unknown"
	}
}

// 📄 FileRule is one file-exclusion rule in a resolved rule set. Resolution
// expands every configured entry into both variants, so a plain name like
// "Cargo.lock" and a pattern like "*.lock" are honored without the caller
// classifying them.
type FileRule struct {
	// Kind selects how Pattern is evaluated
	Kind RuleKind
	// Pattern is the raw configured entry
	Pattern string
}

// 🔍 Matches reports whether path triggers this rule. Matching is
// case-sensitive; path must be in slash form.
func (r FileRule) Matches(path string) bool {
	switch r.Kind {
	case KindGlob:
		return matchGlob(r.Pattern, path)
	case KindLiteralSuffix:
		return hasPathSuffix(path, r.Pattern)
	default:
		return false
	}
}

// matchGlob evaluates pattern against the full path text and, for patterns
// without a separator, against the final component as well. A bare "*.log"
// therefore excludes "src/app.log" at any depth, while "docs/*.md" anchors
// against the full path form. Patterns are validated at resolve time, so a
// pattern error here cannot occur and reads as no-match.
func matchGlob(pattern, path string) bool {
	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if strings.ContainsRune(pattern, '/') {
		return false
	}
	ok, err := doublestar.Match(pattern, lastComponent(path))
	return err == nil && ok
}

// hasPathSuffix reports whether path ends with suffix on whole-component
// boundaries: "Cargo.lock" matches "a/Cargo.lock" and "Cargo.lock", never
// "xCargo.lock"; "b/Cargo.lock" matches "a/b/Cargo.lock".
func hasPathSuffix(path, suffix string) bool {
	pc := splitComponents(path)
	sc := splitComponents(suffix)
	if len(sc) == 0 || len(sc) > len(pc) {
		return false
	}
	off := len(pc) - len(sc)
	for i, c := range sc {
		if pc[off+i] != c {
			return false
		}
	}
	return true
}

// splitComponents decomposes a slash-form path into its named components,
// dropping empty segments and "." so "./src//main.go" and "src/main.go"
// decompose identically.
func splitComponents(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, c := range parts {
		if c != "" && c != "." {
			out = append(out, c)
		}
	}
	return out
}

func lastComponent(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
