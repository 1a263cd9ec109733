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

// 🎯 Verdict is the engine's outcome for one candidate path
type Verdict int

const (
	// Exclude keeps the file out of the output
	Exclude Verdict = iota
	// Include emits the file into the output
	Include
)

// 📝 String returns a human-readable form of the verdict
func (v Verdict) String() string {
	switch v {
	case Exclude:
		return "exclude"
	case Include:
		return "include"
	default:
		return "unknown"
	}
}

// ✅ Included reports whether the verdict admits the file
func (v Verdict) Included() bool {
	return v == Include
}

// 🔍 Decide evaluates exactly one candidate path against the rule set and
// returns its verdict. The path must be in slash form; matching is
// case-sensitive. Decide touches no filesystem state and is a pure function
// of its inputs, so calling it twice with the same arguments always yields
// the same verdict.
//
// Precedence: in IncludeOnly mode only the include suffixes are consulted.
// In IgnoreBased mode file rules are checked first, then directory names;
// either match excludes, and a path matching neither is included.
func (rs *RuleSet) Decide(path string) Verdict {
	if rs.mode == IncludeOnly {
		for _, suffix := range rs.includePaths {
			if hasPathSuffix(path, suffix) {
				return Include
			}
		}
		return Exclude
	}

	for _, rule := range rs.fileRules {
		if rule.Matches(path) {
			return Exclude
		}
	}

	// A directory-name match anywhere in the component chain excludes the
	// file, regardless of depth. The final component is deliberately part of
	// the chain: a file literally named like an ignored directory is excluded
	// too.
	for _, component := range splitComponents(path) {
		if rs.dirNames[component] {
			return Exclude
		}
	}

	return Include
}

// ⚡ PrunableDir reports whether a whole directory of the given name can be
// skipped during traversal without changing any verdict: every file beneath
// it would carry the matching component and be excluded anyway. Nothing is
// prunable in IncludeOnly mode, where ignore rules have no effect.
func (rs *RuleSet) PrunableDir(name string) bool {
	return rs.mode == IgnoreBased && rs.dirNames[name]
}
