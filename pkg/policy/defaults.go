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

// 📦 DefaultPolicy is the built-in exclusion baseline: file patterns matched
// against a path's textual form and literal directory names matched against
// any path component. Treat values as read-only; Resolve never mutates them.
type DefaultPolicy struct {
	// IgnoreFiles holds glob-or-literal file entries
	IgnoreFiles []string
	// IgnoreDirs holds exact directory-component names
	IgnoreDirs []string
}

// 🏭 DefaultIgnore returns the built-in default policy. Each call returns a
// fresh value with its own backing arrays, so one run's overrides can never
// leak into another's defaults.
func DefaultIgnore() DefaultPolicy {
	return DefaultPolicy{
		IgnoreDirs: []string{
			"node_modules",
			".git",
			".idea",
			".vscode",
		},
		IgnoreFiles: []string{
			"*LICENCE.md",
			"*CHANGELOG.md",
			"*.DS_Store",
			"*.all-contributorsrc",
			"*.yaml",
			"*.yml",
			"*.json",
			"*.csv",
			"*.svg",
			"*.conf",
			"*.ini",
			"*.env",
			"*.log",
			"*.tmp",
			"*.pyc",
			"*.class",
			"*.o",
			"*.obj",
			"*.exe",
			"*.dll",
			"*.so",
			"*.dylib",
			"*.ncb",
			"*.sdf",
			"*.suo",
			"*.pdb",
			"*.idb",
			"*.lock",
			"*.toml",
			".prettierrc.*",
			"*.txt",
			"Pipfile",
			"*.cfg",
			".gitignore",
			".gitattributes",
			".dockerignore",
			".env",
			".flaskenv",
			".editorconfig",
			"Makefile",
			"CMakeLists.txt",
		},
	}
}
