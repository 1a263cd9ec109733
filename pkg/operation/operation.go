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

package operation

import (
	"context"
	"os"

	"github.com/walteh/repo2file/pkg/config"
	"github.com/walteh/repo2file/pkg/policy"
	"github.com/walteh/repo2file/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is the unit of work the command layer executes
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies for an operation
type Options struct {
	// Config is the merged run configuration
	Config *config.Config
	// Rules is the resolved decision rule set
	Rules *policy.RuleSet
	// Reporter receives per-file events and the final summary
	Reporter *status.Reporter
	// ReadFile overrides source reads; defaults to os.ReadFile
	ReadFile func(path string) ([]byte, error)
}

// 🏭 NewCombine creates the operation that flattens a source tree into a
// single text artifact
func NewCombine(opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Rules == nil {
		return nil, errors.Errorf("rule set is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if opts.Config.Output == "" {
		return nil, errors.Errorf("output path is required")
	}

	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	return &combineOperation{
		cfg:      opts.Config,
		rules:    opts.Rules,
		reporter: opts.Reporter,
		readFile: readFile,
	}, nil
}

// 📦 combineOperation walks one source tree and emits the artifact
type combineOperation struct {
	cfg      *config.Config
	rules    *policy.RuleSet
	reporter *status.Reporter
	readFile func(path string) ([]byte, error)

	// rebase is the fetched tree root for remote runs; when set, paths are
	// displayed and judged relative to it
	rebase string
}
