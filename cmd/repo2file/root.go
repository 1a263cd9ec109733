// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/repo2file/pkg/config"
	"github.com/walteh/repo2file/pkg/operation"
	"github.com/walteh/repo2file/pkg/policy"
	"github.com/walteh/repo2file/pkg/remote"
	"github.com/walteh/repo2file/pkg/status"
)

var (
	// Flags
	configFile   string
	ignoreFiles  []string
	ignoreDirs   []string
	includeFiles []string
	errorLog     bool
	async        bool
	workers      int
	verbose      bool
	quiet        bool
	debug        bool
)

// 🎯 newRootCmd builds the repo2file command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo2file [input] [output]",
		Short: "Flatten a source tree into a single text file",
		Long: `repo2file walks a local directory or a remote repository and writes every
included file into one aggregated text artifact.

The input can be a local path, a GitHub URL (optionally pinned with @ref),
or any git-cloneable remote. Ignore rules layer on top of a built-in policy
that already skips lockfiles, media, and directories like node_modules.`,
		Example: `  repo2file . bundle.txt
  repo2file https://github.com/walteh/copyrc@v0.2.0
  repo2file --include-files main.go,go.mod
  repo2file --ignore-dirs testdata --error-log`,
		Args: cobra.MaximumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debug)
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRootFlags(cmd)

	cmd.Version = FormatVersion()
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd
}

// 🔧 addRootFlags wires the run configuration flags
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (default: discover .repo2file.* in the working directory)")
	cmd.Flags().StringSliceVar(&ignoreFiles, "ignore-files", nil, "extra file names or globs to ignore")
	cmd.Flags().StringSliceVar(&ignoreDirs, "ignore-dirs", nil, "extra directory names to ignore")
	cmd.Flags().StringSliceVar(&includeFiles, "include-files", nil, "only include files whose path ends with one of these")
	cmd.Flags().BoolVarP(&errorLog, "error-log", "e", false, "record unreadable files next to the output")
	cmd.Flags().BoolVar(&async, "async", false, "read files on a worker pool")
	cmd.Flags().IntVar(&workers, "workers", 0, "async reader count (0 means one per CPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print one line per processed file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the final summary")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.MarkFlagsMutuallyExclusive("include-files", "ignore-files")
	cmd.MarkFlagsMutuallyExclusive("include-files", "ignore-dirs")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// 🚀 runRoot resolves the configuration layers and executes the combine operation
func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	applyOverrides(cmd, cfg, args)

	if cfg.Input == "" {
		cfg.Input = "."
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput(cfg.Input)
	}

	if err := cfg.Validate(ctx); err != nil {
		return err
	}

	rules, err := policy.Resolve(policy.DefaultIgnore(), policy.Overrides{
		IgnoreFiles:  cfg.IgnoreFiles,
		IgnoreDirs:   cfg.IgnoreDirs,
		IncludeFiles: cfg.IncludeFiles,
	})
	if err != nil {
		return err
	}

	reporter := status.NewReporter(status.Options{
		Console: cmd.ErrOrStderr(),
		Verbose: verbose,
		Quiet:   quiet,
	})

	op, err := operation.NewCombine(operation.Options{
		Config:   cfg,
		Rules:    rules,
		Reporter: reporter,
	})
	if err != nil {
		return err
	}

	return op.Execute(ctx)
}

// 📋 loadConfig loads the explicit config file or discovers one in the working directory
func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		return config.Load(ctx, configFile)
	}

	cfg, err := config.Discover(ctx, ".")
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	return cfg, nil
}

// 🔄 applyOverrides layers positional arguments and changed flags over file values
func applyOverrides(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	f := cmd.Flags()
	if f.Changed("ignore-files") {
		cfg.IgnoreFiles = ignoreFiles
	}
	if f.Changed("ignore-dirs") {
		cfg.IgnoreDirs = ignoreDirs
	}
	if f.Changed("include-files") {
		cfg.IncludeFiles = includeFiles
	}
	if f.Changed("error-log") {
		cfg.ErrorLog = errorLog
	}
	if f.Changed("async") {
		cfg.Async = async
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
}

// 🏷️ defaultOutput derives an output name from the input when none was given.
// Local inputs use the directory name, remote inputs the repository name.
func defaultOutput(input string) string {
	name := input

	if remote.IsRemote(input) {
		if i := strings.LastIndex(name, "@"); i > strings.LastIndex(name, "/") {
			name = name[:i] // a pinned ref, not an ssh user
		}
		name = strings.TrimSuffix(strings.TrimSuffix(name, "/"), ".git")
		if i := strings.LastIndexAny(name, "/:"); i != -1 {
			name = name[i+1:]
		}
	} else {
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
		name = filepath.Base(name)
	}

	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "repo2file"
	}

	return name + ".txt"
}
