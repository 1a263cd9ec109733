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

package status

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🔧 Options configures a Reporter
type Options struct {
	// Console receives all human-facing output, os.Stderr when nil
	Console io.Writer
	// Formatter renders per-file lines, DefaultFileFormatter when nil
	Formatter FileFormatter
	// Verbose also prints lines for skipped files
	Verbose bool
	// Quiet suppresses per-file lines and the fetch spinner
	Quiet bool
}

// 🎯 Reporter owns the human-facing console output for one run and tallies
// what happened. Safe for concurrent use.
type Reporter struct {
	console   io.Writer
	formatter FileFormatter
	verbose   bool
	quiet     bool

	mu      sync.Mutex
	added   int
	skipped int
	failed  int
	bytes   int64
	spinner *pterm.SpinnerPrinter
}

// 🏭 NewReporter creates a reporter with the given options
func NewReporter(opts Options) *Reporter {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.Formatter == nil {
		opts.Formatter = NewDefaultFileFormatter()
	}
	return &Reporter{
		console:   opts.Console,
		formatter: opts.Formatter,
		verbose:   opts.Verbose,
		quiet:     opts.Quiet,
	}
}

// 📝 FileAdded records a file appended to the output
func (r *Reporter) FileAdded(ctx context.Context, path string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.added++
	r.bytes += int64(size)

	if !r.quiet && r.verbose {
		fmt.Fprintln(r.console, r.formatter.FormatAdded(path))
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Int("bytes", size).
		Msg("file added")
}

// 📝 FileSkipped records a file the policy excluded
func (r *Reporter) FileSkipped(ctx context.Context, path string, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skipped++

	if !r.quiet && r.verbose {
		fmt.Fprintln(r.console, r.formatter.FormatSkipped(path, reason))
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Str("reason", reason).
		Msg("file skipped")
}

// 📝 FileFailed records a file whose contents could not be read. Read
// failures are recoverable, so this prints a line (unless quiet) but never
// fails the run.
func (r *Reporter) FileFailed(ctx context.Context, path string, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed++

	if !r.quiet {
		fmt.Fprintln(r.console, r.formatter.FormatFailed(path, cause))
	}

	zerolog.Ctx(ctx).Warn().
		Err(cause).
		Str("file", path).
		Msg("file unreadable, skipped")
}

// 🌐 StartFetch shows a spinner while a remote source is materialized
func (r *Reporter) StartFetch(ctx context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("source", target).Msg("fetching remote source")

	if r.quiet {
		return
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(r.console).Start(
		color.New(color.FgCyan).Sprintf("Fetching %s", target))
	if err != nil {
		// Spinner failure is cosmetic only.
		zerolog.Ctx(ctx).Debug().Err(err).Msg("spinner unavailable")
		return
	}
	r.spinner = spinner
}

// 🌐 EndFetch resolves the fetch spinner
func (r *Reporter) EndFetch(ctx context.Context, target string, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spinner != nil {
		if cause != nil {
			r.spinner.Fail(fmt.Sprintf("Fetching %s failed", target))
		} else {
			r.spinner.Success(fmt.Sprintf("Fetched %s", target))
		}
		r.spinner = nil
	}

	if cause != nil {
		zerolog.Ctx(ctx).Error().Err(cause).Str("source", target).Msg("fetch failed")
		return
	}
	zerolog.Ctx(ctx).Info().Str("source", target).Msg("fetch complete")
}

// ✅ Summary closes the run on the console
func (r *Reporter) Summary(ctx context.Context, output string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Success.WithWriter(r.console).Printfln("wrote %s: %d files, %s in %s",
		output, r.added, humanBytes(r.bytes), elapsed.Round(time.Millisecond))
	if r.failed > 0 {
		pterm.Warning.WithWriter(r.console).Printfln("%d unreadable files were skipped", r.failed)
	}

	zerolog.Ctx(ctx).Info().
		Str("output", output).
		Int("added", r.added).
		Int("skipped", r.skipped).
		Int("failed", r.failed).
		Int64("bytes", r.bytes).
		Dur("elapsed", elapsed).
		Msg("run complete")
}

// 🔍 Counts returns the running totals
func (r *Reporter) Counts() (added, skipped, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.added, r.skipped, r.failed
}

// humanBytes renders a byte count in binary units
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
