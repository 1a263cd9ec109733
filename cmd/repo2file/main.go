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
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/repo2file/pkg/status"

	// Fetchers register themselves so the remote layer can route inputs.
	_ "github.com/walteh/repo2file/pkg/remote/gitcmd"
	_ "github.com/walteh/repo2file/pkg/remote/github"
)

func main() {
	setupLogging(false)

	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, status.NewDefaultFileFormatter().FormatError(err))
		zerolog.Ctx(ctx).Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// 📝 setupLogging configures the global zerolog level and context logger
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
