/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/portreach/portreach/pkg/catalog"
	"github.com/portreach/portreach/pkg/config"
	"github.com/portreach/portreach/pkg/logger"
	"github.com/portreach/portreach/pkg/netinfo"
	"github.com/portreach/portreach/pkg/render"
	"github.com/portreach/portreach/pkg/report"
	"github.com/portreach/portreach/pkg/scan"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file (optional)")
	timeout := flag.Duration("timeout", 0, "Outbound connect timeout (overrides config)")
	concurrency := flag.Int("concurrency", 0, "Maximum concurrent probes (overrides config)")
	output := flag.String("output", "", "Write the report as JSON to this path")
	noWait := flag.Bool("no-wait", false, "Exit immediately instead of waiting for a keypress")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *timeout != 0 {
		cfg.Scan.Timeout = *timeout
	}

	if *concurrency != 0 {
		cfg.Scan.Concurrency = *concurrency
	}

	if *output != "" {
		cfg.Output = *output
	}

	appLogger, err := logger.NewComponentLogger("portreach", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	runID := uuid.New().String()
	appLogger.Info().Str("run_id", runID).Msg("starting port reachability scan")

	out := render.New(os.Stdout)
	out.Banner()

	resolver := netinfo.NewResolver(cfg.Resolver, appLogger)
	netctx := resolver.Resolve(ctx)
	out.NetworkInfo(netctx)

	entries := catalog.Common()

	bar := render.NewProgressBar(os.Stdout, len(entries))

	prober := scan.NewProber(cfg.Scan, appLogger)
	prober.SetProgressFunc(bar.Update)

	start := time.Now()

	resultSet, err := prober.Scan(ctx, entries, netctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	bar.Finish()

	appLogger.Info().
		Str("run_id", runID).
		Int("entries", resultSet.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("scan complete")

	groups := report.Group(resultSet)
	summary := report.Summarize(resultSet)

	out.Results(groups, summary)
	out.Legend()

	if cfg.Output != "" {
		exp := report.NewExport(runID, netctx, resultSet)
		if err := report.WriteJSON(cfg.Output, exp); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		appLogger.Info().Str("path", cfg.Output).Msg("report written")
	}

	if !*noWait {
		out.WaitForQuit(os.Stdin)
	}

	return nil
}
