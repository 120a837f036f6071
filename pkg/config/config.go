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

// Package config loads the tool configuration from an optional JSON file
// with environment overrides for the probe anchors.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/portreach/portreach/pkg/logger"
	"github.com/portreach/portreach/pkg/netinfo"
	"github.com/portreach/portreach/pkg/scan"
)

var errInvalidConcurrency = errors.New("concurrency must be positive")

// Config is the full tool configuration.
type Config struct {
	Scan     scan.Config    `json:"scan"`
	Resolver netinfo.Config `json:"resolver"`
	Logging  *logger.Config `json:"logging,omitempty"`
	// Output is an optional path for the JSON export of the report.
	Output string `json:"output,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: logger.DefaultConfig(),
	}
}

// Load reads the configuration file at path, or returns defaults when path
// is empty. Environment overrides are applied either way.
func Load(ctx context.Context, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var loader FileLoader
		if err := loader.Load(ctx, path, &cfg); err != nil {
			return Config{}, fmt.Errorf("loading config: %w", err)
		}

		if cfg.Logging == nil {
			cfg.Logging = logger.DefaultConfig()
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv layers environment overrides over the file values. Only the
// probe anchors are settable this way; they are the knobs test harnesses and
// restricted networks need.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORTREACH_ANCHOR_HOST"); v != "" {
		c.Scan.AnchorHost = v
	}

	if v := os.Getenv("PORTREACH_ECHO_URL"); v != "" {
		c.Resolver.EchoServiceURL = v
	}

	if v := os.Getenv("PORTREACH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scan.Timeout = d
		}
	}
}

// Validate rejects configurations the prober cannot run with. Zero values
// are fine; they mean "use the default".
func (c *Config) Validate() error {
	if c.Scan.Concurrency < 0 {
		return fmt.Errorf("%w: %d", errInvalidConcurrency, c.Scan.Concurrency)
	}

	return nil
}
