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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Zero(t, cfg.Scan.Timeout, "zero means use the prober default")
	assert.NotNil(t, cfg.Logging)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portreach.json")
	data := `{
		"scan": {"timeout": 2000000000, "concurrency": 8, "anchor_host": "192.0.2.1"},
		"resolver": {"echo_service_url": "http://127.0.0.1:9/ip"},
		"output": "/tmp/report.json"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Scan.Timeout)
	assert.Equal(t, 8, cfg.Scan.Concurrency)
	assert.Equal(t, "192.0.2.1", cfg.Scan.AnchorHost)
	assert.Equal(t, "http://127.0.0.1:9/ip", cfg.Resolver.EchoServiceURL)
	assert.Equal(t, "/tmp/report.json", cfg.Output)
	assert.NotNil(t, cfg.Logging, "logging defaults applied when file omits them")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORTREACH_ANCHOR_HOST", "192.0.2.99")
	t.Setenv("PORTREACH_ECHO_URL", "http://127.0.0.1:9/echo")
	t.Setenv("PORTREACH_TIMEOUT", "750ms")

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "192.0.2.99", cfg.Scan.AnchorHost)
	assert.Equal(t, "http://127.0.0.1:9/echo", cfg.Resolver.EchoServiceURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Scan.Timeout)
}

func TestValidate_RejectsNegativeConcurrency(t *testing.T) {
	cfg := Default()
	cfg.Scan.Concurrency = -1

	assert.Error(t, cfg.Validate())
}
