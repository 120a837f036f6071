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

// Package scan implements the dual-test probing engine. For every catalog
// entry it runs an inbound test (bind a listener at the chosen probe
// address) and an outbound test (timed connect to the anchor host on the
// entry's port), fanning the catalog out over a bounded worker pool.
package scan

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/portreach/portreach/pkg/logger"
	"github.com/portreach/portreach/pkg/models"
)

const (
	// defaultAnchorHost is the fixed external connect target for the
	// outbound test. OpenDNS answers deterministically across the probed
	// port range, which keeps false negatives low.
	defaultAnchorHost = "208.67.222.222"

	defaultTimeout = 1 * time.Second

	// defaultConcurrency bounds the fan-out. Tens of concurrent probes is
	// enough to overlap the connect timeouts without risking fd or
	// ephemeral-port exhaustion.
	defaultConcurrency = 32

	workChMultiplier = 2
)

// Config controls the prober.
type Config struct {
	// Timeout bounds each outbound connect attempt.
	Timeout time.Duration `json:"timeout,omitempty"`
	// Concurrency is the maximum number of in-flight entry probes.
	Concurrency int `json:"concurrency,omitempty"`
	// AnchorHost is the external connect target for the outbound test.
	AnchorHost string `json:"anchor_host,omitempty"`
}

// ProgressFunc is called once per completed catalog entry, regardless of the
// entry's outcome. done counts completed entries, total is the catalog
// length.
type ProgressFunc func(done, total int)

// Prober runs the dual-test protocol over a catalog.
type Prober struct {
	timeout     time.Duration
	concurrency int
	anchorHost  string
	onProgress  ProgressFunc
	cancel      context.CancelFunc
	logger      logger.Logger
}

// NewProber creates a prober with defaults applied for any zero config
// field.
func NewProber(cfg Config, log logger.Logger) *Prober {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}

	if cfg.AnchorHost == "" {
		cfg.AnchorHost = defaultAnchorHost
	}

	return &Prober{
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
		anchorHost:  cfg.AnchorHost,
		logger:      log,
	}
}

// SetProgressFunc installs the progress callback. It is invoked from the
// collecting goroutine, never concurrently with itself.
func (p *Prober) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

type indexedWork struct {
	idx   int
	entry models.PortEntry
}

type indexedOutcome struct {
	idx     int
	outcome models.ProbeOutcome
}

// Scan probes every entry and returns one outcome per entry, in entry order.
// Individual probe failures collapse to false outcomes and never surface as
// errors; the only error path is cancellation of ctx, in which case partial
// results are discarded.
func (p *Prober) Scan(ctx context.Context, entries []models.PortEntry, netctx *models.NetworkContext) (*models.ResultSet, error) {
	if len(entries) == 0 {
		return models.NewResultSet(nil), nil
	}

	bindAddr := chooseBindAddr(netctx)

	p.logger.Debug().
		Str("bind_addr", bindAddr).
		Str("anchor_host", p.anchorHost).
		Int("entries", len(entries)).
		Int("concurrency", p.concurrency).
		Msg("starting scan")

	scanCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	defer cancel()

	workCh := make(chan indexedWork, p.concurrency*workChMultiplier)
	outcomeCh := make(chan indexedOutcome, len(entries))

	var wg sync.WaitGroup

	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			p.worker(scanCtx, bindAddr, workCh, outcomeCh)
		}()
	}

	go func() {
		defer close(workCh)

		for i, e := range entries {
			select {
			case <-scanCtx.Done():
				return
			case workCh <- indexedWork{idx: i, entry: e}:
			}
		}
	}()

	go func() {
		wg.Wait()

		close(outcomeCh)
	}()

	results := make([]models.EntryResult, len(entries))
	for i, e := range entries {
		results[i].Entry = e
	}

	done := 0

	for out := range outcomeCh {
		results[out.idx].Outcome = out.outcome
		done++

		if p.onProgress != nil {
			p.onProgress(done, len(entries))
		}
	}

	if err := scanCtx.Err(); err != nil {
		// Cancelled mid-flight; partial results are not reported.
		return nil, err
	}

	if done < len(entries) {
		return nil, context.Canceled
	}

	return models.NewResultSet(results), nil
}

// Stop cancels an in-flight scan.
func (p *Prober) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Prober) worker(ctx context.Context, bindAddr string, workCh <-chan indexedWork, outcomeCh chan<- indexedOutcome) {
	for w := range workCh {
		outcome := p.probe(ctx, bindAddr, w.entry.Port)

		select {
		case <-ctx.Done():
			return
		case outcomeCh <- indexedOutcome{idx: w.idx, outcome: outcome}:
		}
	}
}

// probe runs both sub-tests for one entry. The tests are independent; both
// complete before the outcome is reported.
func (p *Prober) probe(ctx context.Context, bindAddr string, port int) models.ProbeOutcome {
	var outcome models.ProbeOutcome

	var diag []string

	inbound, err := p.testInbound(bindAddr, port)
	outcome.InboundOpen = inbound

	if err != nil {
		diag = append(diag, "bind: "+err.Error())
	}

	outbound, err := p.testOutbound(ctx, port)
	outcome.OutboundOpen = outbound

	if err != nil {
		diag = append(diag, "connect: "+err.Error())
	}

	outcome.Diag = joinDiag(diag)

	return outcome
}

// testInbound attempts to bind a TCP listener at (bindAddr, port) and
// releases it immediately. Any failure, including permission errors on
// privileged ports, collapses to false.
func (*Prober) testInbound(bindAddr string, port int) (bool, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(bindAddr, strconv.Itoa(port)))
	if err != nil {
		return false, err
	}

	_ = ln.Close()

	return true, nil
}

// testOutbound attempts one timed connect from an ephemeral local port to
// the anchor host on the target port. No retry.
func (p *Prober) testOutbound(ctx context.Context, port int) (bool, error) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var dialer net.Dialer

	conn, err := dialer.DialContext(probeCtx, "tcp", net.JoinHostPort(p.anchorHost, strconv.Itoa(port)))
	if err != nil {
		if probeCtx.Err() != nil {
			return false, probeCtx.Err()
		}

		return false, err
	}

	if cerr := conn.Close(); cerr != nil {
		p.logger.Error().Err(cerr).Msg("failed to close connection")
	}

	return true, nil
}

// chooseBindAddr picks the inbound-test address: the external IP when it
// parses as an IP literal, then the local IP, then the wildcard address.
func chooseBindAddr(netctx *models.NetworkContext) string {
	if netctx == nil {
		return ""
	}

	if netctx.ExternalIP != "" && net.ParseIP(netctx.ExternalIP) != nil {
		return netctx.ExternalIP
	}

	if netctx.LocalIP != "" && net.ParseIP(netctx.LocalIP) != nil {
		return netctx.LocalIP
	}

	return ""
}

func joinDiag(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + "; " + parts[1]
	}
}
