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

// Package netinfo resolves the probe anchors used by the scan engine: the
// machine's local network address and its externally-visible address.
package netinfo

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
	"golang.org/x/sync/errgroup"

	"github.com/portreach/portreach/pkg/logger"
	"github.com/portreach/portreach/pkg/models"
)

const (
	defaultRouteDiscoveryHost = "8.8.8.8:80"
	defaultEchoServiceURL     = "https://api.ipify.org"
	defaultEchoTimeout        = 5 * time.Second

	// The echo service answers with a bare IP literal; anything longer
	// than this is garbage.
	maxEchoBodyBytes = 64
)

// Config controls where the resolver looks for its two addresses.
type Config struct {
	// RouteDiscoveryHost is the target for local IP discovery. No packets
	// are sent; a UDP dial only asks the OS which source address it would
	// route from.
	RouteDiscoveryHost string `json:"route_discovery_host,omitempty"`
	// EchoServiceURL is the address-echo endpoint queried for the
	// externally-visible IP.
	EchoServiceURL string `json:"echo_service_url,omitempty"`
	// EchoTimeout bounds the echo request.
	EchoTimeout time.Duration `json:"echo_timeout,omitempty"`
}

// Resolver determines the NetworkContext once at startup. Both
// sub-resolutions are best-effort: Resolve never fails, it yields a context
// with missing fields and logs what went wrong.
type Resolver struct {
	routeDiscoveryHost string
	echoServiceURL     string
	client             *http.Client
	external           OnceCell
	logger             logger.Logger
}

// NewResolver creates a resolver with defaults applied for any zero config
// field.
func NewResolver(cfg Config, log logger.Logger) *Resolver {
	if cfg.RouteDiscoveryHost == "" {
		cfg.RouteDiscoveryHost = defaultRouteDiscoveryHost
	}

	if cfg.EchoServiceURL == "" {
		cfg.EchoServiceURL = defaultEchoServiceURL
	}

	if cfg.EchoTimeout == 0 {
		cfg.EchoTimeout = defaultEchoTimeout
	}

	return &Resolver{
		routeDiscoveryHost: cfg.RouteDiscoveryHost,
		echoServiceURL:     cfg.EchoServiceURL,
		client:             &http.Client{Timeout: cfg.EchoTimeout},
		logger:             log,
	}
}

// Resolve runs both address lookups concurrently and returns the resulting
// context. Missing fields are empty strings; the caller decides how to
// degrade.
func (r *Resolver) Resolve(ctx context.Context) *models.NetworkContext {
	var localIP string

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ip, err := r.localIP()
		if err != nil {
			r.logger.Warn().Err(err).Msg("failed to determine local IP")
			return nil
		}

		localIP = ip

		return nil
	})

	g.Go(func() error {
		ip, err := r.externalIP(gctx)
		if err != nil {
			r.logger.Warn().Err(err).Msg("failed to determine external IP")
			return nil
		}

		if !r.external.Set(ip) {
			// First successful resolution wins.
			r.logger.Warn().Str("ip", ip).Msg("external IP already set; keeping first value")
		}

		return nil
	})

	// Legs swallow their own failures, so Wait cannot return an error.
	_ = g.Wait()

	external, _ := r.external.Value()

	return &models.NetworkContext{
		LocalIP:    localIP,
		ExternalIP: external,
	}
}

// localIP asks the OS which source address it would use to reach the route
// discovery host. Falls back to interface enumeration when the host is
// unroutable (e.g. no default route).
func (r *Resolver) localIP() (string, error) {
	conn, err := net.Dial("udp", r.routeDiscoveryHost)
	if err != nil {
		return r.localIPFromInterfaces()
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return r.localIPFromInterfaces()
	}

	return localAddr.IP.String(), nil
}

// localIPFromInterfaces picks the first non-loopback IPv4 address from the
// interface list.
func (r *Resolver) localIPFromInterfaces() (string, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return "", fmt.Errorf("listing interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") || !hasFlag(iface.Flags, "up") {
			continue
		}

		for _, addr := range iface.Addrs {
			ip := parseInterfaceAddr(addr.Addr)
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}

			return ip.String(), nil
		}
	}

	return "", errNoLocalAddress
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}

	return false
}

// parseInterfaceAddr handles both plain IPs and CIDR notation, which is what
// gopsutil reports on most platforms.
func parseInterfaceAddr(addr string) net.IP {
	if ip, _, err := net.ParseCIDR(addr); err == nil {
		return ip
	}

	return net.ParseIP(addr)
}

// externalIP queries the address-echo service and validates that the
// response is an IP literal.
func (r *Resolver) externalIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.echoServiceURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building echo request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying echo service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", errEchoServiceFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEchoBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading echo response: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%w: %q", errEchoNotAnIP, ip)
	}

	return ip, nil
}

// ExternalCell exposes the set-once cell so tests can exercise the
// single-assignment contract directly.
func (r *Resolver) ExternalCell() *OnceCell {
	return &r.external
}
