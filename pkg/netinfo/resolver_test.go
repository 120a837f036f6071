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

package netinfo

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portreach/portreach/pkg/logger"
)

func TestResolver_ExternalIPFromEchoService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("198.51.100.42\n"))
	}))
	defer srv.Close()

	r := NewResolver(Config{
		EchoServiceURL: srv.URL,
		// Local discovery against the echo server keeps the test offline.
		RouteDiscoveryHost: srv.Listener.Addr().String(),
	}, logger.NewTestLogger())

	netctx := r.Resolve(context.Background())

	assert.Equal(t, "198.51.100.42", netctx.ExternalIP)
	assert.NotEmpty(t, netctx.LocalIP)
	assert.NotNil(t, net.ParseIP(netctx.LocalIP))
}

func TestResolver_EchoFailureDegrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-OK status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "body is not an IP",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>hello</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			r := NewResolver(Config{
				EchoServiceURL:     srv.URL,
				RouteDiscoveryHost: srv.Listener.Addr().String(),
			}, logger.NewTestLogger())

			netctx := r.Resolve(context.Background())

			assert.Empty(t, netctx.ExternalIP, "failed echo must leave the field unset")
		})
	}
}

func TestResolver_EchoTimeoutBounded(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))

	defer func() {
		close(block)
		srv.Close()
	}()

	r := NewResolver(Config{
		EchoServiceURL:     srv.URL,
		RouteDiscoveryHost: srv.Listener.Addr().String(),
		EchoTimeout:        200 * time.Millisecond,
	}, logger.NewTestLogger())

	start := time.Now()
	netctx := r.Resolve(context.Background())

	assert.Empty(t, netctx.ExternalIP)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestResolver_SetOnceAcrossRepeatedResolution(t *testing.T) {
	ips := []string{"198.51.100.1", "198.51.100.2"}
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ips[calls%len(ips)]))
		calls++
	}))
	defer srv.Close()

	r := NewResolver(Config{
		EchoServiceURL:     srv.URL,
		RouteDiscoveryHost: srv.Listener.Addr().String(),
	}, logger.NewTestLogger())

	first := r.Resolve(context.Background())
	require.Equal(t, "198.51.100.1", first.ExternalIP)

	// A repeated resolution must not overwrite the cached value.
	second := r.Resolve(context.Background())
	assert.Equal(t, "198.51.100.1", second.ExternalIP)
	assert.Equal(t, 2, calls)

	v, ok := r.ExternalCell().Value()
	require.True(t, ok)
	assert.Equal(t, "198.51.100.1", v)
}

func TestParseInterfaceAddr(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{name: "CIDR notation", addr: "192.168.1.5/24", want: "192.168.1.5"},
		{name: "plain IP", addr: "192.168.1.5", want: "192.168.1.5"},
		{name: "garbage", addr: "not-an-address", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := parseInterfaceAddr(tt.addr)
			if tt.want == "" {
				assert.Nil(t, ip)
				return
			}

			require.NotNil(t, ip)
			assert.Equal(t, tt.want, ip.String())
		})
	}
}

func TestHasFlag(t *testing.T) {
	flags := []string{"up", "broadcast", "multicast"}

	assert.True(t, hasFlag(flags, "up"))
	assert.True(t, hasFlag(flags, "UP"))
	assert.False(t, hasFlag(flags, "loopback"))
}
