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

// Package models provides data models for the port reachability prober.
package models

// PortEntry describes one row of the probe catalog. The catalog may carry
// the same port number under more than one service label (e.g. 8080 as
// HTTP-ALT and as Proxy); each row is probed and reported independently.
type PortEntry struct {
	Port     int    `json:"port"`
	Service  string `json:"service"`
	Category string `json:"category"`
}

// ProbeOutcome is the result of the dual test for a single catalog entry.
// InboundOpen means the OS permitted binding a listener at the chosen probe
// address; it is a proxy for inbound availability, not proof of reachability
// from outside the host. OutboundOpen means a timed connect to the external
// anchor host on the entry's port succeeded.
type ProbeOutcome struct {
	InboundOpen  bool `json:"inbound_open"`
	OutboundOpen bool `json:"outbound_open"`
	// Diag keeps the short failure cause for operator display. It never
	// changes the boolean signal.
	Diag string `json:"diag,omitempty"`
}

// EntryResult pairs a catalog entry with its probe outcome.
type EntryResult struct {
	Entry   PortEntry    `json:"entry"`
	Outcome ProbeOutcome `json:"outcome"`
}

// ResultSet holds one EntryResult per catalog row, in catalog order. It is
// built once by the prober and read-only afterwards.
type ResultSet struct {
	results []EntryResult
}

// NewResultSet creates a ResultSet from collected results. The slice is
// owned by the ResultSet after the call.
func NewResultSet(results []EntryResult) *ResultSet {
	return &ResultSet{results: results}
}

// Len returns the number of results, which equals the catalog length.
func (rs *ResultSet) Len() int {
	return len(rs.results)
}

// Results returns the results in catalog order. Callers must not modify the
// returned slice.
func (rs *ResultSet) Results() []EntryResult {
	return rs.results
}

// Outcome returns the outcome at catalog index i.
func (rs *ResultSet) Outcome(i int) ProbeOutcome {
	return rs.results[i].Outcome
}

// NetworkContext carries the probe anchors resolved at startup. Either field
// may be empty when resolution failed; the prober degrades to the next
// fallback address rather than aborting.
type NetworkContext struct {
	LocalIP    string
	ExternalIP string
}
