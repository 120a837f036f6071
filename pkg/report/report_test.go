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

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portreach/portreach/pkg/catalog"
	"github.com/portreach/portreach/pkg/models"
)

func resultSetFromEntries(entries []models.PortEntry) *models.ResultSet {
	results := make([]models.EntryResult, len(entries))
	for i, e := range entries {
		results[i] = models.EntryResult{
			Entry: e,
			Outcome: models.ProbeOutcome{
				InboundOpen:  i%2 == 0,
				OutboundOpen: i%3 == 0,
			},
		}
	}

	return models.NewResultSet(results)
}

func TestGroup_Homomorphism(t *testing.T) {
	rs := resultSetFromEntries(catalog.Common())

	groups := Group(rs)

	total := 0
	seen := make(map[string]bool)

	for _, g := range groups {
		require.False(t, seen[g.Category], "category %s appears twice", g.Category)
		seen[g.Category] = true
		total += len(g.Results)
	}

	assert.Equal(t, rs.Len(), total, "no result dropped, none duplicated")
}

func TestGroup_FirstAppearanceOrder(t *testing.T) {
	entries := []models.PortEntry{
		{Port: 80, Service: "HTTP", Category: "Web"},
		{Port: 25, Service: "SMTP", Category: "Mail"},
		{Port: 8080, Service: "Proxy", Category: "Other"},
		{Port: 443, Service: "HTTPS", Category: "Web"},
	}

	groups := Group(resultSetFromEntries(entries))

	require.Len(t, groups, 3)
	assert.Equal(t, "Web", groups[0].Category)
	assert.Equal(t, "Mail", groups[1].Category)
	assert.Equal(t, "Other", groups[2].Category)

	// Within a category, catalog order is preserved.
	require.Len(t, groups[0].Results, 2)
	assert.Equal(t, 80, groups[0].Results[0].Entry.Port)
	assert.Equal(t, 443, groups[0].Results[1].Entry.Port)
}

func TestGroup_DuplicatePortInDistinctGroups(t *testing.T) {
	entries := []models.PortEntry{
		{Port: 8080, Service: "HTTP-ALT", Category: "Web"},
		{Port: 8080, Service: "Proxy", Category: "Other"},
	}

	groups := Group(resultSetFromEntries(entries))

	require.Len(t, groups, 2)
	require.Len(t, groups[0].Results, 1)
	require.Len(t, groups[1].Results, 1)
	assert.Equal(t, "HTTP-ALT", groups[0].Results[0].Entry.Service)
	assert.Equal(t, "Proxy", groups[1].Results[0].Entry.Service)
}

func TestGroup_Empty(t *testing.T) {
	groups := Group(models.NewResultSet(nil))
	assert.Empty(t, groups)
}

func TestSummarize(t *testing.T) {
	results := []models.EntryResult{
		{Outcome: models.ProbeOutcome{InboundOpen: true, OutboundOpen: true}},
		{Outcome: models.ProbeOutcome{InboundOpen: true}},
		{Outcome: models.ProbeOutcome{OutboundOpen: true}},
		{Outcome: models.ProbeOutcome{}},
		{Outcome: models.ProbeOutcome{InboundOpen: true}},
	}

	s := Summarize(models.NewResultSet(results))

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Bidirectional)
	assert.Equal(t, 2, s.InboundOnly)
	assert.Equal(t, 1, s.OutboundOnly)
	assert.Equal(t, 1, s.Unavailable)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	rs := resultSetFromEntries([]models.PortEntry{
		{Port: 80, Service: "HTTP", Category: "Web"},
		{Port: 22, Service: "SSH", Category: "Remote"},
	})

	exp := NewExport("test-run", &models.NetworkContext{LocalIP: "192.168.1.5"}, rs)

	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, WriteJSON(path, exp))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Export
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "test-run", got.RunID)
	assert.Equal(t, "192.168.1.5", got.LocalIP)
	assert.Equal(t, 2, got.Summary.Total)
	require.Len(t, got.Groups, 2)
}
