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

// Package report groups scan results by service category for presentation.
package report

import "github.com/portreach/portreach/pkg/models"

// CategoryGroup holds every result whose entry carries the same category
// label, in catalog order.
type CategoryGroup struct {
	Category string               `json:"category"`
	Results  []models.EntryResult `json:"results"`
}

// Group partitions a result set by category. Groups are ordered by the
// category's first appearance in the catalog and entries keep catalog order
// within their group, so repeated runs render identically. Every result
// lands in exactly one group; no category is invented beyond what the
// entries declare.
func Group(rs *models.ResultSet) []CategoryGroup {
	var groups []CategoryGroup

	index := make(map[string]int)

	for _, res := range rs.Results() {
		i, ok := index[res.Entry.Category]
		if !ok {
			i = len(groups)
			index[res.Entry.Category] = i

			groups = append(groups, CategoryGroup{Category: res.Entry.Category})
		}

		groups[i].Results = append(groups[i].Results, res)
	}

	return groups
}

// Summary counts results per outcome class.
type Summary struct {
	Total         int `json:"total"`
	Bidirectional int `json:"bidirectional"`
	InboundOnly   int `json:"inbound_only"`
	OutboundOnly  int `json:"outbound_only"`
	Unavailable   int `json:"unavailable"`
}

// Summarize tallies the four outcome classes over a result set.
func Summarize(rs *models.ResultSet) Summary {
	s := Summary{Total: rs.Len()}

	for _, res := range rs.Results() {
		switch {
		case res.Outcome.InboundOpen && res.Outcome.OutboundOpen:
			s.Bidirectional++
		case res.Outcome.InboundOpen:
			s.InboundOnly++
		case res.Outcome.OutboundOpen:
			s.OutboundOnly++
		default:
			s.Unavailable++
		}
	}

	return s
}
