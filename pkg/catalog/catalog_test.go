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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portreach/portreach/pkg/models"
)

func TestCommon_ValidEntries(t *testing.T) {
	entries := Common()
	require.NotEmpty(t, entries)
	assert.Equal(t, Size(), len(entries))

	for _, e := range entries {
		assert.Greater(t, e.Port, 0)
		assert.LessOrEqual(t, e.Port, 65535)
		assert.NotEmpty(t, e.Service)
		assert.NotEmpty(t, e.Category)
	}
}

func TestCommon_DuplicatePortsAreDistinctEntries(t *testing.T) {
	entries := Common()

	var port8080 []models.PortEntry

	for _, e := range entries {
		if e.Port == 8080 {
			port8080 = append(port8080, e)
		}
	}

	require.Len(t, port8080, 2, "8080 is catalogued as both HTTP-ALT and Proxy")
	assert.NotEqual(t, port8080[0].Category, port8080[1].Category)
}

func TestCommon_ReturnsCopy(t *testing.T) {
	first := Common()
	first[0].Service = "mutated"

	second := Common()
	assert.NotEqual(t, "mutated", second[0].Service, "catalog must be immutable")
}

func TestCommon_CoversExpectedCategories(t *testing.T) {
	want := []string{
		CategoryWeb, CategoryMail, CategoryDatabase, CategoryRemote,
		CategoryFile, CategoryContainer, CategoryOther,
	}

	seen := make(map[string]bool)
	for _, e := range Common() {
		seen[e.Category] = true
	}

	for _, c := range want {
		assert.True(t, seen[c], "category %s missing from catalog", c)
	}

	assert.Len(t, seen, len(want), "no categories beyond the declared set")
}
