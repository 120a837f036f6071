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

import "sync"

// OnceCell is a single-assignment value shared across concurrent readers.
// The first Set wins; later writers observe the conflict through the false
// return and must keep the original value.
type OnceCell struct {
	mu  sync.Mutex
	val string
	set bool
}

// Set stores v if the cell is still empty and reports whether it did.
func (c *OnceCell) Set(v string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set {
		return false
	}

	c.val = v
	c.set = true

	return true
}

// Value returns the stored value and whether the cell has been set.
func (c *OnceCell) Value() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.val, c.set
}
