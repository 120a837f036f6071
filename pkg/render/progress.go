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

package render

import (
	"fmt"
	"io"
	"strings"
)

const progressBarWidth = 40

// ProgressBar draws an inline progress bar, redrawn in place once per
// completed probe. It is driven by the prober's progress callback, which is
// never called concurrently.
type ProgressBar struct {
	out    io.Writer
	total  int
	styles styles
}

// NewProgressBar sizes a bar for total steps.
func NewProgressBar(out io.Writer, total int) *ProgressBar {
	return &ProgressBar{
		out:    out,
		total:  total,
		styles: newStyles(),
	}
}

// Update redraws the bar at done of total completed steps.
func (p *ProgressBar) Update(done, total int) {
	if total <= 0 {
		return
	}

	filled := done * progressBarWidth / total
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)

	fmt.Fprintf(p.out, "\r%s %d/%d", p.styles.bar.Render("["+bar+"]"), done, total)
}

// Finish completes the bar and moves to the next line.
func (p *ProgressBar) Finish() {
	p.Update(p.total, p.total)
	fmt.Fprintln(p.out, " done")
}
