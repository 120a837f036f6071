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

// Package render prints the operator-facing report: banner, network info,
// grouped results, legend and notes. It consumes a finished result set and
// the resolved address strings; it never probes anything itself.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/portreach/portreach/pkg/models"
	"github.com/portreach/portreach/pkg/report"
)

// Renderer writes the report to a single output stream.
type Renderer struct {
	out    io.Writer
	styles styles
}

// New creates a renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		styles: newStyles(),
	}
}

// Banner prints the tool header.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.title.Render("=== portreach ==="))
	fmt.Fprintln(r.out, r.styles.subtitle.Render("local port reachability report"))
	fmt.Fprintln(r.out)
}

// NetworkInfo prints the resolved probe anchors. Unset fields render as
// "unavailable" so the operator knows the scan ran degraded.
func (r *Renderer) NetworkInfo(netctx *models.NetworkContext) {
	local := netctx.LocalIP
	if local == "" {
		local = r.styles.bad.Render("unavailable")
	}

	external := netctx.ExternalIP
	if external == "" {
		external = r.styles.bad.Render("unavailable")
	} else {
		external = r.styles.good.Render(external)
	}

	fmt.Fprintf(r.out, "%s %s\n", r.styles.label.Render("Local IP:"), local)
	fmt.Fprintf(r.out, "%s %s\n", r.styles.label.Render("External IP:"), external)
}

// Results prints the grouped report followed by the summary line.
func (r *Renderer) Results(groups []report.CategoryGroup, summary report.Summary) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.title.Render("=== Scan Results ==="))

	for _, g := range groups {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.category.Render("--- "+g.Category+" ---"))

		for _, res := range g.Results {
			fmt.Fprintf(r.out, "Port %5d (%-15s): %s\n",
				res.Entry.Port, res.Entry.Service, r.statusLine(res.Outcome))
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %d probed, %d bidirectional, %d inbound-only, %d outbound-only, %d unavailable\n",
		r.styles.label.Render("Summary:"),
		summary.Total, summary.Bidirectional, summary.InboundOnly, summary.OutboundOnly, summary.Unavailable)
}

func (r *Renderer) statusLine(o models.ProbeOutcome) string {
	switch {
	case o.InboundOpen && o.OutboundOpen:
		return r.styles.good.Render("✓ available both ways")
	case o.InboundOpen:
		return r.styles.partial.Render("↓ inbound only")
	case o.OutboundOpen:
		return r.styles.partial.Render("↑ outbound only")
	default:
		return r.styles.bad.Render("✗ unavailable")
	}
}

// Legend prints the glyph legend and the usual caveats.
func (r *Renderer) Legend() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.label.Render("Legend:"))
	fmt.Fprintf(r.out, "✓ %s: port can accept and initiate connections\n", r.styles.good.Render("available both ways"))
	fmt.Fprintf(r.out, "↓ %s: port only accepts inbound connections\n", r.styles.partial.Render("inbound only"))
	fmt.Fprintf(r.out, "↑ %s: port only allows outbound connections\n", r.styles.partial.Render("outbound only"))
	fmt.Fprintf(r.out, "✗ %s: port is unavailable in both directions\n", r.styles.bad.Render("unavailable"))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.label.Render("Notes:"))
	fmt.Fprintln(r.out, "1. Ports below 1024 may need elevated privileges to bind")
	fmt.Fprintln(r.out, "2. Firewall rules can change what the probes observe")
	fmt.Fprintln(r.out, "3. The inbound test checks bindability, not reachability from outside")
}

// WaitForQuit blocks until the operator types "q" followed by Enter.
func (r *Renderer) WaitForQuit(in io.Reader) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.hint.Render("press 'q' then Enter to exit..."))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			return
		}
	}
}
