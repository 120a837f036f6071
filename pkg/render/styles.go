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

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title, subtitle, label, category, good, partial, bad, hint, bar lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Bold(true),
		category: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		good: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		partial: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		bad: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
	}
}
