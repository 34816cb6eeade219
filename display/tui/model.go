/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dualclock/dualclock/clocksync"
	"github.com/dualclock/dualclock/display"
)

// RowsMsg carries the rows of one refresh tick
type RowsMsg []display.Row

// debugTickMsg refreshes the debug panel. Ticks of an older generation
// belong to a panel that was closed since and are dropped
type debugTickMsg struct {
	generation int
}

// Tracker is the part of clocksync.Tracker the widget talks to
type Tracker interface {
	TriggerSync(now time.Time)
	State() clocksync.Snapshot
}

// Sampler returns process level values for the debug panel
type Sampler func() map[string]float64

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the clock widget
type Model struct {
	server  string
	tracker Tracker
	sampler Sampler
	now     func() time.Time

	rows   []display.Row
	state  clocksync.Snapshot
	sample map[string]float64

	showDebug bool
	debugGen  int
	quitting  bool
	width     int
}

// NewModel returns the widget model. sampler may be nil
func NewModel(server string, tracker Tracker, sampler Sampler) Model {
	return Model{server: server, tracker: tracker, sampler: sampler, now: time.Now}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

func debugTick(generation int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return debugTickMsg{generation: generation}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case RowsMsg:
		m.rows = msg
		m.state = m.tracker.State()
	case debugTickMsg:
		if !m.showDebug || msg.generation != m.debugGen {
			return m, nil
		}
		m.refreshSample()
		return m, debugTick(m.debugGen)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "s":
		m.tracker.TriggerSync(m.now().Add(m.state.Offset))
		m.state = m.tracker.State()
	case "d":
		m.showDebug = !m.showDebug
		if m.showDebug {
			m.debugGen++
			m.refreshSample()
			return m, debugTick(m.debugGen)
		}
	}
	return m, nil
}

func (m *Model) refreshSample() {
	if m.sampler != nil {
		m.sample = m.sampler()
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("dualclock"))
	b.WriteString(faintStyle.Render(" · " + m.server))
	b.WriteString("\n\n")

	width := 0
	for _, r := range m.rows {
		width = max(width, len(r.Label))
	}
	for _, r := range m.rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s", width, r.Label)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %s  %s", r.Date, r.Time)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.showDebug {
		b.WriteString(m.debugPanel())
	}
	b.WriteString(faintStyle.Render("q quit · s sync now · d debug"))
	return b.String()
}

func (m Model) statusLine() string {
	s := m.state
	var parts []string
	if s.Synced() {
		parts = append(parts,
			"offset "+signed(s.Offset),
			fmt.Sprintf("synced %v ago", m.now().Add(s.Offset).Sub(s.LastSync).Round(time.Second)))
	} else {
		parts = append(parts, warnStyle.Render("not synced"))
	}
	if s.Failures > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("failures %d", s.Failures)))
	}
	if s.Leap.Pending() {
		parts = append(parts, warnStyle.Render("leap "+s.Leap.String()))
	}
	if s.InProgress {
		parts = append(parts, "syncing…")
	}
	return faintStyle.Render("  " + strings.Join(parts, " · "))
}

// signed formats d with an explicit sign
func signed(d time.Duration) string {
	if d < 0 {
		return d.String()
	}
	return "+" + d.String()
}

func (m Model) debugPanel() string {
	s := m.state
	var b strings.Builder
	b.WriteString(labelStyle.Render("  debug"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  attempts %d · skipped %d · samples %d\n", s.Attempts, s.Skipped, s.Samples)
	fmt.Fprintf(&b, "  mean %v · stddev %v · rtt %v · stratum %d\n", s.OffsetMean, s.OffsetStddev, s.RTT, s.Stratum)
	if s.LastError != nil {
		fmt.Fprintf(&b, "  last error: %v\n", s.LastError)
	}
	keys := make([]string, 0, len(m.sample))
	for k := range m.sample {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s %.0f\n", k, m.sample[k])
	}
	return b.String()
}
