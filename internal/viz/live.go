// Package viz renders the live progress view and the terminal plots for
// wind runs.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	escapedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	fallenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// LineDoneMsg reports one completed streamline integration.
type LineDoneMsg struct {
	Done    int
	Total   int
	R0      float64
	Escaped bool
}

// RunDoneMsg reports the end of the whole run.
type RunDoneMsg struct {
	MassLoss float64 // g/s
	Err      error
}

// Live is the bubbletea model for a running wind simulation: per-line
// progress counters over a panel with the disc temperature profile.
type Live struct {
	total   int
	done    int
	escaped int
	fallen  int
	lastR0  float64

	profile  []float64 // disc temperature [K] sampled over the launch range
	massLoss float64
	err      error
	finished bool
}

func NewLive(total int, profile []float64) Live {
	return Live{total: total, profile: profile}
}

func (m Live) Init() tea.Cmd { return nil }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case LineDoneMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.lastR0 = msg.R0
		if msg.Escaped {
			m.escaped++
		} else {
			m.fallen++
		}
	case RunDoneMsg:
		m.finished = true
		m.massLoss = msg.MassLoss
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Live) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("qwind") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("lines", fmt.Sprintf("%d / %d", m.done, m.total))
	b.WriteString(labelStyle.Render("escaped") + escapedStyle.Render(fmt.Sprintf("%d", m.escaped)) + "\n")
	b.WriteString(labelStyle.Render("fallen back") + fallenStyle.Render(fmt.Sprintf("%d", m.fallen)) + "\n")
	if m.lastR0 > 0 {
		row("last r_0", fmt.Sprintf("%.1f Rg", m.lastR0))
	}
	if m.finished && m.err == nil {
		row("mass loss", fmt.Sprintf("%.3e g/s", m.massLoss))
	}
	if m.err != nil {
		row("error", m.err.Error())
	}

	if len(m.profile) > 1 {
		graph := asciigraph.Plot(m.profile,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("disc temperature over launch range [K]"),
		)
		b.WriteString(graphStyle.Render(graph) + "\n")
	}

	b.WriteString(helpStyle.Render("q to quit"))
	return b.String()
}
