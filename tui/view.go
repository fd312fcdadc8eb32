package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/genpop/logx"
)

var (
	styleGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleRed   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleGray  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	stylePanel  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)

	styleEventInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleEventBest  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleEventWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	styleEventError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderProgress(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderFitness(), m.renderSpread()),
		m.renderFittest(),
		stylePanel.Render(m.viewport.View()),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	s := m.snapshot
	return styleHeader.Render(fmt.Sprintf("%s │ problem=%s │ runtime=%s",
		s.Title, s.Problem, logx.FormatDuration(time.Since(s.StartTime))))
}

func (m Model) renderProgress() string {
	s := m.snapshot
	budget := "∞"
	if s.MaxGenerations > 0 {
		budget = fmt.Sprint(s.MaxGenerations)
	}
	return stylePanel.Render(fmt.Sprintf("gen %d/%s %s", s.Generation, budget, m.progress.ViewAs(s.Progress())))
}

func (m Model) renderFitness() string {
	s := m.snapshot
	target := styleDim.Render("none")
	if s.HasTarget {
		target = fmt.Sprintf("%.4f", s.Target)
	}
	return stylePanel.Width(40).Render(fmt.Sprintf("best=%s %s │ target=%s", m.bestColor(), m.trend(), target))
}

func (m Model) renderSpread() string {
	s := m.snapshot
	return stylePanel.Width(50).Render(fmt.Sprintf("avg=%.4f │ worst=%.4f │ σ=%.4f", s.Average, s.Worst, s.StdDev))
}

func (m Model) renderFittest() string {
	if m.snapshot.Fittest == "" {
		return stylePanel.Render("fittest: " + styleDim.Render("(none)"))
	}
	return stylePanel.Render("fittest: " + m.snapshot.Fittest)
}

func (m Model) renderFooter() string {
	state := ""
	if m.paused {
		state = " │ PAUSED"
	}
	return styleGray.Render("q quit │ p pause │ ↑/↓ scroll" + state)
}

func (m Model) bestColor() string {
	v := fmt.Sprintf("%.4f", m.snapshot.Best)
	if m.snapshot.Best > m.prevBest {
		return styleGreen.Render(v)
	}
	return v
}

func (m Model) trend() string {
	switch {
	case m.snapshot.Best > m.prevBest:
		return styleGreen.Render("↑")
	case m.snapshot.Best < m.prevBest:
		return styleRed.Render("↓")
	}
	return styleDim.Render("=")
}
