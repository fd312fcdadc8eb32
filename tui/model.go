// Package tui is a bubbletea dashboard fed with generation snapshots and log events
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lixenwraith/genpop/genetic/fitness"
	"github.com/lixenwraith/genpop/logx"
)

const (
	maxEvents    = 500
	eventRows    = 10
	tickInterval = 250 * time.Millisecond
)

// Snapshot is the run state at the end of one generation
type Snapshot struct {
	Title     string
	Problem   string
	StartTime time.Time

	Generation     int
	MaxGenerations int // 0 = unbounded

	Best    float64
	Average float64
	Worst   float64
	StdDev  float64

	Target    float64
	HasTarget bool

	// Fittest describes the current best individual
	Fittest string
}

// Progress returns the completed fraction of the run, by generation budget or else by target
func (s Snapshot) Progress() float64 {
	switch {
	case s.MaxGenerations > 0:
		return fitness.NormalizeLinear(0, float64(s.MaxGenerations))(float64(s.Generation))
	case s.HasTarget:
		return fitness.NormalizeCap(s.Target)(s.Best)
	}
	return 0
}

type (
	MsgSnapshot Snapshot
	MsgEvent    logx.Event
	MsgShutdown struct{}
	MsgTick     time.Time
)

type Model struct {
	snapshot Snapshot
	pending  *Snapshot // latest snapshot received while paused
	events   []logx.Event
	paused   bool

	width  int
	height int
	ready  bool

	progress progress.Model
	viewport viewport.Model

	// prevBest drives the trend arrow
	prevBest float64
}

func NewModel(title string) Model {
	return Model{
		snapshot: Snapshot{Title: title, StartTime: time.Now()},
		events:   make([]logx.Event, 0, maxEvents),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		viewport: viewport.New(0, eventRows),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return MsgTick(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			if !m.paused && m.pending != nil {
				m.apply(*m.pending)
				m.pending = nil
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = max(m.width-4, 10)
		m.viewport.Height = eventRows
		m.progress.Width = max(min(m.width-20, 60), 10)
		return m, nil

	case MsgSnapshot:
		s := Snapshot(msg)
		if m.paused {
			m.pending = &s
			return m, nil
		}
		m.apply(s)
		return m, nil

	case MsgEvent:
		m.addEvent(logx.Event(msg))
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil

	case MsgTick:
		return m, tick()

	case MsgShutdown:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(s Snapshot) {
	if s.StartTime.IsZero() {
		s.StartTime = m.snapshot.StartTime
	}
	if s.Title == "" {
		s.Title = m.snapshot.Title
	}
	m.prevBest = m.snapshot.Best
	m.snapshot = s
}

func (m *Model) addEvent(e logx.Event) {
	m.events = append(m.events, e)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// updateViewportContent rebuilds the event log; call on new events only
func (m *Model) updateViewportContent() {
	lines := make([]string, len(m.events))
	for i, e := range m.events {
		style := styleEventInfo
		icon := "•"
		switch e.Channel {
		case logx.ChanBest:
			style, icon = styleEventBest, "↗"
		case logx.ChanWarn:
			style, icon = styleEventWarn, "⚠"
		case logx.ChanError:
			style, icon = styleEventError, "✗"
		}
		lines[i] = style.Render(fmt.Sprintf("[%s] %s %s", e.Time.Format("15:04:05"), icon, e.Message))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
