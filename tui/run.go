package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/lixenwraith/genpop/logx"
)

// ErrNoTerminal is returned by Start when stdout cannot host the dashboard
var ErrNoTerminal = errors.New("tui disabled: stdout is not an interactive terminal")

// Program runs the dashboard on its own goroutine; Push methods are safe for concurrent use
type Program struct {
	p    *tea.Program
	done chan struct{}
}

// Start launches the dashboard. onExit runs once the program has stopped, whether
// the user quit or Stop was called.
func Start(ctx context.Context, title string, onExit func()) (*Program, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("TERM") == "dumb" {
		return nil, ErrNoTerminal
	}

	prog := &Program{
		p:    tea.NewProgram(NewModel(title), tea.WithContext(ctx), tea.WithAltScreen()),
		done: make(chan struct{}),
	}
	go func() {
		defer close(prog.done)
		_, _ = prog.p.Run()
		if onExit != nil {
			onExit()
		}
	}()
	return prog, nil
}

func (p *Program) PushSnapshot(s Snapshot) {
	p.p.Send(MsgSnapshot(s))
}

func (p *Program) PushEvent(e logx.Event) {
	p.p.Send(MsgEvent(e))
}

// Stop asks the dashboard to quit and waits for the terminal to be restored
func (p *Program) Stop() {
	p.p.Send(MsgShutdown{})
	<-p.done
}
