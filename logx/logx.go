// Package logx writes channel-tagged console lines and forwards each one as an Event
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	reset   = "\x1b[0m"
	gray    = "\x1b[90m"
	cyan    = "\x1b[36m"
	blue    = "\x1b[34m"
	yellow  = "\x1b[33m"
	green   = "\x1b[32m"
	magenta = "\x1b[35m"
	red     = "\x1b[31m"
)

// Channel is a 4-char line tag; shorter names carry trailing space
type Channel string

const (
	ChanInit  Channel = "INIT"
	ChanGen   Channel = "GEN "
	ChanBest  Channel = "BEST"
	ChanDone  Channel = "DONE"
	ChanWarn  Channel = "WARN"
	ChanError Channel = "ERR "
)

var channelColor = map[Channel]string{
	ChanInit:  cyan,
	ChanGen:   blue,
	ChanBest:  green,
	ChanDone:  magenta,
	ChanWarn:  yellow,
	ChanError: red,
}

// Event is one logged line
type Event struct {
	Time    time.Time
	Channel Channel
	Message string
}

// Logger is safe for concurrent use
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	now   func() time.Time
	sinks []func(Event)
}

// New writes to out, with color only when out is a terminal and NO_COLOR is unset
func New(out io.Writer) *Logger {
	return &Logger{
		out:   out,
		color: colorEnabled(out),
		now:   time.Now,
	}
}

// Console writes to stdout
func Console() *Logger {
	return New(os.Stdout)
}

func colorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetOutput redirects console lines; nil silences them while sinks still receive events
func (l *Logger) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
	l.color = out != nil && colorEnabled(out)
}

// AddSink registers fn to receive every event after it is written
func (l *Logger) AddSink(fn func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, fn)
}

// Logf writes one line on channel ch
func (l *Logger) Logf(ch Channel, format string, args ...any) {
	l.mu.Lock()
	e := Event{Time: l.now().UTC(), Channel: ch, Message: fmt.Sprintf(format, args...)}
	if l.out != nil {
		fmt.Fprintf(l.out, "%s  %s  %s\n", l.c(gray, e.Time.Format("15:04:05Z")), l.tag(ch), e.Message)
	}
	sinks := l.sinks
	l.mu.Unlock()

	for _, fn := range sinks {
		fn(e)
	}
}

func (l *Logger) Init(format string, args ...any) {
	l.Logf(ChanInit, format, args...)
}

func (l *Logger) Gen(format string, args ...any) {
	l.Logf(ChanGen, format, args...)
}

func (l *Logger) Best(format string, args ...any) {
	l.Logf(ChanBest, format, args...)
}

func (l *Logger) Done(format string, args ...any) {
	l.Logf(ChanDone, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.Logf(ChanWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.Logf(ChanError, format, args...)
}

// tag returns the padded colored channel label, e.g. [GEN ]
func (l *Logger) tag(ch Channel) string {
	return l.c(channelColor[ch], fmt.Sprintf("[%-4s]", ch))
}

func (l *Logger) c(color, s string) string {
	if !l.color || color == "" {
		return s
	}
	return color + s + reset
}

// FormatDuration renders d as 45s, 12m or 1h23m
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
