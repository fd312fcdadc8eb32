package logx

import (
	"bytes"
	"go/format"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := New(buf)
	l.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC) }
	return l
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Gen("gen=%d best=%.2f", 10, 0.5)
	l.Best("improved")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "12:30:45Z  [GEN ]  gen=10 best=0.50", lines[0])
	assert.Equal(t, "12:30:45Z  [BEST]  improved", lines[1])
	assert.NotContains(t, buf.String(), "\x1b[", "no color for buffers")
}

func TestLogger_Sinks(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	var got []Event
	l.AddSink(func(e Event) { got = append(got, e) })
	l.SetOutput(nil)

	l.Warn("slow generation")
	l.Error("boom")

	assert.Empty(t, buf.String(), "console silenced")
	require.Len(t, got, 2)
	assert.Equal(t, ChanWarn, got[0].Channel)
	assert.Equal(t, "slow generation", got[0].Message)
	assert.Equal(t, ChanError, got[1].Channel)
}

func TestLogger_Color(t *testing.T) {
	l := New(nil)
	l.color = true
	assert.Equal(t, blue+"[GEN ]"+reset, l.tag(ChanGen))
	l.color = false
	assert.Equal(t, "[DONE]", l.tag(ChanDone))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{12*time.Minute + 5*time.Second, "12m"},
		{83 * time.Minute, "1h23m"},
		{2 * time.Hour, "2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("logx.go")
	require.NoError(t, err)
	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src))
}
