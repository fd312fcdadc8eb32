package view

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/genpop/parameter"
)

const sampleRate = beep.SampleRate(44100)

// Chime plays a short sine tone through the default audio device
type Chime struct {
	n int
}

// NewChime opens the speaker; callers run silently when it fails
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{n: sampleRate.N(parameter.ViewChimeDuration)}, nil
}

// Play queues one tone; a nil Chime is silent
func (c *Chime) Play() {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, parameter.ViewChimeFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.n, sine))
}

func (c *Chime) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}
