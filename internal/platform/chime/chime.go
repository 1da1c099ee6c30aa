// Package chime plays the cooking timer's completion cue on the local
// audio device.
package chime

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"pantrychef/internal/logger"
	"pantrychef/internal/timer"
)

const (
	SampleRate   = 44100
	ChannelCount = 1

	toneHz    = 880.0
	beepLen   = 180 * time.Millisecond
	gapLen    = 120 * time.Millisecond
	beepCount = 3
	amplitude = 0.3
)

// Compile-time interface check.
var _ timer.Cue = (*Chime)(nil)

// Chime rings a short three-beep tone. oto allows a single audio context
// per process, so one Chime should be shared by every timer.
type Chime struct {
	ctx *oto.Context
	pcm []byte
	log *logger.Logger
	mu  sync.Mutex
}

// New opens the audio device. It fails when no device is available.
func New(log *logger.Logger) (*Chime, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debugw("chime initialized", "rate", SampleRate, "channels", ChannelCount)
	return &Chime{ctx: ctx, pcm: Tone(SampleRate), log: log}, nil
}

// Ring plays the tone and blocks until it ends or ctx is cancelled.
// Overlapping rings queue behind each other.
func (c *Chime) Ring(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.ctx.NewPlayer(bytes.NewReader(c.pcm))
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			_ = player.Close()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return player.Close()
}

// Tone renders the cue as signed 16-bit little-endian mono PCM.
func Tone(rate int) []byte {
	beep := int(float64(rate) * beepLen.Seconds())
	gap := int(float64(rate) * gapLen.Seconds())

	var buf bytes.Buffer
	buf.Grow((beep + gap) * beepCount * 2)
	sample := make([]byte, 2)

	for b := 0; b < beepCount; b++ {
		for i := 0; i < beep; i++ {
			// Short linear fade at both ends avoids clicks.
			env := 1.0
			fade := beep / 20
			if i < fade {
				env = float64(i) / float64(fade)
			} else if i > beep-fade {
				env = float64(beep-i) / float64(fade)
			}
			v := amplitude * env * math.Sin(2*math.Pi*toneHz*float64(i)/float64(rate))
			binary.LittleEndian.PutUint16(sample, uint16(int16(v*math.MaxInt16)))
			buf.Write(sample)
		}
		buf.Write(make([]byte, gap*2))
	}
	return buf.Bytes()
}
