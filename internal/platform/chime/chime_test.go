package chime

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneLength(t *testing.T) {
	pcm := Tone(SampleRate)

	beep := int(float64(SampleRate) * beepLen.Seconds())
	gap := int(float64(SampleRate) * gapLen.Seconds())
	assert.Len(t, pcm, (beep+gap)*beepCount*2)
}

func TestToneStaysWithinAmplitude(t *testing.T) {
	pcm := Tone(8000)

	limit := int16(amplitude*32767) + 1
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		assert.LessOrEqual(t, v, limit)
		assert.GreaterOrEqual(t, v, -limit)
	}
}

func TestToneEndsInSilence(t *testing.T) {
	pcm := Tone(8000)
	gap := int(8000 * gapLen.Seconds())

	for _, b := range pcm[len(pcm)-gap*2:] {
		assert.Zero(t, b)
	}
}
