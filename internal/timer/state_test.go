package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedFromTotalTimeWaitsReady(t *testing.T) {
	s := State{}.Seed(25, false)

	assert.Equal(t, 1500, s.Initial)
	assert.Equal(t, 1500, s.Remaining)
	assert.False(t, s.Running)
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, "25:00", s.Display())
	assert.True(t, s.Visible())
}

func TestSeedZeroIsIdleAndHidden(t *testing.T) {
	s := State{}.Seed(0, true)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Running)
	assert.False(t, s.Visible())
	assert.Equal(t, PhaseIdle, State{}.Seed(-3, false).Phase())
}

func TestCountdownFiresExactlyOnce(t *testing.T) {
	const minutes = 2
	s := State{}.Seed(minutes, true)
	assert.Equal(t, PhaseRunning, s.Phase())

	fires := 0
	for i := 0; i < minutes*60; i++ {
		var fired bool
		s, fired = s.Tick()
		if fired {
			fires++
		}
	}

	assert.Equal(t, 1, fires)
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, PhaseFinished, s.Phase())
	assert.False(t, s.Running)

	// Further ticks never go negative or fire again.
	for i := 0; i < 5; i++ {
		var fired bool
		s, fired = s.Tick()
		assert.False(t, fired)
	}
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, "00:00", s.Display())
}

func TestPauseResumePreservesRemaining(t *testing.T) {
	s := State{}.Seed(1, true)
	for i := 0; i < 17; i++ {
		s, _ = s.Tick()
	}
	assert.Equal(t, 43, s.Remaining)

	s = s.Pause()
	for i := 0; i < 100; i++ {
		s, _ = s.Tick()
	}
	assert.Equal(t, 43, s.Remaining)
	assert.Equal(t, PhaseReady, s.Phase())

	s = s.Start()
	s, _ = s.Tick()
	assert.Equal(t, 42, s.Remaining)
}

func TestToggle(t *testing.T) {
	s := State{}.Seed(1, false)
	s = s.Toggle()
	assert.True(t, s.Running)
	s = s.Toggle()
	assert.False(t, s.Running)

	idle := State{}
	assert.Equal(t, idle, idle.Toggle())
	assert.Equal(t, idle, idle.Start())
}

func TestStartAtZeroIsNoop(t *testing.T) {
	s := State{}.Seed(1, true)
	for i := 0; i < 60; i++ {
		s, _ = s.Tick()
	}
	assert.Equal(t, s, s.Start())
	assert.Equal(t, s, s.Toggle())
}

func TestResetRestoresSeed(t *testing.T) {
	s := State{}.Seed(1, true)
	for i := 0; i < 60; i++ {
		s, _ = s.Tick()
	}
	assert.Equal(t, PhaseFinished, s.Phase())

	s = s.Reset()
	assert.Equal(t, 60, s.Remaining)
	assert.False(t, s.Running)
	assert.False(t, s.Finished)
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestReseedClearsFinishedAndReplacesRunning(t *testing.T) {
	s := State{}.Seed(1, true)
	for i := 0; i < 60; i++ {
		s, _ = s.Tick()
	}
	s = s.Seed(5, false)
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, 300, s.Remaining)

	s = s.Start()
	s, _ = s.Tick()
	s = s.Seed(3, true)
	assert.Equal(t, 180, s.Remaining)
	assert.Equal(t, 180, s.Initial)
	assert.True(t, s.Running)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:00", FormatClock(-12))
	assert.Equal(t, "01:05", FormatClock(65))
	assert.Equal(t, "90:00", FormatClock(5400))
}
