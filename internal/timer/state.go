// Package timer implements the single cooking countdown: a pure state value
// with explicit transitions, and a Clock that drives it once per second.
package timer

import "fmt"

// Phase is the coarse timer state shown to the user.
type Phase int

const (
	// PhaseIdle means no duration has been set.
	PhaseIdle Phase = iota
	// PhaseReady means a duration is set and the timer is not running.
	PhaseReady
	// PhaseRunning means the countdown is ticking.
	PhaseRunning
	// PhaseFinished means a running countdown reached zero.
	PhaseFinished
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the countdown value. Transitions return a new State and never
// mutate the receiver. Remaining only decreases while Running and never
// goes below zero.
type State struct {
	Initial   int  `json:"initial_seconds"`
	Remaining int  `json:"remaining_seconds"`
	Running   bool `json:"running"`
	Finished  bool `json:"finished"`
}

// Seed sets a fresh duration in minutes and clears any finished status.
// With autostart the countdown starts at once (per-step timers); without it
// the timer waits in ready (seeding from a recipe's total time).
func (s State) Seed(minutes int, autostart bool) State {
	if minutes < 0 {
		minutes = 0
	}
	secs := minutes * 60
	return State{
		Initial:   secs,
		Remaining: secs,
		Running:   autostart && secs > 0,
	}
}

// Start begins counting down. No-op when nothing remains.
func (s State) Start() State {
	if s.Remaining <= 0 {
		return s
	}
	s.Running = true
	s.Finished = false
	return s
}

// Pause stops counting down, keeping the remaining time.
func (s State) Pause() State {
	s.Running = false
	return s
}

// Toggle starts a stopped timer or pauses a running one. No-op when nothing
// remains.
func (s State) Toggle() State {
	if s.Remaining <= 0 {
		return s
	}
	if s.Running {
		return s.Pause()
	}
	return s.Start()
}

// Reset restores the last seeded duration and stops the countdown.
func (s State) Reset() State {
	return State{Initial: s.Initial, Remaining: s.Initial}
}

// Tick advances a running countdown by one second. fired is true only on
// the tick that reaches zero.
func (s State) Tick() (next State, fired bool) {
	if !s.Running || s.Remaining <= 0 {
		return s, false
	}
	s.Remaining--
	if s.Remaining == 0 {
		s.Running = false
		s.Finished = true
		return s, true
	}
	return s, false
}

// Phase derives the coarse state.
func (s State) Phase() Phase {
	switch {
	case s.Finished:
		return PhaseFinished
	case s.Running:
		return PhaseRunning
	case s.Initial == 0 && s.Remaining == 0:
		return PhaseIdle
	default:
		return PhaseReady
	}
}

// Visible reports whether the timer should be displayed at all.
func (s State) Visible() bool {
	return s.Initial > 0
}

// Display formats the remaining time as MM:SS.
func (s State) Display() string {
	return FormatClock(s.Remaining)
}

// FormatClock formats seconds as zero-padded MM:SS, clamping negatives to
// 00:00. Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
