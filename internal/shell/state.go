package shell

import (
	"errors"

	"pantrychef/internal/recipe"
)

// ErrBusy is returned when a request is triggered while the same kind of
// request is still outstanding.
var ErrBusy = errors.New("a request is already in progress")

// Phase is the generation status of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is Idle, Loading, Success(Recipe) or Failed(Err). Recipe is set
// only in Success and Err only in Failed.
type State struct {
	Phase  Phase
	Recipe *recipe.Recipe
	Err    error
}

// Begin moves to Loading. It refuses while already loading.
func (s State) Begin() (State, error) {
	if s.Phase == PhaseLoading {
		return s, ErrBusy
	}
	return State{Phase: PhaseLoading}, nil
}

// Succeed completes a load with r. Outside Loading it is a no-op.
func (s State) Succeed(r *recipe.Recipe) State {
	if s.Phase != PhaseLoading {
		return s
	}
	return State{Phase: PhaseSuccess, Recipe: r}
}

// Fail completes a load with err. Outside Loading it is a no-op.
func (s State) Fail(err error) State {
	if s.Phase != PhaseLoading {
		return s
	}
	return State{Phase: PhaseFailed, Err: err}
}
