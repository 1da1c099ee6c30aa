package shell

import (
	"pantrychef/internal/dictation"
	"pantrychef/internal/recipe"
	"pantrychef/internal/render"
	"pantrychef/internal/timer"
)

// Snapshot is the read-only view of a session served to clients.
type Snapshot struct {
	ID          string           `json:"id"`
	Ingredients string           `json:"ingredients"`
	Dietary     []string         `json:"dietary_restrictions"`
	Status      string           `json:"status"`
	Error       string           `json:"error,omitempty"`
	Recipe      *recipe.Recipe   `json:"recipe,omitempty"`
	View        *render.View     `json:"view,omitempty"`
	ViewError   string           `json:"view_error,omitempty"`
	Scaled      []string         `json:"scaled_ingredients,omitempty"`
	Servings    int              `json:"servings,omitempty"`
	Scaling     bool             `json:"scaling"`
	ScaleError  string           `json:"scale_error,omitempty"`
	Timer       timer.State      `json:"timer"`
	TimerPhase  string           `json:"timer_phase"`
	TimerShown  bool             `json:"timer_visible"`
	Dictation   dictation.Status `json:"dictation"`
}

// Snapshot captures the session as it is now.
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:          s.id,
		Ingredients: s.field.Text(),
		Dietary:     s.dietary.Tags(),
		Status:      s.state.Phase.String(),
		Recipe:      s.state.Recipe,
		Servings:    s.servings,
		Scaling:     s.scaling,
	}
	if s.state.Err != nil {
		snap.Error = recipe.UserMessage(s.state.Err)
	}
	if s.state.Phase == PhaseSuccess {
		snap.Scaled = append([]string(nil), s.scaled...)
	}
	if s.scaleErr != nil {
		snap.ScaleError = recipe.UserMessage(s.scaleErr)
	}
	s.mu.Unlock()

	if snap.Recipe != nil {
		view, err := render.Build(snap.Recipe, snap.Scaled)
		if err != nil {
			snap.ViewError = err.Error()
		} else {
			if snap.Servings > 0 {
				view.Servings = snap.Servings
			}
			snap.View = view
		}
	}

	ts := s.clock.State()
	snap.Timer = ts
	snap.TimerPhase = ts.Phase().String()
	snap.TimerShown = ts.Visible()
	snap.Dictation = s.dictation.Status()
	return snap
}
