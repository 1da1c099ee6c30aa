package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/recipe"
)

func TestStateTransitions(t *testing.T) {
	var s State
	assert.Equal(t, PhaseIdle, s.Phase)

	s, err := s.Begin()
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, s.Phase)

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	r := &recipe.Recipe{RecipeName: "Soup"}
	s = s.Succeed(r)
	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.Same(t, r, s.Recipe)
	assert.NoError(t, s.Err)

	s, err = s.Begin()
	require.NoError(t, err)
	assert.Nil(t, s.Recipe)

	s = s.Fail(recipe.ErrServiceUnavailable)
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Nil(t, s.Recipe)
	assert.ErrorIs(t, s.Err, recipe.ErrServiceUnavailable)
}

func TestStateCompletionOutsideLoadingIsIgnored(t *testing.T) {
	idle := State{}
	assert.Equal(t, idle, idle.Succeed(&recipe.Recipe{}))
	assert.Equal(t, idle, idle.Fail(errors.New("late")))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}
