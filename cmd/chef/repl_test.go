package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/logger"
	"pantrychef/internal/recipe"
	"pantrychef/internal/share"
	"pantrychef/internal/shell"
	"pantrychef/internal/timer"
)

type mockGenerator struct {
	recipe *recipe.Recipe
	scaled []string
	err    error
}

func (m *mockGenerator) GenerateRecipe(context.Context, string, []string) (*recipe.Recipe, error) {
	return m.recipe, m.err
}

func (m *mockGenerator) ScaleIngredients(context.Context, []string, int, int) ([]string, error) {
	return m.scaled, m.err
}

type mockClipboard struct {
	text string
}

func (m *mockClipboard) WriteText(text string) error {
	m.text = text
	return nil
}

func newTestRepl(gen *mockGenerator) (*repl, *bytes.Buffer, *mockClipboard) {
	var out bytes.Buffer
	clip := &mockClipboard{}
	sess := shell.New("test", gen, logger.Nop())
	return &repl{
		sess:  sess,
		share: share.NewService(nil, clip, logger.Nop()),
		out:   &out,
	}, &out, clip
}

func shakshuka() *recipe.Recipe {
	return &recipe.Recipe{
		RecipeName:  "Shakshuka",
		Description: "Eggs poached in spiced tomato.",
		Difficulty:  recipe.DifficultyMedium,
		TotalTime:   "30 minutes",
		Servings:    2,
		Ingredients: []string{"4 eggs", "1 can tomatoes"},
		Instructions: []recipe.Instruction{
			{Text: "Simmer the sauce.", DurationMinutes: recipe.IntPtr(10)},
			{Text: "Crack in the eggs."},
		},
	}
}

func TestReplCookAndShow(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{recipe: shakshuka()})
	defer r.sess.Close()

	r.run(context.Background(), strings.NewReader("cook eggs, tomatoes\nquit\n"))

	text := out.String()
	assert.Contains(t, text, "Shakshuka")
	assert.Contains(t, text, "4 eggs")
	assert.Contains(t, text, "[t1: Start 10-minute timer]")
	assert.Contains(t, text, "Timer ready: 30:00")
}

func TestReplStepTimer(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{recipe: shakshuka()})
	defer r.sess.Close()

	r.handle(context.Background(), "cook eggs")
	out.Reset()

	r.handle(context.Background(), "t1")
	assert.Contains(t, out.String(), "10:00")
	assert.True(t, r.sess.Clock().State().Running)

	out.Reset()
	r.handle(context.Background(), "t2")
	assert.Contains(t, out.String(), "Cannot start a timer for step 2")

	r.handle(context.Background(), "pause")
	assert.False(t, r.sess.Clock().State().Running)
}

func TestReplScale(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{recipe: shakshuka(), scaled: []string{"8 eggs", "2 cans tomatoes"}})
	defer r.sess.Close()

	r.handle(context.Background(), "cook eggs")
	out.Reset()

	r.handle(context.Background(), "scale 4")
	assert.Contains(t, out.String(), "8 eggs")

	out.Reset()
	r.handle(context.Background(), "scale 4")
	assert.Contains(t, out.String(), shell.ErrInvalidServings.Error())
}

func TestReplShareCopies(t *testing.T) {
	r, out, clip := newTestRepl(&mockGenerator{recipe: shakshuka()})
	defer r.sess.Close()

	r.handle(context.Background(), "cook eggs")
	r.handle(context.Background(), "share")

	assert.Contains(t, clip.text, "Shakshuka")
	assert.Contains(t, clip.text, "2. Crack in the eggs.")
	assert.Contains(t, out.String(), share.ConfirmText)
}

func TestReplCookFailureShowsMessage(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{err: recipe.ErrServiceUnavailable})
	defer r.sess.Close()

	r.handle(context.Background(), "cook eggs")
	assert.Contains(t, out.String(), recipe.ErrServiceUnavailable.Message)
}

func TestReplDiet(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{})
	defer r.sess.Close()

	r.handle(context.Background(), "diet vegan")
	assert.Contains(t, out.String(), "Dietary restrictions: Vegan")

	out.Reset()
	r.handle(context.Background(), "diet vegan")
	assert.Contains(t, out.String(), "Dietary restrictions: none")
}

func TestReplDictateUnavailable(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{})
	defer r.sess.Close()

	r.handle(context.Background(), "dictate")
	assert.Contains(t, out.String(), "Dictation is not available")
}

func TestReplQuitAndUnknown(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{})
	defer r.sess.Close()

	assert.False(t, r.handle(context.Background(), "flambé"))
	assert.Contains(t, out.String(), `Unknown command "flambé"`)
	assert.True(t, r.handle(context.Background(), "quit"))
}

func TestStepCommand(t *testing.T) {
	n, ok := stepCommand("t3")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"t", "t0", "tea", "x3"} {
		_, ok := stepCommand(bad)
		assert.False(t, ok, bad)
	}
}

func TestPrintTimerHidden(t *testing.T) {
	r, out, _ := newTestRepl(&mockGenerator{})
	defer r.sess.Close()

	r.printTimer(timer.State{})
	assert.Contains(t, out.String(), "No timer set.")
}
