package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pantrychef/internal/dictation"
	"pantrychef/internal/recipe"
	"pantrychef/internal/render"
	"pantrychef/internal/share"
	"pantrychef/internal/shell"
	"pantrychef/internal/timer"
)

const helpText = `Commands:
  cook <ingredients>   generate a recipe (uses the current ingredients when empty)
  diet <tag>           toggle a dietary restriction (` + "%s" + `)
  dictate              speak ingredients, appended to the current list
  show                 show the recipe again
  scale <servings>     rescale the ingredient list
  t<N>                 start the timer for step N
  toggle               start or pause the timer
  reset                reset the timer
  time                 show the timer
  share                copy the recipe to the clipboard
  help                 show this help
  quit                 leave`

// repl drives one shell session from line commands.
type repl struct {
	sess  *shell.Shell
	share *share.Service
	out   io.Writer
}

// run reads commands until EOF, quit or ctx is cancelled.
func (r *repl) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	r.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if quit := r.handle(ctx, scanner.Text()); quit {
			return
		}
		r.prompt()
	}
}

func (r *repl) prompt() {
	fmt.Fprint(r.out, "chef> ")
}

// handle executes one command and reports whether to quit.
func (r *repl) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "q", "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintf(r.out, helpText+"\n", strings.Join(recipe.KnownDietaryTags, ", "))
	case "cook", "new":
		if arg != "" {
			r.sess.SetIngredients(arg)
		}
		r.cook(ctx)
	case "diet":
		if arg == "" {
			fmt.Fprintf(r.out, "Dietary restrictions: %s\n", dietLine(r.sess.Snapshot().Dietary))
			break
		}
		_, snap := r.sess.ToggleDietary(arg)
		fmt.Fprintf(r.out, "Dietary restrictions: %s\n", dietLine(snap.Dietary))
	case "dictate":
		r.dictate(ctx)
	case "show":
		r.printRecipe()
	case "scale":
		r.scale(ctx, arg)
	case "toggle", "pause", "resume":
		r.printTimer(r.sess.ToggleTimer())
	case "reset":
		r.printTimer(r.sess.ResetTimer())
	case "time", "timer":
		r.printTimer(r.sess.Clock().State())
	case "share":
		r.shareRecipe(ctx)
	default:
		if n, ok := stepCommand(cmd); ok {
			st, err := r.sess.StartStepTimer(n - 1)
			if err != nil {
				fmt.Fprintf(r.out, "Cannot start a timer for step %d: %v\n", n, err)
				break
			}
			r.printTimer(st)
			break
		}
		fmt.Fprintf(r.out, "Unknown command %q. Type help.\n", cmd)
	}
	return false
}

// stepCommand parses "t3" into 3.
func stepCommand(cmd string) (int, bool) {
	if len(cmd) < 2 || (cmd[0] != 't' && cmd[0] != 'T') {
		return 0, false
	}
	n, err := strconv.Atoi(cmd[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func dietLine(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func (r *repl) cook(ctx context.Context) {
	fmt.Fprintln(r.out, "Cooking up a recipe...")
	if _, err := r.sess.Generate(ctx); err != nil {
		fmt.Fprintln(r.out, recipe.UserMessage(err))
		return
	}
	r.printRecipe()
}

func (r *repl) printRecipe() {
	rec, scaled, err := r.sess.Recipe()
	if err != nil {
		fmt.Fprintln(r.out, "No recipe yet. Try: cook eggs, spinach, feta")
		return
	}
	v, err := render.Build(rec, scaled)
	if err != nil {
		fmt.Fprintf(r.out, "Cannot display this recipe: %v\n", err)
		return
	}
	if servings := r.sess.Snapshot().Servings; servings > 0 {
		v.Servings = servings
	}
	fmt.Fprintln(r.out, render.Terminal(v))
	if v.ShowTimer {
		fmt.Fprintf(r.out, "Timer ready: %s (type toggle to start)\n", timer.FormatClock(v.TimerMinutes*60))
	}
}

func (r *repl) scale(ctx context.Context, arg string) {
	target, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(r.out, "Usage: scale <servings>")
		return
	}
	fmt.Fprintf(r.out, "Scaling to %d servings...\n", target)
	scaled, err := r.sess.Scale(ctx, target)
	if err != nil {
		switch {
		case errors.Is(err, shell.ErrNoRecipe), errors.Is(err, shell.ErrInvalidServings), errors.Is(err, shell.ErrBusy):
			fmt.Fprintln(r.out, err)
		default:
			// The previous list stays on screen.
			fmt.Fprintf(r.out, "Could not rescale: %s\n", recipe.UserMessage(err))
		}
		return
	}
	for _, ing := range scaled {
		fmt.Fprintf(r.out, "  • %s\n", ing)
	}
}

func (r *repl) printTimer(st timer.State) {
	if !st.Visible() {
		fmt.Fprintln(r.out, "No timer set.")
		return
	}
	fmt.Fprintf(r.out, "⏱  %s (%s)\n", st.Display(), st.Phase())
}

func (r *repl) shareRecipe(ctx context.Context) {
	rec, scaled, err := r.sess.Recipe()
	if err != nil {
		fmt.Fprintln(r.out, "Nothing to share yet.")
		return
	}
	method, err := r.share.Share(ctx, rec, scaled)
	if err != nil {
		fmt.Fprintln(r.out, "Could not copy the recipe. Here it is instead:")
		fmt.Fprintln(r.out, share.FormatPlainText(rec, scaled))
		return
	}
	if method == share.MethodClipboard {
		fmt.Fprintln(r.out, r.share.Confirmation())
	}
}

// dictate listens until the recognizer stops, then shows the ingredients.
func (r *repl) dictate(ctx context.Context) {
	updates, cancel := r.sess.Subscribe()
	defer cancel()

	if err := r.sess.StartDictation(); err != nil {
		if errors.Is(err, dictation.ErrUnavailable) {
			fmt.Fprintln(r.out, "Dictation is not available. Start with -dictate and a whisper model.")
			return
		}
		fmt.Fprintf(r.out, "Could not start dictation: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, "Listening... (pause to finish)")

	for {
		select {
		case <-ctx.Done():
			r.sess.StopDictation()
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if u.Kind != shell.UpdateDictation || u.Dictation.Listening {
				continue
			}
			fmt.Fprintf(r.out, "Ingredients: %s\n", u.Dictation.Text)
			return
		}
	}
}

// announce prints timer completions as they happen.
func announce(ctx context.Context, clock *timer.Clock, out io.Writer) {
	events, cancel := clock.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind == timer.EventFinished {
				fmt.Fprintln(out, "\n⏰ Time's up!")
			}
		}
	}
}
