// PantryChef in the terminal: turn what is in the pantry into a recipe.
//
// Usage:
//
//	chef [-diet Vegan,Keto] [-dictate] [-markdown] [ingredients...]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"pantrychef/internal/config"
	"pantrychef/internal/logger"
	"pantrychef/internal/platform/chime"
	"pantrychef/internal/platform/clipboard"
	"pantrychef/internal/platform/provider"
	"pantrychef/internal/platform/whisper"
	"pantrychef/internal/recipe"
	"pantrychef/internal/render"
	"pantrychef/internal/share"
	"pantrychef/internal/shell"
	"pantrychef/internal/timer"
)

func main() {
	_ = godotenv.Load()

	diet := flag.String("diet", "", "comma-separated dietary restrictions, e.g. Vegan,Gluten-Free")
	dictate := flag.Bool("dictate", false, "enable voice input via local Whisper STT")
	markdown := flag.Bool("markdown", false, "print a free-text markdown recipe and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	logFile := flag.String("log-file", ".pantrychef/chef.log", "file to write logs to (use \"stderr\" to log to console)")
	noSound := flag.Bool("no-sound", false, "ring the terminal bell instead of playing the timer chime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *verbose {
		level = logger.DebugLevel
	}
	logOut, closeLog := openLog(*logFile)
	defer closeLog()
	// The whisper transcriber logs through the standard library.
	stdlog.SetOutput(logOut)
	log := logger.NewTo(level, logOut)
	defer func() { _ = log.Sync() }()

	if cfg.MissingCredential() {
		fmt.Fprintln(os.Stderr, "warning: no API key set (API_KEY or GEMINI_API_KEY); generation will fail")
		log.Warnw("API key is not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gen, closeGen, err := provider.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating recipe generator: %v\n", err)
		os.Exit(1)
	}
	defer closeGen()

	recipes := recipe.NewService(gen, log.Named("recipe"), recipe.WithTimeout(cfg.RequestTimeout))
	ingredients := strings.Join(flag.Args(), " ")

	if *markdown {
		os.Exit(printMarkdown(ctx, recipes, ingredients, os.Stdout))
	}

	opts := []shell.Option{shell.WithClockOptions(timer.WithCue(newCue(*noSound, log)))}
	if *dictate {
		rec := whisper.New(cfg.WhisperBin, cfg.WhisperModel, log.Named("whisper"), whisper.WithVerbose(*verbose))
		if rec.Available() {
			opts = append(opts, shell.WithRecognizer(rec))
		} else {
			fmt.Fprintf(os.Stderr, "warning: %s not found; dictation disabled\n", cfg.WhisperBin)
		}
	}

	sess := shell.New("terminal", recipes, log.Named("session"), opts...)
	defer sess.Close()
	for _, tag := range strings.Split(*diet, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			sess.ToggleDietary(tag)
		}
	}

	go announce(ctx, sess.Clock(), os.Stdout)

	r := &repl{
		sess:  sess,
		share: share.NewService(nil, clipboard.System{}, log.Named("share")),
		out:   os.Stdout,
	}
	defer r.share.Close()

	if ingredients != "" {
		r.sess.SetIngredients(ingredients)
		r.cook(ctx)
	} else if *dictate {
		r.dictate(ctx)
		if sess.Snapshot().Ingredients != "" {
			r.cook(ctx)
		}
	} else {
		fmt.Println("What's in your pantry? Type: cook <ingredients>, or help.")
	}

	r.run(ctx, os.Stdin)
}

func printMarkdown(ctx context.Context, recipes *recipe.Service, ingredients string, out io.Writer) int {
	md, err := recipes.GenerateMarkdown(ctx, ingredients)
	if err != nil {
		fmt.Fprintln(out, recipe.UserMessage(err))
		return 1
	}
	fmt.Fprint(out, render.TerminalMarkdown(render.ParseMarkdown(md)))
	return 0
}

// newCue picks the audible timer cue: the chime when an audio device
// opens, the terminal bell otherwise.
func newCue(noSound bool, log *logger.Logger) timer.Cue {
	bell := timer.CueFunc(func(context.Context) error {
		_, err := fmt.Fprint(os.Stdout, "\a")
		return err
	})
	if noSound {
		return bell
	}
	c, err := chime.New(log)
	if err != nil {
		log.Warnw("audio unavailable, using terminal bell", "err", err)
		return bell
	}
	return c
}

func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}
