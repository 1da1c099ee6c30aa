package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pantrychef/internal/api"
	"pantrychef/internal/config"
	"pantrychef/internal/dictation"
	"pantrychef/internal/logger"
	"pantrychef/internal/platform/provider"
	"pantrychef/internal/recipe"
	"pantrychef/internal/server"
	"pantrychef/internal/shell"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.MissingCredential() {
		log.Warnw("API key is not set; recipe generation will fail until API_KEY or GEMINI_API_KEY is provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen, closeGen, err := provider.New(ctx, cfg)
	if err != nil {
		log.Fatalw("error creating recipe generator", "provider", cfg.Provider, "err", err)
	}
	defer closeGen()

	recipes := recipe.NewService(gen, log.Named("recipe"), recipe.WithTimeout(cfg.RequestTimeout))
	sessions := shell.NewRegistry(recipes, log, func() []shell.Option {
		// Browsers run their own speech recognition and stream results in.
		return []shell.Option{shell.WithRecognizer(dictation.NewStreamRecognizer())}
	}, shell.WithIdleTimeout(cfg.SessionIdleTimeout))
	defer sessions.Close()
	go sessions.Run(ctx)

	handler := api.NewHandler(recipes, sessions, log.Named("api"), api.WithAllowedOrigins(cfg.AllowedOrigins))
	router := newRouter(cfg, handler)

	srv := &server.Server{WriteTimeout: cfg.RequestTimeout + 15*time.Second}
	runHTTPServer(srv, cfg.Port, router, log)

	waitForShutdown(cancel, srv, log)
}

func newRouter(cfg *config.Config, handler *api.Handler) *gin.Engine {
	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Share-Title"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.Register(r)
	return r
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *gin.Engine, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
