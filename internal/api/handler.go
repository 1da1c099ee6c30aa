package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pantrychef/internal/dictation"
	"pantrychef/internal/logger"
	"pantrychef/internal/recipe"
	"pantrychef/internal/shell"
)

// RecipeService defines the recipe operations the API exposes.
type RecipeService interface {
	GenerateRecipe(ctx context.Context, ingredients string, dietaryTags []string) (*recipe.Recipe, error)
	ScaleIngredients(ctx context.Context, ingredients []string, originalServings, targetServings int) ([]string, error)
	GenerateMarkdown(ctx context.Context, ingredients string) (string, error)
}

// SessionRegistry defines session lookup and lifecycle. Hold keeps a session
// alive while a connection is attached to it.
type SessionRegistry interface {
	Create() *shell.Shell
	Get(id string) (*shell.Shell, error)
	Hold(id string) (release func(), err error)
	Delete(id string) error
}

// Handler handles HTTP requests.
type Handler struct {
	Recipes  RecipeService
	Sessions SessionRegistry
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAllowedOrigins limits WebSocket upgrades to browser origins in the
// list. "*" allows any origin. Without it the upgrader only accepts
// same-host origins.
func WithAllowedOrigins(origins []string) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = originChecker(origins)
	}
}

// NewHandler creates a new Handler.
func NewHandler(recipes RecipeService, sessions SessionRegistry, log *logger.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{Recipes: recipes, Sessions: sessions, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.health)

	recipes := r.Group("/recipes")
	{
		recipes.POST("", h.generateRecipe)
		recipes.POST("/scale", h.scaleIngredients)
		recipes.POST("/markdown", h.generateMarkdown)
	}
	r.POST("/render/markdown", h.renderMarkdown)

	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.createSession)
		sessions.GET("/:id", h.getSession)
		sessions.DELETE("/:id", h.deleteSession)
		sessions.PUT("/:id/ingredients", h.setIngredients)
		sessions.POST("/:id/dietary/:tag", h.toggleDietary)
		sessions.POST("/:id/recipe", h.generateSessionRecipe)
		sessions.POST("/:id/scale", h.scaleSession)
		sessions.POST("/:id/timer/steps/:step", h.startStepTimer)
		sessions.POST("/:id/timer/toggle", h.toggleTimer)
		sessions.POST("/:id/timer/reset", h.resetTimer)
		sessions.POST("/:id/dictation/start", h.startDictation)
		sessions.POST("/:id/dictation/stop", h.stopDictation)
		sessions.GET("/:id/share", h.shareSession)
		sessions.GET("/:id/ws", h.wsConnect)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	case errors.Is(err, recipe.ErrValidation),
		errors.Is(err, shell.ErrInvalidServings),
		errors.Is(err, shell.ErrUntimedStep):
		return http.StatusBadRequest
	case errors.Is(err, recipe.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, recipe.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, shell.ErrBusy),
		errors.Is(err, shell.ErrNoRecipe):
		return http.StatusConflict
	case errors.Is(err, shell.ErrSessionNotFound),
		errors.Is(err, shell.ErrNoSuchStep):
		return http.StatusNotFound
	case errors.Is(err, dictation.ErrUnavailable):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the user-facing text for err.
func errorMessage(err error) string {
	var re *recipe.Error
	if errors.As(err, &re) {
		if errors.Is(err, context.DeadlineExceeded) {
			return "The AI chef took too long to answer. Please try again."
		}
		return re.Message
	}
	return err.Error()
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw("request failed", "path", c.FullPath(), "status", status, "err", err)
	} else {
		h.log.Infow("request rejected", "path", c.FullPath(), "status", status, "err", err)
	}
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

func (h *Handler) session(c *gin.Context) (*shell.Shell, bool) {
	sess, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return sess, true
}
