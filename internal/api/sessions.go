package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantrychef/internal/share"
	"pantrychef/internal/shell"
)

type ingredientsRequest struct {
	Ingredients string `json:"ingredients"`
}

type servingsRequest struct {
	TargetServings int `json:"target_servings"`
}

func (h *Handler) createSession(c *gin.Context) {
	sess := h.Sessions.Create()
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *Handler) getSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setIngredients(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req ingredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, sess.SetIngredients(req.Ingredients))
}

func (h *Handler) toggleDietary(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	_, snap := sess.ToggleDietary(c.Param("tag"))
	c.JSON(http.StatusOK, snap)
}

// generateSessionRecipe runs a generation for the session's current
// ingredients and tags. A second request while one is loading gets 409.
func (h *Handler) generateSessionRecipe(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if _, err := sess.Generate(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) scaleSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req servingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := sess.Scale(c.Request.Context(), req.TargetServings); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// startStepTimer takes a one-based step number, matching what is shown.
func (h *Handler) startStepTimer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step must be a number"})
		return
	}
	st, err := sess.StartStepTimer(step - 1)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) toggleTimer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.ToggleTimer())
}

func (h *Handler) resetTimer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.ResetTimer())
}

func (h *Handler) startDictation(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.StartDictation(); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Dictation().Status())
}

func (h *Handler) stopDictation(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.StopDictation()
	c.JSON(http.StatusOK, sess.Dictation().Status())
}

// shareSession returns the plain-text rendition a client hands to its
// native share sheet or clipboard.
func (h *Handler) shareSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	r, scaled, err := sess.Recipe()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("X-Share-Title", r.RecipeName)
	c.String(http.StatusOK, share.FormatPlainText(r, scaled))
}

var _ SessionRegistry = (*shell.Registry)(nil)
