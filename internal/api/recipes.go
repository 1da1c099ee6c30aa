package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrychef/internal/render"
	"pantrychef/internal/shell"
)

type generateRequest struct {
	Ingredients         string   `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

type scaleRequest struct {
	Ingredients      []string `json:"ingredients" binding:"required,min=1"`
	OriginalServings int      `json:"original_servings" binding:"required,min=1"`
	TargetServings   int      `json:"target_servings" binding:"required"`
}

type markdownRequest struct {
	Ingredients string `json:"ingredients"`
}

type renderRequest struct {
	Markdown string `json:"markdown"`
}

// generateRecipe returns a structured recipe without creating a session.
func (h *Handler) generateRecipe(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.Recipes.GenerateRecipe(c.Request.Context(), req.Ingredients, req.DietaryRestrictions)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) scaleIngredients(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.TargetServings < 1 || req.TargetServings == req.OriginalServings {
		h.writeError(c, shell.ErrInvalidServings)
		return
	}

	scaled, err := h.Recipes.ScaleIngredients(c.Request.Context(), req.Ingredients, req.OriginalServings, req.TargetServings)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": scaled})
}

// generateMarkdown serves the older markdown flow: free text plus the
// parsed blocks so thin clients need not parse it themselves.
func (h *Handler) generateMarkdown(c *gin.Context) {
	var req markdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	md, err := h.Recipes.GenerateMarkdown(c.Request.Context(), req.Ingredients)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"markdown": md, "blocks": render.ParseMarkdown(md)})
}

func (h *Handler) renderMarkdown(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": render.ParseMarkdown(req.Markdown)})
}
