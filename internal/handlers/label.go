package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

type LabelHandler struct {
	engine *engine.Engine
}

func NewLabelHandler(eng *engine.Engine) *LabelHandler {
	return &LabelHandler{engine: eng}
}

// GET /api/boards/:boardId/labels
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.engine.Labels(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// POST /api/boards/:boardId/labels
func (h *LabelHandler) Create(c *gin.Context) {
	var req models.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name := utils.SanitizeText(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "name must not be empty"})
		return
	}

	label, err := h.engine.CreateLabel(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"), name, req.Color)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

// DELETE /api/labels/:labelId
func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteLabel(c.Request.Context(), middleware.IdentityFrom(c), c.Param("labelId")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
