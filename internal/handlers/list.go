package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

type ListHandler struct {
	engine *engine.Engine
}

func NewListHandler(eng *engine.Engine) *ListHandler {
	return &ListHandler{engine: eng}
}

// POST /api/boards/:boardId/lists
func (h *ListHandler) Create(c *gin.Context) {
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	title := utils.SanitizeText(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "title must not be empty"})
		return
	}

	list, err := h.engine.CreateList(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"), title, req.Position)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// PATCH /api/lists/:listId
func (h *ListHandler) Rename(c *gin.Context) {
	var req models.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	title := utils.SanitizeText(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "title must not be empty"})
		return
	}

	list, err := h.engine.RenameList(c.Request.Context(), middleware.IdentityFrom(c), c.Param("listId"), title)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/lists/:listId/move
func (h *ListHandler) Move(c *gin.Context) {
	var req models.MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.engine.MoveList(c.Request.Context(), middleware.IdentityFrom(c), c.Param("listId"), req.Position)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/lists/:listId/archive
func (h *ListHandler) Archive(c *gin.Context) {
	list, err := h.engine.ArchiveList(c.Request.Context(), middleware.IdentityFrom(c), c.Param("listId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DELETE /api/lists/:listId
func (h *ListHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteList(c.Request.Context(), middleware.IdentityFrom(c), c.Param("listId")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
