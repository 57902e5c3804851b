package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

type BoardHandler struct {
	engine *engine.Engine
}

func NewBoardHandler(eng *engine.Engine) *BoardHandler {
	return &BoardHandler{engine: eng}
}

// POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req models.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	title := utils.SanitizeText(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "title must not be empty"})
		return
	}

	board, err := h.engine.CreateBoard(c.Request.Context(), middleware.IdentityFrom(c), title, models.Visibility(req.Visibility))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// GET /api/boards
func (h *BoardHandler) Mine(c *gin.Context) {
	boards, err := h.engine.MyBoards(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// GET /api/boards/:boardId
func (h *BoardHandler) Get(c *gin.Context) {
	view, err := h.engine.GetBoard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PATCH /api/boards/:boardId
func (h *BoardHandler) Rename(c *gin.Context) {
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

	board, err := h.engine.RenameBoard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"), title)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// POST /api/boards/:boardId/archive
func (h *BoardHandler) Archive(c *gin.Context) {
	board, err := h.engine.ArchiveBoard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// DELETE /api/boards/:boardId
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteBoard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
