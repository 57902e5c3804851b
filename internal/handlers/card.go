package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

type CardHandler struct {
	engine *engine.Engine
}

func NewCardHandler(eng *engine.Engine) *CardHandler {
	return &CardHandler{engine: eng}
}

// POST /api/lists/:listId/cards
func (h *CardHandler) Create(c *gin.Context) {
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	title := utils.SanitizeText(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "title must not be empty"})
		return
	}

	card, err := h.engine.CreateCard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("listId"), title, utils.SanitizeText(req.Description), req.Position)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// PATCH /api/cards/:cardId
func (h *CardHandler) Update(c *gin.Context) {
	var req models.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Title != nil {
		t := utils.SanitizeText(*req.Title)
		if t == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "title must not be empty"})
			return
		}
		req.Title = &t
	}
	if req.Description != nil {
		d := utils.SanitizeText(*req.Description)
		req.Description = &d
	}

	card, err := h.engine.UpdateCard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// POST /api/cards/:cardId/move
func (h *CardHandler) Move(c *gin.Context) {
	var req models.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	card, err := h.engine.MoveCard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"), req.TargetListID, req.Position)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// POST /api/cards/:cardId/archive
func (h *CardHandler) Archive(c *gin.Context) {
	card, err := h.engine.ArchiveCard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DELETE /api/cards/:cardId
func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteCard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/cards/:cardId/labels/:labelId
func (h *CardHandler) AttachLabel(c *gin.Context) {
	card, err := h.engine.AttachLabel(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"), c.Param("labelId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DELETE /api/cards/:cardId/labels/:labelId
func (h *CardHandler) DetachLabel(c *gin.Context) {
	card, err := h.engine.DetachLabel(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"), c.Param("labelId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// POST /api/cards/:cardId/comments
func (h *CardHandler) AddComment(c *gin.Context) {
	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	body := utils.SanitizeText(req.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "comment body must not be empty"})
		return
	}

	comment, err := h.engine.AddComment(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"), body)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GET /api/cards/:cardId/comments
func (h *CardHandler) Comments(c *gin.Context) {
	comments, err := h.engine.Comments(c.Request.Context(), middleware.IdentityFrom(c), c.Param("cardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
