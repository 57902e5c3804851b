package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
)

type MemberHandler struct {
	engine *engine.Engine
}

func NewMemberHandler(eng *engine.Engine) *MemberHandler {
	return &MemberHandler{engine: eng}
}

// GET /api/boards/:boardId/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.engine.Members(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// PUT /api/boards/:boardId/members
func (h *MemberHandler) SetRole(c *gin.Context) {
	var req models.SetMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := h.engine.SetMemberRole(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"), req.UserID, models.Role(req.Role))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/boards/:boardId/members/:userId
func (h *MemberHandler) Remove(c *gin.Context) {
	if err := h.engine.RemoveMember(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"), c.Param("userId")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
