package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahilm/fuzzy"

	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

type SearchHandler struct {
	engine *engine.Engine
}

func NewSearchHandler(eng *engine.Engine) *SearchHandler {
	return &SearchHandler{engine: eng}
}

// SearchResult pairs a matched card with its fuzzy score, best first.
type SearchResult struct {
	Card  *models.Card `json:"card"`
	Score int          `json:"score"`
}

type cardSource []*models.Card

func (s cardSource) String(i int) string {
	return utils.NormalizeForSearch(s[i].Title + " " + s[i].Description)
}

func (s cardSource) Len() int { return len(s) }

// GET /api/boards/:boardId/search?q=
// Fuzzy-searches the board's cards by title and description. Reuses the
// board read path, so visibility and membership rules apply unchanged.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "query parameter q is required"})
		return
	}

	view, err := h.engine.GetBoard(c.Request.Context(), middleware.IdentityFrom(c), c.Param("boardId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	var cards cardSource
	for _, lv := range view.Lists {
		cards = append(cards, lv.Cards...)
	}

	matches := fuzzy.FindFrom(utils.NormalizeForSearch(query), cards)
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{Card: cards[m.Index], Score: m.Score})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
