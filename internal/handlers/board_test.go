package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanbanbox-be/config"
	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
	"kanbanbox-be/internal/utils"
)

const testSecret = "test-secret"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}
	eng := engine.New(store.NewMemory())
	boardHandler := NewBoardHandler(eng)
	listHandler := NewListHandler(eng)
	cardHandler := NewCardHandler(eng)
	searchHandler := NewSearchHandler(eng)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	api.POST("/boards", boardHandler.Create)
	api.GET("/boards/:boardId", boardHandler.Get)
	api.DELETE("/boards/:boardId", boardHandler.Delete)
	api.GET("/boards/:boardId/search", searchHandler.Search)
	api.POST("/boards/:boardId/lists", listHandler.Create)
	api.POST("/lists/:listId/cards", cardHandler.Create)
	api.POST("/cards/:cardId/move", cardHandler.Move)
	return r
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID, userID+"@example.com", "", testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, r *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestAuthRequired(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/boards", "", `{"title":"X"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/boards", "Bearer not-a-token", `{"title":"X"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoardLifecycleOverHTTP(t *testing.T) {
	r := testRouter(t)
	owner := bearer(t, "u-owner")

	w := do(t, r, http.MethodPost, "/api/boards", owner, `{"title":"Sprint"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Board
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/boards/%s/lists", created.ID), owner, `{"title":"Todo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var list models.List
	decode(t, w, &list)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/lists/%s/cards", list.ID), owner, `{"title":"Write docs"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var card models.Card
	decode(t, w, &card)

	w = do(t, r, http.MethodGet, "/api/boards/"+created.ID, owner, "")
	require.Equal(t, http.StatusOK, w.Code)
	var view models.BoardView
	decode(t, w, &view)
	require.Len(t, view.Lists, 1)
	require.Len(t, view.Lists[0].Cards, 1)
	assert.Equal(t, "Write docs", view.Lists[0].Cards[0].Title)
}

func TestErrorStatusMapping(t *testing.T) {
	r := testRouter(t)
	owner := bearer(t, "u-owner")
	stranger := bearer(t, "u-stranger")

	w := do(t, r, http.MethodPost, "/api/boards", owner, `{"title":"Sprint"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var board models.Board
	decode(t, w, &board)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/boards/%s/lists", board.ID), owner, `{"title":"Todo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var list models.List
	decode(t, w, &list)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/lists/%s/cards", list.ID), owner, `{"title":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var card models.Card
	decode(t, w, &card)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"unknown board is 404", http.MethodGet, "/api/boards/missing", owner, "", http.StatusNotFound},
		{"stranger delete is 403", http.MethodDelete, "/api/boards/" + board.ID, stranger, "", http.StatusForbidden},
		{"stale anchor is 422", http.MethodPost, "/api/cards/" + card.ID + "/move", owner,
			fmt.Sprintf(`{"targetListId":%q,"position":{"place":"after","anchor":"gone"}}`, list.ID), http.StatusUnprocessableEntity},
		{"empty title is 400", http.MethodPost, fmt.Sprintf("/api/boards/%s/lists", board.ID), owner, `{"title":"  "}`, http.StatusBadRequest},
		{"missing query is 400", http.MethodGet, fmt.Sprintf("/api/boards/%s/search", board.ID), owner, "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.auth, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestSearchOverHTTP(t *testing.T) {
	r := testRouter(t)
	owner := bearer(t, "u-owner")

	w := do(t, r, http.MethodPost, "/api/boards", owner, `{"title":"Sprint"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var board models.Board
	decode(t, w, &board)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/boards/%s/lists", board.ID), owner, `{"title":"Todo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var list models.List
	decode(t, w, &list)

	for _, title := range []string{"Review café menu", "Deploy service", "Write changelog"} {
		w = do(t, r, http.MethodPost, fmt.Sprintf("/api/lists/%s/cards", list.ID), owner,
			fmt.Sprintf(`{"title":%q}`, title))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Diacritics fold away: "cafe" finds "café".
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/boards/%s/search?q=cafe", board.ID), owner, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []SearchResult `json:"results"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Review café menu", resp.Results[0].Card.Title)
}
