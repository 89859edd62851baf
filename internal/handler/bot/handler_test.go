package bot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := bot.NewMemoryStore(bot.Seed())
	require.NoError(t, err)

	r := chi.NewRouter()
	New(store).RegisterRoutes(r)
	return r
}

func TestListBots(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bots", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var bots []bot.Bot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bots))
	assert.Len(t, bots, 15)
	assert.Equal(t, "brain-ai", bots[0].ID)
}

func TestListBotsByCategory(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bots?category=Development", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var bots []bot.Bot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bots))
	require.Len(t, bots, 1)
	assert.Equal(t, "code-assistant", bots[0].ID)
}

func TestListCategories(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bots/categories", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var categories []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	assert.Equal(t, "General", categories[0])
}

func TestGetBot(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bots/creative-bot", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bots/non-existent", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
