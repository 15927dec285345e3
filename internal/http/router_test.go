package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/demo"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

func TestRouter_TokenAuth(t *testing.T) {
	authCfg := config.Auth{Mode: config.AuthModeToken}
	var service *auth.Service

	s := newTestServer(t, func(cfg *RouterConfig, db *database.Database) {
		service = auth.NewService(profiles.NewRepository(db.DB), authCfg)
		cfg.AuthMiddleware = auth.NewMiddleware(service, authCfg, logger.Nop())
	})

	token, err := service.IssueToken(context.Background(), "jones")
	require.NoError(t, err)
	listing := s.fx.Listing("Air Mail", "Web Application")

	t.Run("health stays public", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api requires a token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/self/library", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token acts as its profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/self/library",
			jsonBody(t, map[string]any{"listing": map[string]any{"id": listing.ID}}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assertStatus(t, w, http.StatusCreated)
		assert.Equal(t, "jones", decodeJSON[entities.LibraryEntry](t, w).Owner.Username)
	})
}

func TestRouter_OptionalRoutes(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig, _ *database.Database) {
		cfg.Audit = nil
		cfg.Listings = nil
	})

	for _, path := range []string{"/api/self/audit", "/iwc/application", "/iwc/system"} {
		w := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRouter_DemoModeBlocksWrites(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig, _ *database.Database) {
		cfg.DemoMiddleware = demo.NewMiddleware(true)
	})

	w := s.do(t, http.MethodPost, "/api/self/library", map[string]any{"listing": map[string]any{"id": 1}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/access_control", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
