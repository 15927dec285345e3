package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, cfg config.Auth) (*gin.Engine, *Service) {
	t.Helper()
	svc := setupService(t, cfg)

	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.Use(NewMiddleware(svc, cfg, logger.Nop()).Handler())
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":  GetUsername(c),
			"auth_type": GetAuthType(c),
		})
	}
	router.GET("/api/whoami", whoami)
	router.GET("/health", whoami)
	return router, svc
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	router, _ := setupRouter(t, config.Auth{Mode: config.AuthModeNone, DefaultUsername: "bigbrother"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "bigbrother", body["username"])
	assert.Equal(t, string(AuthTypeNone), body["auth_type"])
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestMiddleware_NoAuthMode_DefaultUsername(t *testing.T) {
	router, _ := setupRouter(t, config.Auth{Mode: config.AuthModeNone})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/whoami", nil))

	assert.Equal(t, config.DefaultUsername, decode(t, w)["username"])
}

func TestMiddleware_TokenMode(t *testing.T) {
	router, svc := setupRouter(t, config.Auth{Mode: config.AuthModeToken})
	token, err := svc.IssueToken(context.Background(), "jones")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid bearer", "/api/whoami", "Bearer " + token, http.StatusOK, "jones"},
		{"lowercase scheme", "/api/whoami", "bearer " + token, http.StatusOK, "jones"},
		{"missing header", "/api/whoami", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/api/whoami", "Basic " + token, http.StatusUnauthorized, ""},
		{"unknown token", "/api/whoami", "Bearer nope", http.StatusUnauthorized, ""},
		{"public path", "/health", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUser, body["username"])
			} else {
				assert.Equal(t, "unauthorized", body["code"])
			}
		})
	}
}

func TestGetUsername_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetUsername(c))
	assert.Equal(t, AuthTypeNone, GetAuthType(c))
}
