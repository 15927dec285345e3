package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/accesscontrol"
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/database"
	acrepo "github.com/mrlokans/catalog/internal/database/accesscontrol"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/dbtest"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/database/listings"
	"github.com/mrlokans/catalog/internal/database/notifications"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the real library stack over a temp database and an
// in-memory cache.
type testServer struct {
	db     *database.Database
	fx     *dbtest.Fixtures
	audit  *audit.Service
	router *gin.Engine
}

func newTestServer(t *testing.T, mutate ...func(*RouterConfig, *database.Database)) *testServer {
	t.Helper()

	db := dbtest.Open(t)
	log := logger.Nop()
	store := cache.NewMemoryStore(0)

	entries := librarydb.NewRepository(db.DB)
	listingsRepo := listings.NewRepository(db.DB)
	profilesRepo := profiles.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)

	opts := []library.Option{
		library.WithRecorder(auditService),
		library.WithInvalidator(library.NewPurgeOnWrite(store, nil, log)),
	}
	factory := library.NewEntryFactory(listingsRepo, profilesRepo, entries, log, opts...)

	cfg := RouterConfig{
		Library:       library.NewReadCache(store, entries, log),
		Bookmarks:     factory,
		Importer:      library.NewImporter(factory, notifications.NewRepository(db.DB), log),
		Reorganizer:   library.NewReorganizer(listingsRepo, entries, opts...),
		AccessControl: accesscontrol.NewReadCache(store, acrepo.NewRepository(db.DB), log),
		Audit:         auditService,
		Listings:      listingsRepo,
		Database:      db,
		Version:       "test",
		Logger:        log,
	}
	for _, m := range mutate {
		m(&cfg, db)
	}

	return &testServer{
		db:     db,
		fx:     dbtest.NewFixtures(t, db.DB),
		audit:  auditService,
		router: NewRouter(cfg),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// jsonBody marshals body, passing strings through untouched.
func jsonBody(t *testing.T, body any) *bytes.Reader {
	t.Helper()
	switch v := body.(type) {
	case nil:
		return bytes.NewReader(nil)
	case string:
		return bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		return bytes.NewReader(data)
	}
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
