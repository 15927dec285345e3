package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database/dbtest"
)

func TestIWCController_ListApplications(t *testing.T) {
	s := newTestServer(t)
	admin := s.fx.Profile(config.DefaultUsername)
	s.fx.Profile("jones")

	public := s.fx.Listing("Air Mail", "Web Application")
	draft := s.fx.Listing("Draft", "Widget", dbtest.Disabled(), dbtest.OwnedBy(admin))
	s.fx.Listing("Gone", "Widget", dbtest.Deleted())
	s.fx.Listing("Someone Else's Draft", "Widget", dbtest.Disabled())

	w := s.do(t, http.MethodGet, "/iwc/application", nil)
	assertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/hal+json")

	got := decodeJSON[ApplicationList](t, w)
	assert.Equal(t, "http://example.com/iwc/application", got.Links["self"].Href)
	require.Len(t, got.Items, 2)
	assert.Equal(t, fmt.Sprintf("http://example.com/iwc/application/%d", public.ID), got.Items[0].Href)
	assert.Equal(t, fmt.Sprintf("http://example.com/iwc/application/%d", draft.ID), got.Items[1].Href)
}

func TestIWCController_ListApplications_Empty(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/iwc/application", nil)
	assertStatus(t, w, http.StatusOK)
	got := decodeJSON[map[string]any](t, w)
	assert.Equal(t, []any{}, got["item"], "an empty collection is an array, not null")
}

func TestIWCController_GetApplication(t *testing.T) {
	s := newTestServer(t)
	s.fx.Profile(config.DefaultUsername)
	listing := s.fx.Listing("Air Mail", "Web Application")
	hidden := s.fx.Listing("Hidden", "Widget", dbtest.Disabled())

	t.Run("visible listing", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/iwc/application/%d", listing.ID), nil)
		assertStatus(t, w, http.StatusOK)

		got := decodeJSON[Application](t, w)
		assert.Equal(t, listing.ID, got.ID)
		assert.Equal(t, "Air Mail", got.Title)
		assert.Equal(t, "Web Application", got.ListingType.Title)
		assert.Equal(t, fmt.Sprintf("http://example.com/iwc/application/%d", listing.ID), got.Links["self"].Href)
		assert.Equal(t, "http://example.com/iwc/application", got.Links["collection"].Href)
	})

	t.Run("invisible listing", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/iwc/application/%d", hidden.ID), nil)
		assertStatus(t, w, http.StatusNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/iwc/application/abc", nil)
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestIWCController_System(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/iwc/system", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assertStatus(t, w, http.StatusOK)

	got := decodeJSON[SystemInfo](t, w)
	assert.Equal(t, IWCVersion, got.Version)
	assert.Equal(t, "catalog", got.Name)
	assert.Equal(t, "test", got.ServiceVersion)
	assert.Equal(t, "https://example.com/iwc/system", got.Links["self"].Href)
}
