package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	targets map[string]*models.InformationObject
	links   []repository.TargetRequestLink
	query   repository.TargetQuery
}

func (s *fakeStore) Search(_ context.Context, q repository.TargetQuery) ([]*models.InformationObject, error) {
	s.query = q
	out := make([]*models.InformationObject, 0, len(s.targets))
	for _, obj := range s.targets {
		out = append(out, obj)
	}
	return out, nil
}

func (s *fakeStore) GetByIdent(_ context.Context, _ uint, ident string) (*models.InformationObject, error) {
	if obj, ok := s.targets[ident]; ok {
		return obj, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) RequestLinks(context.Context, []uint) ([]repository.TargetRequestLink, error) {
	return s.links, nil
}

func (s *fakeStore) LinkRequest(context.Context, uint, uint) (bool, error) {
	return true, nil
}

type fakeProviders struct {
	prov *provider.Provider
	err  error
}

func (f *fakeProviders) ProviderFor(_ context.Context, id uint) (*provider.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != f.prov.Campaign().ID {
		return nil, services.ErrCampaignNotFound
	}
	return f.prov, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore, *fakeProviders) {
	t.Helper()
	store := &fakeStore{targets: map[string]*models.InformationObject{
		"school-1": {
			ID:         11,
			CampaignID: 4,
			Ident:      "school-1",
			Title:      "Grundschule am Park",
			Context:    models.JSON{"kind": "primary"},
			PublicBody: &models.PublicBody{Name: "Senat", Slug: "senat"},
		},
	}}
	campaign := &models.Campaign{
		ID:              4,
		Title:           "Schulen",
		SubjectTemplate: "Hygiene {{.title}}",
		Template:        "Bitte senden Sie mir den Bericht zu {{.title}}.",
	}
	prov, err := provider.New(campaign, store, nil, provider.URLConfig{MakeRequestURL: "https://fragdenstaat.de/anfrage-stellen/"})
	require.NoError(t, err)
	providers := &fakeProviders{prov: prov}

	r := gin.New()
	ph := NewProviderHandler(providers)
	r.GET("/api/v1/campaigns/:id/provider/search", ph.Search)
	r.GET("/api/v1/campaigns/:id/provider/detail/:ident", ph.Detail)
	r.GET("/campaign/:campaign_id/:ident/request/", NewRedirectHandler(providers).RequestRedirect)
	return r, store, providers
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestProviderHandler_Search(t *testing.T) {
	r, store, _ := newTestRouter(t)

	w := serve(r, "/api/v1/campaigns/4/provider/search?q=park&requested=0&lat=52.5&lng=13.4&radius=500&limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.ProviderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "school-1", items[0].Ident)
	assert.Equal(t, "/campaign/4/school-1/request/", items[0].RequestURL)
	assert.Equal(t, models.ResolutionNormal, items[0].Resolution)
	assert.Nil(t, items[0].Context)

	assert.Equal(t, "park", store.query.Query)
	require.NotNil(t, store.query.Requested)
	assert.False(t, *store.query.Requested)
	assert.Equal(t, 5, store.query.Limit)
	require.NotNil(t, store.query.Center)
	assert.Equal(t, 52.5, store.query.Center.Lat)
}

func TestProviderHandler_SearchLimitIsCapped(t *testing.T) {
	r, store, _ := newTestRouter(t)

	w := serve(r, "/api/v1/campaigns/4/provider/search?limit=10000000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, provider.MaxLimit, store.query.Limit)
}

func TestProviderHandler_Errors(t *testing.T) {
	r, _, providers := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"malformed campaign id", "/api/v1/campaigns/abc/provider/search", http.StatusNotFound},
		{"unknown campaign", "/api/v1/campaigns/5/provider/search", http.StatusNotFound},
		{"invalid latitude", "/api/v1/campaigns/4/provider/search?lat=north&lng=13.4", http.StatusBadRequest},
		{"invalid radius", "/api/v1/campaigns/4/provider/search?radius=far", http.StatusBadRequest},
		{"unknown target", "/api/v1/campaigns/4/provider/detail/school-2", http.StatusNotFound},
		{"redirect unknown target", "/campaign/4/school-2/request/", http.StatusNotFound},
		{"redirect unknown campaign", "/campaign/5/school-1/request/", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	providers.err = errors.New("connection refused")
	assert.Equal(t, http.StatusInternalServerError, serve(r, "/api/v1/campaigns/4/provider/search").Code)
}

func TestProviderHandler_Detail(t *testing.T) {
	r, store, _ := newTestRouter(t)
	store.links = []repository.TargetRequestLink{
		{InformationObjectID: 11, FoiRequestID: 100, Resolution: models.ResolutionSuccessful},
	}

	w := serve(r, "/api/v1/campaigns/4/provider/detail/school-1")
	require.Equal(t, http.StatusOK, w.Code)

	var item models.ProviderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Senat", item.PublicBodyName)
	assert.Equal(t, models.JSON{"kind": "primary"}, item.Context)
	require.NotNil(t, item.FoiRequest)
	assert.Equal(t, uint(100), *item.FoiRequest)
	assert.Equal(t, models.ResolutionSuccessful, item.Resolution)
}

func TestRedirectHandler_RequestRedirect(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := serve(r, "/campaign/4/school-1/request/")
	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/anfrage-stellen/to/senat/", location.Path)

	q := location.Query()
	assert.Equal(t, "Hygiene Grundschule am Park", q.Get("subject"))
	assert.Equal(t, "Bitte senden Sie mir den Bericht zu Grundschule am Park.", q.Get("body"))
	assert.Equal(t, "campaign:4@school-1", q.Get("ref"))
	assert.Equal(t, "1", q.Get("hide_publicbody"))
	assert.Equal(t, "1", q.Get("hide_draft"))
}
