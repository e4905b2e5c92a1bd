package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/handlers"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

type targetStore map[string]*models.InformationObject

func (s targetStore) Search(context.Context, repository.TargetQuery) ([]*models.InformationObject, error) {
	return []*models.InformationObject{s["search"]}, nil
}

func (s targetStore) GetByIdent(_ context.Context, _ uint, ident string) (*models.InformationObject, error) {
	if obj, ok := s[ident]; ok {
		return obj, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s targetStore) RequestLinks(context.Context, []uint) ([]repository.TargetRequestLink, error) {
	return nil, nil
}

func (s targetStore) LinkRequest(context.Context, uint, uint) (bool, error) {
	return false, nil
}

type singleProvider struct {
	prov *provider.Provider
}

func (s singleProvider) ProviderFor(context.Context, uint) (*provider.Provider, error) {
	return s.prov, nil
}

func newTargetRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := targetStore{
		"search":       {ID: 1, CampaignID: 4, Ident: "search", Title: "Suchstelle"},
		"berlin/mitte": {ID: 2, CampaignID: 4, Ident: "berlin/mitte", Title: "Bezirksamt Mitte"},
	}
	prov, err := provider.New(&models.Campaign{ID: 4, SubjectTemplate: "{{.title}}"}, store, nil,
		provider.URLConfig{MakeRequestURL: "https://fragdenstaat.de/anfrage-stellen/"})
	require.NoError(t, err)
	providers := singleProvider{prov: prov}

	r := newEngine()
	registerProviderRoutes(r.Group("/api/v1/campaigns/:id"), handlers.NewProviderHandler(providers))
	registerRedirectRoute(&r.RouterGroup, handlers.NewRedirectHandler(providers))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestProviderRoutes_IdentNamedSearch(t *testing.T) {
	r := newTargetRouter(t)

	w := get(r, "/api/v1/campaigns/4/provider/search")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.ProviderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)

	w = get(r, "/api/v1/campaigns/4/provider/detail/search")
	require.Equal(t, http.StatusOK, w.Code)
	var item models.ProviderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Suchstelle", item.Title)
}

func TestProviderRoutes_IdentWithSlash(t *testing.T) {
	r := newTargetRouter(t)

	redirect := provider.RedirectPath("", 4, "berlin/mitte")
	assert.Equal(t, "/campaign/4/berlin%2Fmitte/request/", redirect)

	w := get(r, redirect)
	require.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "campaign:4@berlin/mitte", location.Query().Get("ref"))
	assert.Equal(t, "Bezirksamt Mitte", location.Query().Get("subject"))

	w = get(r, "/api/v1/campaigns/4/provider/detail/berlin%2Fmitte")
	require.Equal(t, http.StatusOK, w.Code)
	var item models.ProviderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "berlin/mitte", item.Ident)
	assert.Equal(t, redirect, item.RequestURL)
}
