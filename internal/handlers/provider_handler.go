package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

// ProviderSource resolves the provider of a campaign
type ProviderSource interface {
	ProviderFor(ctx context.Context, campaignID uint) (*provider.Provider, error)
}

type ProviderHandler struct {
	providers ProviderSource
}

func NewProviderHandler(providers ProviderSource) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// Search godoc
// @Summary Search campaign targets
// @Description Filters the targets of a campaign by text, request state and location. Each result carries its requests and their aggregate resolution.
// @Tags provider
// @Produce json
// @Param id path int true "Campaign ID"
// @Param q query string false "Search query"
// @Param requested query bool false "Only targets with (true) or without (false) requests"
// @Param lat query number false "Latitude of the map center"
// @Param lng query number false "Longitude of the map center"
// @Param radius query int false "Radius in meters" default(1000)
// @Param zoom query int false "Map zoom level"
// @Param limit query int false "Maximum number of results" default(50)
// @Success 200 {array} models.ProviderItem
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/provider/search [get]
func (h *ProviderHandler) Search(c *gin.Context) {
	prov, ok := h.provider(c)
	if !ok {
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := prov.Search(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search targets", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Detail godoc
// @Summary Campaign target detail
// @Description Returns one target of a campaign with its context and all requests
// @Tags provider
// @Produce json
// @Param id path int true "Campaign ID"
// @Param ident path string true "Target identifier"
// @Success 200 {object} models.ProviderItem
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/provider/detail/{ident} [get]
func (h *ProviderHandler) Detail(c *gin.Context) {
	prov, ok := h.provider(c)
	if !ok {
		return
	}

	item, err := prov.Detail(c.Request.Context(), c.Param("ident"))
	if errors.Is(err, provider.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Information object not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get target", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// provider resolves the campaign of the request and writes the error response
func (h *ProviderHandler) provider(c *gin.Context) (*provider.Provider, bool) {
	return resolveProvider(c, h.providers, "id")
}

func resolveProvider(c *gin.Context, providers ProviderSource, param string) (*provider.Provider, bool) {
	campaignID, ok := uintParam(c, param)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return nil, false
	}

	prov, err := providers.ProviderFor(c.Request.Context(), campaignID)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campaign", "details": err.Error()})
		return nil, false
	}
	return prov, true
}

func parseFilters(c *gin.Context) (provider.Filters, error) {
	f := provider.Filters{
		Query:     c.Query("q"),
		Requested: optionalBool(c, "requested"),
	}

	var err error
	if f.Lat, err = optionalFloat(c, "lat"); err != nil {
		return f, err
	}
	if f.Lng, err = optionalFloat(c, "lng"); err != nil {
		return f, err
	}
	if f.Radius, err = optionalInt(c, "radius"); err != nil {
		return f, err
	}
	if f.Zoom, err = optionalInt(c, "zoom"); err != nil {
		return f, err
	}
	limit, err := optionalInt(c, "limit")
	if err != nil {
		return f, err
	}
	if limit != nil && *limit > 0 {
		f.Limit = *limit
	}
	return f, nil
}
