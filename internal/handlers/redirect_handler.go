package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

type RedirectHandler struct {
	providers ProviderSource
}

func NewRedirectHandler(providers ProviderSource) *RedirectHandler {
	return &RedirectHandler{providers: providers}
}

// RequestRedirect godoc
// @Summary Redirect to the prefilled request form
// @Description Renders the request subject and body of a target and redirects to the platform's request form
// @Tags provider
// @Param campaign_id path int true "Campaign ID"
// @Param ident path string true "Target identifier"
// @Success 302 {string} string "Redirect to the request form"
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /campaign/{campaign_id}/{ident}/request/ [get]
func (h *RedirectHandler) RequestRedirect(c *gin.Context) {
	prov, ok := resolveProvider(c, h.providers, "campaign_id")
	if !ok {
		return
	}

	target, err := prov.RequestURL(c.Request.Context(), c.Param("ident"))
	if errors.Is(err, provider.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Information object not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request url", "details": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, target)
}
