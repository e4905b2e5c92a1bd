package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/middleware"
	"github.com/okfde/froide-campaign-service/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Index godoc
// @Summary List public campaigns
// @Tags campaigns
// @Produce json
// @Success 200 {object} models.CampaignIndexResponse
// @Failure 500 {object} map[string]interface{}
// @Router /campaigns/ [get]
func (h *CampaignHandler) Index(c *gin.Context) {
	resp, err := h.campaignService.Index(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Page godoc
// @Summary Campaign page
// @Description Counters, progress and one page of targets of a campaign. Non public campaigns are visible to staff only.
// @Tags campaigns
// @Produce json
// @Param slug path string true "Campaign slug"
// @Param q query string false "Substring of title or identifier"
// @Param status query string false "0 no request, 1 pending, 2 resolved" Enums(0, 1, 2)
// @Param page query int false "Page number"
// @Param random query string false "Random unrequested targets"
// @Success 200 {object} models.CampaignPageResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /campaigns/{slug}/ [get]
func (h *CampaignHandler) Page(c *gin.Context) {
	resp, err := h.campaignService.Page(c.Request.Context(), c.Param("slug"), c.Request.URL.Query(), middleware.IsStaff(c))
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign page", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
