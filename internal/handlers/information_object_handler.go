package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/utils"
)

type InformationObjectHandler struct {
	iobjService *services.InformationObjectService
}

func NewInformationObjectHandler(iobjService *services.InformationObjectService) *InformationObjectHandler {
	return &InformationObjectHandler{iobjService: iobjService}
}

// Random godoc
// @Summary Random unrequested targets
// @Description Returns up to three random targets of the given campaigns that have a public body and no request yet
// @Tags informationobjects
// @Produce json
// @Param campaign query []int true "Campaign IDs" collectionFormat(multi)
// @Success 200 {array} models.InformationObjectItem
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/informationobjects/random [get]
func (h *InformationObjectHandler) Random(c *gin.Context) {
	campaignIDs, err := utils.ParseIDList(c.QueryArray("campaign"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	items, err := h.iobjService.Random(c.Request.Context(), campaignIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get targets", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Search godoc
// @Summary Search targets
// @Description Full text search over the targets of the given campaigns, at most ten results
// @Tags informationobjects
// @Produce json
// @Param campaign query []int true "Campaign IDs" collectionFormat(multi)
// @Param q query string false "Search query"
// @Param has_request query string false "Include targets that already have a request"
// @Success 200 {array} models.InformationObjectItem
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/informationobjects/search [get]
func (h *InformationObjectHandler) Search(c *gin.Context) {
	campaignIDs, err := utils.ParseIDList(c.QueryArray("campaign"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	items, err := h.iobjService.Search(c.Request.Context(), campaignIDs, c.Query("q"), c.Query("has_request") != "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search targets", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
