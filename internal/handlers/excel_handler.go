package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExcelHandler struct {
	excelService *excel.Service
}

func NewExcelHandler(excelService *excel.Service) *ExcelHandler {
	return &ExcelHandler{excelService: excelService}
}

// ExportCampaign godoc
// @Summary Export campaign targets to Excel
// @Description Downloads all targets of a campaign with their request state
// @Tags excel
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {file} binary "Excel file"
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/export [get]
func (h *ExcelHandler) ExportCampaign(c *gin.Context) {
	campaignID, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	result, err := h.excelService.ExportCampaign(c.Request.Context(), campaignID)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export campaign", "details": err.Error()})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Header("Cache-Control", "must-revalidate")
	c.Data(http.StatusOK, xlsxContentType, result.Data.Bytes())
}
