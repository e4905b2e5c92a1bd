package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okfde/froide-campaign-service/internal/middleware"
	"github.com/okfde/froide-campaign-service/internal/services"
)

type PluginHandler struct {
	pluginService *services.PluginService
}

func NewPluginHandler(pluginService *services.PluginService) *PluginHandler {
	return &PluginHandler{pluginService: pluginService}
}

// Map godoc
// @Summary Map widget config
// @Description Widget settings merged with the client's city, campaign id, law type and subscription state
// @Tags plugins
// @Produce json
// @Param id path int true "Plugin ID"
// @Success 200 {object} models.MapPluginResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /plugins/map/{id} [get]
func (h *PluginHandler) Map(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin not found"})
		return
	}

	resp, err := h.pluginService.MapConfig(c.Request.Context(), id, c.ClientIP(), middleware.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List widget config
// @Tags plugins
// @Produce json
// @Param id path int true "Plugin ID"
// @Success 200 {object} models.ListPluginResponse
// @Failure 404 {object} map[string]interface{}
// @Router /plugins/list/{id} [get]
func (h *PluginHandler) List(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin not found"})
		return
	}

	resp, err := h.pluginService.ListConfig(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Requests godoc
// @Summary Request list widget
// @Description Targets of the page's campaigns that have a request
// @Tags plugins
// @Produce json
// @Param id path int true "Plugin ID"
// @Success 200 {object} models.RequestsPluginResponse
// @Failure 404 {object} map[string]interface{}
// @Router /plugins/requests/{id} [get]
func (h *PluginHandler) Requests(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin not found"})
		return
	}

	resp, err := h.pluginService.Requests(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Questionnaire godoc
// @Summary Questionaire widget
// @Description Targets with a successful request that have no report yet, with the questions to answer
// @Tags plugins
// @Produce json
// @Param id path int true "Plugin ID"
// @Success 200 {object} models.QuestionairePluginResponse
// @Failure 404 {object} map[string]interface{}
// @Router /plugins/questionnaire/{id} [get]
func (h *PluginHandler) Questionnaire(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin not found"})
		return
	}

	resp, err := h.pluginService.Questionnaire(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PluginHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrPluginNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render plugin", "details": err.Error()})
}
