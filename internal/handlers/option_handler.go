package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

type OptionHandler struct {
	BaseHandler
	service services.OptionService
}

func NewOptionHandler(service services.OptionService, logger utils.Logger) *OptionHandler {
	return &OptionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== OPTION ENDPOINTS =====

// ListOptions returns the topic catalog with availability
// @Summary List topics
// @Description List the fixed topic catalog, each with the next open batch and remaining seats. This is the endpoint the selection screen polls.
// @Tags options
// @Produce json
// @Success 200 {array} services.OptionWithStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /options [get]
func (h *OptionHandler) ListOptions(c *gin.Context) {
	h.LogRequest(c, "Listing options")

	options, err := h.service.GetOptionsWithStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetOptionStats returns availability for one topic
// @Summary Get topic availability
// @Description Report whether the topic has a free seat, in which batch, and how many seats remain there. The value may be up to 5 seconds stale.
// @Tags options
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} models.OptionStats
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Router /options/{id}/stats [get]
func (h *OptionHandler) GetOptionStats(c *gin.Context) {
	h.LogRequest(c, "Getting option stats")

	optionID, ok := h.parseOptionID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetOptionStats(c.Request.Context(), optionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateOption edits a topic's title and description
// @Summary Update a topic
// @Tags options
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param request body services.OptionUpdateRequest true "New title and description"
// @Success 200 {object} models.PreferenceOption
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Router /options/{id} [put]
func (h *OptionHandler) UpdateOption(c *gin.Context) {
	h.LogRequest(c, "Updating option")

	optionID, ok := h.parseOptionID(c)
	if !ok {
		return
	}

	var req services.OptionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	option, err := h.service.UpdateOption(c.Request.Context(), optionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, option)
}

// ===== HELPER METHODS =====

func (h *OptionHandler) parseOptionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid topic id",
			Details: "ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}
