package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

type GroupHandler struct {
	BaseHandler
	service services.GroupService
}

func NewGroupHandler(service services.GroupService, logger utils.Logger) *GroupHandler {
	return &GroupHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== GROUP ENDPOINTS =====

// JoinGroup allocates the current student to a topic
// @Summary Join a group
// @Description Place the student into the lowest-numbered batch with a free seat for the chosen topic. The choice is final.
// @Tags groups
// @Accept json
// @Produce json
// @Param request body services.JoinGroupRequest true "Topic choice"
// @Success 200 {object} models.Group
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Already in a group or topic full"
// @Router /groups/join [post]
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	h.LogRequest(c, "Joining group")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	group, err := h.service.JoinGroup(c.Request.Context(), userID, req.OptionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetMyGroup returns the current student's group with member details
// @Summary Get my group
// @Tags groups
// @Produce json
// @Success 200 {object} services.GroupResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not in a group"
// @Router /groups/me [get]
func (h *GroupHandler) GetMyGroup(c *gin.Context) {
	h.LogRequest(c, "Getting current student's group")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	group, err := h.service.GetGroupForStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetGroup returns a group with member details
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} services.GroupResponse
// @Failure 404 {object} ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	h.LogRequest(c, "Getting group")

	group, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListGroups returns every materialized group
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	h.LogRequest(c, "Listing groups")

	groups, err := h.service.GetAllGroups(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// UpdateGroupName renames an unlocked group
// @Summary Rename a group
// @Description Rename a group. Locked groups keep their name.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body services.UpdateGroupNameRequest true "New name"
// @Success 200 {object} services.GroupResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Group not found"
// @Failure 409 {object} ErrorResponse "Group locked"
// @Router /groups/{id}/name [put]
func (h *GroupHandler) UpdateGroupName(c *gin.Context) {
	h.LogRequest(c, "Renaming group")

	var req services.UpdateGroupNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	groupID := c.Param("id")
	if err := h.service.UpdateGroupName(c.Request.Context(), groupID, req.Name); err != nil {
		h.handleServiceError(c, err)
		return
	}

	group, err := h.service.GetByID(c.Request.Context(), groupID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}
