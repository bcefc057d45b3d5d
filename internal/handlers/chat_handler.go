package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	authService services.AuthService
	service     services.ChatService
}

func NewChatHandler(service services.ChatService, authService services.AuthService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		service:     service,
	}
}

// ===== CHAT ENDPOINTS =====

// SendMessage posts a message to a group chat
// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body services.SendMessageRequest true "Message body"
// @Success 201 {object} models.ChatMessage
// @Failure 400 {object} ErrorResponse "Blank message"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Group not found"
// @Router /groups/{id}/chat [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	h.LogRequest(c, "Sending chat message")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	// The sender's display name is stamped onto the message.
	user, err := h.authService.GetStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), c.Param("id"), userID, user.Name, req.Message)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetGroupChat returns a group's message log
// @Summary Get group chat
// @Description Return the group's messages ordered oldest first. Clients poll this endpoint.
// @Tags chat
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.ChatMessage
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /groups/{id}/chat [get]
func (h *ChatHandler) GetGroupChat(c *gin.Context) {
	h.LogRequest(c, "Getting group chat")

	messages, err := h.service.GetGroupChat(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
