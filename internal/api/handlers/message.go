package handlers

import (
	"net/http"

	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *services.MessageService
	userService    *services.UserService
}

func NewMessageHandler(messageService *services.MessageService, userService *services.UserService) *MessageHandler {
	return &MessageHandler{messageService: messageService, userService: userService}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary      Send a message to a channel
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Param        request body sendMessageRequest true "content"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId}/messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"), req.Content)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MESSAGE_SENT", "The message has been successfully sent", message)
}

// ListMessages godoc
// @Summary      Fetch the last fifty messages of a channel, oldest first
// @Tags         messages
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId}/messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	messages, err := h.messageService.List(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MESSAGES_GATHERED", "The last fifty messages have been successfully retrieved along with user information", messages)
}

// EditMessage godoc
// @Summary      Edit a message, author only
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Param        messageId path string true "message id"
// @Param        request body editMessageRequest true "content"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId}/messages/{messageId} [put]
func (h *MessageHandler) EditMessage(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.messageService.Edit(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"), c.Param("messageId"), req.Content)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MESSAGE_UPDATED", "The message has been successfully updated", nil)
}

// DeleteMessage godoc
// @Summary      Soft-delete a message, author only
// @Tags         messages
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Param        messageId path string true "message id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId}/messages/{messageId} [delete]
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	err := h.messageService.Remove(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"), c.Param("messageId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MESSAGE_DELETED", "The message has been successfully deleted", nil)
}
