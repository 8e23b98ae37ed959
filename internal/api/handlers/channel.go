package handlers

import (
	"net/http"

	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelService *services.ChannelService
	userService    *services.UserService
}

func NewChannelHandler(channelService *services.ChannelService, userService *services.UserService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService, userService: userService}
}

type createChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateChannelRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// CreateChannel godoc
// @Summary      Create a channel in a workspace
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        id path string true "server id"
// @Param        request body createChannelRequest true "channel"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels [post]
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.channelService.Create(c.Request.Context(), user.ID, c.Param("id"), req.Name)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "CHANNEL_CREATED", "The channel has been successfully created", channel)
}

// ListChannels godoc
// @Summary      List a workspace's channels
// @Tags         channels
// @Produce      json
// @Param        id path string true "server id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels [get]
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	channels, err := h.channelService.List(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "CHANNELS_GATHERED", "Channel list has been successfully retrieved", channels)
}

// UpdateChannel godoc
// @Summary      Rename or retype a channel, owner only
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Param        request body updateChannelRequest true "fields"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId} [put]
func (h *ChannelHandler) UpdateChannel(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req updateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.channelService.Update(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"), req.Name, req.Type)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "CHANNEL_UPDATED", "The channel has been successfully updated", nil)
}

// DeleteChannel godoc
// @Summary      Delete a channel and its messages, owner only
// @Tags         channels
// @Produce      json
// @Param        id path string true "server id"
// @Param        channelId path string true "channel id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/channels/{channelId} [delete]
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	err := h.channelService.Delete(c.Request.Context(), user.ID, c.Param("id"), c.Param("channelId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "CHANNEL_DELETED", "The channel and all associated messages have been deleted", nil)
}
