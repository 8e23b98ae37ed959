package handlers

import (
	"net/http"

	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ServerHandler struct {
	serverService *services.ServerService
	userService   *services.UserService
}

func NewServerHandler(serverService *services.ServerService, userService *services.UserService) *ServerHandler {
	return &ServerHandler{serverService: serverService, userService: userService}
}

type createServerRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateServer godoc
// @Summary      Create a workspace with its default General channel
// @Tags         servers
// @Accept       json
// @Produce      json
// @Param        request body createServerRequest true "server"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers [post]
func (h *ServerHandler) CreateServer(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req createServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	server, err := h.serverService.Create(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "SERVER_CREATED", `The server has been successfully created with a "General" channel`, server)
}

// ListServers godoc
// @Summary      List the caller's workspaces
// @Tags         servers
// @Produce      json
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers [get]
func (h *ServerHandler) ListServers(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	servers, err := h.serverService.List(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "SERVER_GATHERED", "The list of servers has been successfully retrieved", servers)
}

// DeleteServer godoc
// @Summary      Destroy a workspace and everything in it
// @Tags         servers
// @Produce      json
// @Param        id path string true "server id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id} [delete]
func (h *ServerHandler) DeleteServer(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	if err := h.serverService.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "SERVER_DELETED", "The server, its members, channels, and messages have been successfully deleted", nil)
}

// AddMember godoc
// @Summary      Add the caller to a workspace directly
// @Tags         members
// @Produce      json
// @Param        id path string true "server id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/members [post]
func (h *ServerHandler) AddMember(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	member, err := h.serverService.AddMember(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MEMBER_ADDED", "The user has been successfully added as a server member", member)
}

// ListMembers godoc
// @Summary      List a workspace's members
// @Tags         members
// @Produce      json
// @Param        id path string true "server id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/members [get]
func (h *ServerHandler) ListMembers(c *gin.Context) {
	members, err := h.serverService.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MEMBERS_GATHERED", "The server members list has been successfully retrieved", members)
}

// RemoveMember godoc
// @Summary      Remove the caller from a workspace
// @Tags         members
// @Produce      json
// @Param        id path string true "server id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/members [delete]
func (h *ServerHandler) RemoveMember(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	if err := h.serverService.RemoveMember(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "MEMBER_DELETED", "The user has been successfully removed from the server", nil)
}
