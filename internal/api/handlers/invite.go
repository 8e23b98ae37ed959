package handlers

import (
	"net/http"
	"time"

	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	inviteService *services.InviteService
	userService   *services.UserService
}

func NewInviteHandler(inviteService *services.InviteService, userService *services.UserService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService, userService: userService}
}

type issueInviteRequest struct {
	MaxUses   int        `json:"maxUses"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type redeemInviteRequest struct {
	Code string `json:"code" binding:"required"`
}

// IssueInvite godoc
// @Summary      Issue an invite code for a workspace
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        id path string true "server id"
// @Param        request body issueInviteRequest false "limits"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /servers/{id}/invites [post]
func (h *InviteHandler) IssueInvite(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req issueInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.inviteService.Issue(c.Request.Context(), c.Param("id"), user.ID, req.MaxUses, req.ExpiresAt)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "INVITE_CODE_CREATED", "The invite code has been successfully created", code)
}

// RedeemInvite godoc
// @Summary      Redeem an invite code into a membership
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body redeemInviteRequest true "code"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /invites/redeem [post]
func (h *InviteHandler) RedeemInvite(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	var req redeemInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.inviteService.Redeem(c.Request.Context(), req.Code, user.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "INVITE_CODE_USED", "The invite code has been successfully redeemed", nil)
}
