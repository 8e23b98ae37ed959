package handlers

import (
	"net/http"

	"chat-workspace-service/internal/api/middleware"
	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type upsertProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Picture  string `json:"picture"`
}

// UpsertProfile godoc
// @Summary      Create or update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body upsertProfileRequest true "profile"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /users/profile [post]
func (h *UserHandler) UpsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authID := c.GetString(middleware.AuthIDKey)
	result, err := h.userService.UpsertProfile(c.Request.Context(), authID, req.Username, req.Picture)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if result.Created {
		response.OK(c, "USER_INFORMATIONS_CREATED", "The user successfully added his informations", result.User)
		return
	}
	response.OK(c, "USER_INFORMATIONS_UPDATED", "The user successfully updated his informations", result.User)
}

// GetProfile godoc
// @Summary      Fetch the caller's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	authID := c.GetString(middleware.AuthIDKey)

	user, err := h.userService.GetByAuthID(c.Request.Context(), authID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "USER_RETRIEVED", "The user informations has been successfully retrieved", user)
}

// GetUser godoc
// @Summary      Fetch a user by id
// @Tags         users
// @Produce      json
// @Param        id path string true "user id"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, "USER_RETRIEVED", "The user informations has been successfully retrieved", user)
}

// UploadAvatar godoc
// @Summary      Upload an avatar image for the caller
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar formData file true "image file"
// @Success      200 {object} response.Envelope
// @Security     BearerAuth
// @Router       /users/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	user, ok := actingUser(c, h.userService)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	url, uploadErr := h.userService.UploadAvatar(c.Request.Context(), user.ID, file)
	if uploadErr != nil {
		response.Fail(c, uploadErr)
		return
	}

	response.OK(c, "USER_AVATAR_UPDATED", "The avatar has been successfully uploaded", gin.H{"picture": url})
}
