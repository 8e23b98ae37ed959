package handlers

import (
	"chat-workspace-service/internal/api/middleware"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/services"
	"chat-workspace-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// actingUser resolves the authenticated caller's profile from the auth id the
// token middleware stored on the context. Callers without a bound profile get
// UNKNOWN_USER.
func actingUser(c *gin.Context, users *services.UserService) (*models.User, bool) {
	authID := c.GetString(middleware.AuthIDKey)

	user, err := users.GetByAuthID(c.Request.Context(), authID)
	if err != nil {
		response.Fail(c, err)
		return nil, false
	}
	return user, true
}
