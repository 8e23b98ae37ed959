package routes

import (
	"time"

	"chat-workspace-service/internal/api/handlers"
	"chat-workspace-service/internal/api/middleware"
	"chat-workspace-service/internal/database"
	"chat-workspace-service/internal/events"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/internal/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine         *gin.Engine
	userHandler    *handlers.UserHandler
	serverHandler  *handlers.ServerHandler
	inviteHandler  *handlers.InviteHandler
	channelHandler *handlers.ChannelHandler
	messageHandler *handlers.MessageHandler
	rateLimitMW    *middleware.RateLimitMiddleware
	authMW         *middleware.AuthMiddleware
}

func NewRouter(
	db *gorm.DB,
	redisService *services.RedisService,
	publisher events.Publisher,
	uploads *database.MinIOClient,
	jwtSecret string,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	userRepo := postgres.NewUserRepository(db)
	serverRepo := postgres.NewServerRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	inviteRepo := postgres.NewInviteCodeRepository(db)
	channelRepo := postgres.NewChannelRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	validator := services.NewValidator(userRepo, serverRepo, memberRepo, channelRepo)

	userService := services.NewUserService(userRepo, uploads)
	inviteService := services.NewInviteService(inviteRepo, memberRepo, serverRepo, validator, publisher)
	serverService := services.NewServerService(serverRepo, memberRepo, validator, publisher)
	channelService := services.NewChannelService(channelRepo, serverRepo, validator, publisher)
	messageService := services.NewMessageService(messageRepo, userRepo, validator, publisher)

	return &Router{
		engine:         engine,
		userHandler:    handlers.NewUserHandler(userService),
		serverHandler:  handlers.NewServerHandler(serverService, userService),
		inviteHandler:  handlers.NewInviteHandler(inviteService, userService),
		channelHandler: handlers.NewChannelHandler(channelService, userService),
		messageHandler: handlers.NewMessageHandler(messageService, userService),
		rateLimitMW:    middleware.NewRateLimitMiddleware(redisService),
		authMW:         middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	api.Use(r.authMW.RequireAuth())

	users := api.Group("/users")
	users.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		users.POST("/profile", r.userHandler.UpsertProfile)
		users.GET("/me", r.userHandler.GetProfile)
		users.GET("/:id", r.userHandler.GetUser)
		users.POST("/avatar", r.userHandler.UploadAvatar)
	}

	servers := api.Group("/servers")
	servers.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		servers.POST("", r.serverHandler.CreateServer)
		servers.GET("", r.serverHandler.ListServers)
		servers.DELETE("/:id", r.serverHandler.DeleteServer)

		servers.POST("/:id/members", r.serverHandler.AddMember)
		servers.GET("/:id/members", r.serverHandler.ListMembers)
		servers.DELETE("/:id/members", r.serverHandler.RemoveMember)

		servers.POST("/:id/invites", r.inviteHandler.IssueInvite)

		servers.POST("/:id/channels", r.channelHandler.CreateChannel)
		servers.GET("/:id/channels", r.channelHandler.ListChannels)
		servers.PUT("/:id/channels/:channelId", r.channelHandler.UpdateChannel)
		servers.DELETE("/:id/channels/:channelId", r.channelHandler.DeleteChannel)
	}

	messages := api.Group("/servers/:id/channels/:channelId/messages")
	messages.Use(r.rateLimitMW.RateLimit(200, time.Minute))
	{
		messages.POST("", r.messageHandler.SendMessage)
		messages.GET("", r.messageHandler.ListMessages)
		messages.PUT("/:messageId", r.messageHandler.EditMessage)
		messages.DELETE("/:messageId", r.messageHandler.DeleteMessage)
	}

	invites := api.Group("/invites")
	invites.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		invites.POST("/redeem", r.inviteHandler.RedeemInvite)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
