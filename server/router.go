package server

import (
	"net/http"
	"time"

	"stream-engage/infrastructure/configuration"
	"stream-engage/infrastructure/realtime"
	httpHandler "stream-engage/interfaces/http"
	"stream-engage/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	streamHandler httpHandler.IStreamHandler,
	presenceHandler httpHandler.IPresenceHandler,
	engagementHandler httpHandler.IEngagementHandler,
	channelHandler httpHandler.IChannelHandler,
	hub *realtime.Hub,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := configuration.C.Cors.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:4200", "https://localhost:4200"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth())

	streams := api.Group("/streams")
	{
		streams.POST("", streamHandler.CreateStream)
		streams.GET("/active", streamHandler.GetActiveStreams)
		streams.GET("/:streamId", streamHandler.GetStream)
		streams.PATCH("/:streamId", streamHandler.UpdateStream)
		streams.PUT("/:streamId/trailer", streamHandler.SetTrailer)
		streams.PUT("/:streamId/thumbnail", streamHandler.SetThumbnail)
		streams.POST("/:streamId/announcements", streamHandler.AddAnnouncement)
		streams.POST("/:streamId/collaborators", streamHandler.AddCollaborator)
		streams.GET("/:streamId/collaborators", streamHandler.ListCollaborators)
		streams.GET("/:streamId/access", streamHandler.CheckAccess)
		streams.POST("/:streamId/goals/:goalId/progress", streamHandler.SetGoalProgress)

		streams.POST("/:streamId/join", presenceHandler.Join)
		streams.POST("/:streamId/leave", presenceHandler.Leave)
		streams.GET("/:streamId/viewers", presenceHandler.GetViewers)

		streams.POST("/:streamId/tips", engagementHandler.RegisterTip)
		streams.GET("/:streamId/leaderboard", engagementHandler.GetLeaderboard)
		streams.POST("/:streamId/likes", engagementHandler.IncrementLike)
		streams.POST("/:streamId/toys", engagementHandler.LogToyAction)
		streams.GET("/:streamId/stats", engagementHandler.GetStats)

		streams.GET("/:streamId/events", func(ctx *gin.Context) {
			hub.Serve(ctx, ctx.Param("streamId"))
		})
	}

	channels := api.Group("/channels")
	{
		channels.GET("", streamHandler.ListProviderChannels)
		channels.GET("/count", channelHandler.CountChannels)
		channels.GET("/:channelId", channelHandler.GetChannel)
		channels.PATCH("/:channelId", channelHandler.UpdateChannel)
		channels.GET("/:channelId/streams", channelHandler.ListChannelStreams)
		channels.GET("/:channelId/validate", channelHandler.ValidateChannel)
	}

	return router
}
