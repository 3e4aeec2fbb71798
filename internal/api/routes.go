package api

import (
	"net/http"

	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all HTTP endpoints on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	sessionService service.SessionService,
	historyService service.HistoryService,
	statsService service.StatsService,
	catalogService service.CatalogService,
	chatService service.ChatService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	sessionHandler := NewSessionHandler(sessionService)
	historyHandler := NewHistoryHandler(historyService)
	statsHandler := NewStatsHandler(statsService)
	catalogHandler := NewCatalogHandler(catalogService)
	chatHandler := NewChatHandler(chatService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		profileGroup := protected.Group("/profile")
		{
			profileGroup.PUT("", profileHandler.SaveProfile)
			profileGroup.GET("", profileHandler.GetProfile)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlans)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.POST("/:planId/clone", planHandler.ClonePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		sessionGroup := protected.Group("/session")
		{
			sessionGroup.POST("", sessionHandler.StartSession)
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.POST("/toggle", sessionHandler.ToggleSet)
			sessionGroup.POST("/finish", sessionHandler.FinishSession)
			sessionGroup.POST("/cancel", sessionHandler.CancelSession)
		}

		protected.GET("/history", historyHandler.ListHistory)
		protected.GET("/stats", statsHandler.GetSummary)

		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.POST("", catalogHandler.CreateExercise)
			catalogGroup.GET("", catalogHandler.ListExercises)
			catalogGroup.GET("/:exerciseId", catalogHandler.GetExercise)
			catalogGroup.POST("/:exerciseId/media/upload-url", catalogHandler.RequestMediaUploadURL)
			catalogGroup.POST("/:exerciseId/media/confirm", catalogHandler.ConfirmMediaUpload)
			catalogGroup.GET("/:exerciseId/media/download-url", catalogHandler.GetMediaDownloadURL)
		}

		chatGroup := protected.Group("/chat")
		{
			chatGroup.POST("/messages", chatHandler.SendMessage)
			chatGroup.GET("/messages", chatHandler.GetConversation)
		}
	}
}
