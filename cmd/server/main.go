package main

import (
	"net/http"
	"time"

	"myswamvar/backend/internal/auth"
	"myswamvar/backend/internal/config"
	"myswamvar/backend/internal/database"
	"myswamvar/backend/internal/handler"
	"myswamvar/backend/internal/hub"
	"myswamvar/backend/internal/logger"
	"myswamvar/backend/internal/metrics"
	"myswamvar/backend/internal/mw"
	"myswamvar/backend/internal/repository"
	"myswamvar/backend/internal/service"
	"myswamvar/backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	// Swagger imports
	_ "myswamvar/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Myswamvar API
// @version         1.0
// @description     This is the API for the Myswamvar matrimonial service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	logger.Init(cfg.Env)

	// Connect to the database
	db := database.Connect(cfg.DatabaseURL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	// Services. The user repository doubles as the premium status oracle.
	interestSvc := service.NewInterestService(interestRepo, userRepo)
	quota := service.NewQuotaTracker(msgRepo)
	chatSvc := service.NewChatService(interestSvc, convRepo, msgRepo, quota, userRepo)

	// Presence registry and realtime gateway, one per process.
	presence := hub.NewHub()
	resolver := auth.NewJWTResolver(cfg.JWTSecret)
	gateway := ws.NewGateway(presence, chatSvc, resolver)

	authHandler := handler.NewAuthHandler(userRepo, cfg)
	interestHandler := handler.NewInterestHandler(interestSvc, userRepo)
	chatHandler := handler.NewChatHandler(chatSvc, presence)

	limiter := mw.NewRateLimiter(rate.Every(time.Second/20), 40, 2*time.Minute)
	defer limiter.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.GinMiddleware())
	router.Use(mw.CORS(cfg.Env))
	router.Use(limiter.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Interest routes (protected)
		interestRoutes := apiV1.Group("/interest")
		interestRoutes.Use(auth.AuthMiddleware(resolver))
		{
			interestRoutes.POST("", interestHandler.Send)
			interestRoutes.GET("/sent", interestHandler.ListSent)
			interestRoutes.GET("/received", interestHandler.ListReceived)
			interestRoutes.POST("/:id/accept", interestHandler.Accept)
			interestRoutes.POST("/:id/decline", interestHandler.Decline)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chat")
		chatRoutes.Use(auth.AuthMiddleware(resolver))
		{
			chatRoutes.GET("/conversations", chatHandler.ListConversations)
			chatRoutes.GET("/conversations/:userId/messages", chatHandler.GetMessages)
			chatRoutes.POST("/conversations/:userId/messages", chatHandler.SendMessage)
			chatRoutes.GET("/message-limit", chatHandler.MessageLimit)
		}
	}

	// Realtime channel. Credential via Authorization header or token query param.
	router.GET("/ws/chat", gateway.Serve())

	log.Info().Str("port", cfg.Port).Msg("server is running")
	log.Fatal().Err(router.Run(":" + cfg.Port)).Msg("server stopped")
}
