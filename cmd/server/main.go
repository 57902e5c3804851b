// @title Kanban Box API
// @version 1.0
// @description Backend API for Kanban Box boards
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@example.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"

	"kanbanbox-be/config"
	"kanbanbox-be/internal/database"
	"kanbanbox-be/internal/engine"
	"kanbanbox-be/internal/handlers"
	"kanbanbox-be/internal/middleware"
	"kanbanbox-be/internal/repository"
	"kanbanbox-be/internal/services"
	"kanbanbox-be/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "kanbanbox-be/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	mongodb, err := database.NewMongoDB(cfg.MongoDBURI, cfg.MongoDBDatabase)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongodb.Disconnect()

	// Initialize repositories and the board store
	userRepo := repository.NewUserRepository(mongodb.Database)
	boardStore := store.NewMongo(mongodb.Client, mongodb.Database)

	// Initialize the mutation engine
	eng := engine.New(boardStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	boardHandler := handlers.NewBoardHandler(eng)
	listHandler := handlers.NewListHandler(eng)
	cardHandler := handlers.NewCardHandler(eng)
	memberHandler := handlers.NewMemberHandler(eng)
	labelHandler := handlers.NewLabelHandler(eng)
	searchHandler := handlers.NewSearchHandler(eng)

	// Background purge of old archived boards
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	services.StartPurgeWorker(ctx, cfg.PurgeInterval, cfg.PurgeRetention, eng)

	// Initialize Gin
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// Public routes
	public := r.Group("/api")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":   "ok",
				"message":  "Kanban Box API is running",
				"database": "MongoDB connected",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleAuth)
			auth.POST("/refresh", authHandler.RefreshToken)
		}
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		// Auth protected routes
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)

		// Board routes
		protected.GET("/boards", boardHandler.Mine)
		protected.POST("/boards", boardHandler.Create)
		protected.GET("/boards/:boardId", boardHandler.Get)
		protected.PATCH("/boards/:boardId", boardHandler.Rename)
		protected.POST("/boards/:boardId/archive", boardHandler.Archive)
		protected.DELETE("/boards/:boardId", boardHandler.Delete)
		protected.GET("/boards/:boardId/search", searchHandler.Search)

		// List routes
		protected.POST("/boards/:boardId/lists", listHandler.Create)
		protected.PATCH("/lists/:listId", listHandler.Rename)
		protected.POST("/lists/:listId/move", listHandler.Move)
		protected.POST("/lists/:listId/archive", listHandler.Archive)
		protected.DELETE("/lists/:listId", listHandler.Delete)

		// Card routes
		protected.POST("/lists/:listId/cards", cardHandler.Create)
		protected.PATCH("/cards/:cardId", cardHandler.Update)
		protected.POST("/cards/:cardId/move", cardHandler.Move)
		protected.POST("/cards/:cardId/archive", cardHandler.Archive)
		protected.DELETE("/cards/:cardId", cardHandler.Delete)

		// Member routes
		protected.GET("/boards/:boardId/members", memberHandler.List)
		protected.PUT("/boards/:boardId/members", memberHandler.SetRole)
		protected.DELETE("/boards/:boardId/members/:userId", memberHandler.Remove)

		// Label routes
		protected.GET("/boards/:boardId/labels", labelHandler.List)
		protected.POST("/boards/:boardId/labels", labelHandler.Create)
		protected.DELETE("/labels/:labelId", labelHandler.Delete)
		protected.POST("/cards/:cardId/labels/:labelId", cardHandler.AttachLabel)
		protected.DELETE("/cards/:cardId/labels/:labelId", cardHandler.DetachLabel)

		// Comment routes
		protected.POST("/cards/:cardId/comments", cardHandler.AddComment)
		protected.GET("/cards/:cardId/comments", cardHandler.Comments)
	}

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
