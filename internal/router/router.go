package router

import (
	"log"

	"github.com/devsocial/backend/internal/handlers"
	"github.com/devsocial/backend/internal/middleware"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/realtime"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/pkg/config"
	"github.com/devsocial/backend/pkg/mailer"
	"github.com/devsocial/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Story{},
		&models.StoryInteraction{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
		&models.Message{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	db *gorm.DB,
	hub *realtime.Hub,
	store *storage.LocalStore,
	m mailer.Mailer,
	cfg *config.Config,
) {
	// Health check and uploaded media - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", store.Dir())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	storyRepo := repositories.NewPostgresStoryRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, m, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"))

	userHandler := handlers.NewUserHandler(userRepo, followRepo, postRepo, store)
	postHandler := handlers.NewPostHandler(postRepo, likeRepo, commentRepo, notificationRepo, userRepo, store)

	// View counting needs no credential; profiles take an optional one so
	// isFollowing can be computed for signed-in callers.
	public := e.Group("/api")
	public.PUT("/posts/:id/views", postHandler.IncrementViews)
	public.GET("/users/:id", userHandler.GetProfile, middleware.OptionalJWTAuth(cfg.JWTSecret))

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	userHandler.RegisterUserRoutes(api)
	postHandler.RegisterPostRoutes(api)

	storyHandler := handlers.NewStoryHandler(storyRepo, store, cfg.StoryTTL)
	storyHandler.RegisterStoryRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, cfg.NotificationLimit)
	notificationHandler.RegisterNotificationRoutes(api)

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, hub)
	messageHandler.RegisterMessageRoutes(api)

	// Realtime channel; the token travels as a query parameter.
	e.GET("/ws", realtime.Handler(hub, cfg.JWTSecret))

	log.Println("All routes configured.")
}
