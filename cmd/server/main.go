package main

import (
	"log"
	"time"

	"github.com/devsocial/backend/internal/realtime"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/internal/router"
	"github.com/devsocial/backend/internal/sweeper"
	"github.com/devsocial/backend/internal/validators"
	"github.com/devsocial/backend/pkg/config"
	"github.com/devsocial/backend/pkg/mailer"
	"github.com/devsocial/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := router.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Media upload directory
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Transactional mail; falls back to log output when no SMTP host is set
	var m mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPHost != "" {
		m = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	// Realtime message delivery
	hub := realtime.NewHub()

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db, hub, store, m, cfg)

	// Expired-post cleanup
	sw := sweeper.New(repositories.NewPostgresPostRepository(db), cfg.SweepSchedule)
	if err := sw.Start(); err != nil {
		log.Fatalf("Failed to start sweeper: %v", err)
	}
	defer sw.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
