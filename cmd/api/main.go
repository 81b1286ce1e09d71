package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/config"
	"github.com/nagrik-seva/app-docvault/internal/handlers"
	"github.com/nagrik-seva/app-docvault/internal/logging"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/services"
	"github.com/nagrik-seva/app-docvault/internal/store"

	_ "github.com/nagrik-seva/app-docvault/docs"
)

// @title           DocVault API
// @version         1.0
// @description     Citizen document portal with a change-request workflow. Citizens view their government documents and propose field edits; minor edits within quota apply immediately and shared fields propagate across all documents, while sensitive edits queue for administrator review.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Login and session operations

// @tag.name documents
// @tag.description Citizen document reads

// @tag.name change-requests
// @tag.description Change-request submission and tracking

// @tag.name admin
// @tag.description Review queue and registration operations

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire stores and services
	cfg := config.AppConfig
	s := store.NewMongoStore(config.MongoDB, store.Collections{
		Citizens:       cfg.CitizenCollection,
		Admins:         cfg.AdminCollection,
		Documents:      cfg.DocumentCollection,
		ChangeRequests: cfg.ChangeRequestCollection,
		FieldCounters:  cfg.FieldCounterCollection,
	})
	cache := services.NewRedisCache(config.Redis)
	mailer := services.NewMailer(cfg)

	sessions := services.NewSessionService(cache, cfg.SessionTTL)
	otp := services.NewOTPService(cache, cfg.OTPTTL, cfg.OTPMaxAttempts)
	auth := services.NewAuthService(s.Citizens, s.Admins, otp, sessions, mailer)
	documents := services.NewDocumentService(s.Documents, s.Citizens, cache, cfg.RedisTTL)
	policy := services.NewPolicyService(s.Tracker, cfg.MinorChangeLimit)
	approval := services.NewApprovalService(s.Documents, cache)
	ledger := services.NewLedgerService(s, policy, approval, mailer, cfg)

	router := handlers.NewRouter(&handlers.Dependencies{
		Store:     s,
		Sessions:  sessions,
		Auth:      auth,
		Documents: documents,
		Ledger:    ledger,
	})

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("forced shutdown", zap.Error(err))
	}

	logging.Logger.Info("server stopped")
}
