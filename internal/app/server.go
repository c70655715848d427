// File: internal/app/server.go

// Package app assembles the HTTP server from the feature handlers.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shortstay_backend/internal/admin"
	"shortstay_backend/internal/auth"
	"shortstay_backend/internal/availability"
	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/favorite"
	"shortstay_backend/internal/host"
	"shortstay_backend/internal/jobs"
	"shortstay_backend/internal/middleware"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/payment"
	"shortstay_backend/internal/property"
	"shortstay_backend/internal/review"
	"shortstay_backend/internal/shared"
	"shortstay_backend/internal/user"
)

// Server wires the feature handlers into one HTTP server.
type Server struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *gorm.DB
	tokenService shared.TokenService

	authHandler         *auth.Handler
	userHandler         *user.Handler
	propertyHandler     *property.Handler
	availabilityHandler *availability.Handler
	bookingHandler      *booking.Handler
	paymentHandler      *payment.Handler
	reviewHandler       *review.Handler
	favoriteHandler     *favorite.Handler
	notificationHandler *notification.Handler
	adminHandler        *admin.Handler
	hostHandler         *host.Handler

	reminderJob *jobs.BookingReminderJob

	engine *gin.Engine
	http   *http.Server
}

// NewServer creates the server with all handlers registered.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	propertyHandler *property.Handler,
	availabilityHandler *availability.Handler,
	bookingHandler *booking.Handler,
	paymentHandler *payment.Handler,
	reviewHandler *review.Handler,
	favoriteHandler *favorite.Handler,
	notificationHandler *notification.Handler,
	adminHandler *admin.Handler,
	hostHandler *host.Handler,
	reminderJob *jobs.BookingReminderJob,
) *Server {
	s := &Server{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		tokenService:        tokenService,
		authHandler:         authHandler,
		userHandler:         userHandler,
		propertyHandler:     propertyHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		paymentHandler:      paymentHandler,
		reviewHandler:       reviewHandler,
		favoriteHandler:     favoriteHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		hostHandler:         hostHandler,
		reminderJob:         reminderJob,
	}
	s.setupEngine()
	return s
}

func (s *Server) setupEngine() {
	gin.SetMode(s.cfg.GinMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(s.logger))
	engine.Use(middleware.ErrorHandler(s.logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.Static("/uploads", s.cfg.UploadStoragePath)

	authMW := middleware.Authenticate(s.tokenService, s.logger)
	hostMW := middleware.RequireHost()
	adminMW := middleware.RequireAdmin()

	v1 := engine.Group("/api/v1")
	s.authHandler.RegisterRoutes(v1, authMW)
	s.userHandler.RegisterRoutes(v1, authMW)
	s.propertyHandler.RegisterRoutes(v1, authMW, hostMW)
	s.availabilityHandler.RegisterRoutes(v1, authMW, hostMW)
	s.bookingHandler.RegisterRoutes(v1, authMW)
	s.paymentHandler.RegisterRoutes(v1, authMW)
	s.reviewHandler.RegisterRoutes(v1, authMW)
	s.favoriteHandler.RegisterRoutes(v1, authMW)
	s.notificationHandler.RegisterRoutes(v1, authMW)
	s.adminHandler.RegisterRoutes(v1, authMW, adminMW)
	s.hostHandler.RegisterRoutes(v1, authMW, hostMW)

	s.engine = engine
}

// Migrate runs schema auto-migration for all models.
func (s *Server) Migrate() error {
	return AutoMigrate(s.db)
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&auth.VerificationCode{},
		&property.Property{},
		&availability.AvailabilityBlock{},
		&booking.Booking{},
		&payment.Payment{},
		&review.Review{},
		&favorite.Favorite{},
		&notification.Notification{},
	)
}

// Run starts the reminder job and serves HTTP until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Migrate(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	if err := s.reminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start booking reminder job: %w", err)
	}
	defer s.reminderJob.Stop()

	addr := fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ServerTimeout,
		WriteTimeout: s.cfg.ServerTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
