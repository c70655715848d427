//go:build wireinject
// +build wireinject

// File: cmd/server/wire.go
package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shortstay_backend/internal/admin"
	"shortstay_backend/internal/app"
	"shortstay_backend/internal/auth"
	"shortstay_backend/internal/availability"
	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/favorite"
	"shortstay_backend/internal/filestorage"
	"shortstay_backend/internal/host"
	"shortstay_backend/internal/jobs"
	"shortstay_backend/internal/mail"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/payment"
	"shortstay_backend/internal/property"
	"shortstay_backend/internal/review"
	"shortstay_backend/internal/user"
)

// InitializeServer builds the fully wired application server.
func InitializeServer(cfg *config.Config, logger *zap.Logger, db *gorm.DB) (*app.Server, error) {
	wire.Build(
		filestorage.NewLocalStorageService,
		mail.NewSMTPMailer,
		auth.NewJWTTokenService,

		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		auth.NewGORMRepository,
		auth.NewService,
		auth.NewHandler,

		property.NewGORMRepository,
		property.NewService,
		property.NewHandler,

		availability.NewGORMRepository,
		availability.NewService,
		availability.NewHandler,

		notification.NewGORMRepository,
		notification.NewService,
		notification.NewHandler,

		booking.NewGORMRepository,
		booking.NewService,
		booking.NewHandler,

		payment.NewPayOSProvider,
		payment.NewGORMRepository,
		payment.NewService,
		payment.NewHandler,

		review.NewGORMRepository,
		review.NewService,
		review.NewHandler,

		favorite.NewGORMRepository,
		favorite.NewService,
		favorite.NewHandler,

		admin.NewService,
		admin.NewHandler,

		host.NewService,
		host.NewHandler,

		jobs.NewBookingReminderJob,
		app.NewServer,
	)
	return nil, nil
}
