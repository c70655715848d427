// File: internal/host/service.go

// Package host exposes the host dashboard and host-side booking decisions.
package host

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/property"
)

// Dashboard summarizes a host's activity.
type Dashboard struct {
	PropertyCount  int64              `json:"property_count"`
	BookingCounts  map[string]int64   `json:"booking_counts"`
	TotalEarnings  float64            `json:"total_earnings"`
	RecentBookings []booking.Response `json:"recent_bookings"`
}

// Service defines host dashboard operations.
type Service interface {
	GetDashboard(ctx context.Context, hostID uuid.UUID) (*Dashboard, error)
}

// ServiceImplementation implements the host Service.
type ServiceImplementation struct {
	propertyRepo property.Repository
	bookingRepo  booking.Repository
	logger       *zap.Logger
}

// NewService creates a host service.
func NewService(propertyRepo property.Repository, bookingRepo booking.Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		logger:       logger.Named("host_service"),
	}
}

const recentBookingsLimit = 5

func (s *ServiceImplementation) GetDashboard(ctx context.Context, hostID uuid.UUID) (*Dashboard, error) {
	propertyCount, err := s.propertyRepo.CountByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.bookingRepo.CountByHostStatus(ctx, hostID)
	if err != nil {
		return nil, err
	}
	earnings, err := s.bookingRepo.SumHostEarnings(ctx, hostID)
	if err != nil {
		return nil, err
	}
	recent, err := s.bookingRepo.RecentByHost(ctx, hostID, recentBookingsLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		PropertyCount:  propertyCount,
		BookingCounts:  statusCounts,
		TotalEarnings:  earnings,
		RecentBookings: booking.ToResponseList(recent),
	}, nil
}
