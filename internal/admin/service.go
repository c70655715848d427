// File: internal/admin/service.go

// Package admin exposes moderation, KYC decisions, payment overrides, and
// platform analytics to administrators.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/payment"
	"shortstay_backend/internal/property"
	"shortstay_backend/internal/user"
)

// Valid role values for the admin role update.
var validRoles = map[string]bool{
	common.RoleUser:  true,
	common.RoleHost:  true,
	common.RoleAdmin: true,
}

// KYC decisions an admin may record.
var validKYCDecisions = map[string]bool{
	user.KYCStatusVerified: true,
	user.KYCStatusRejected: true,
}

// MonthlyCount is one month's booking volume.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Analytics aggregates platform totals and the booking trend.
type Analytics struct {
	TotalUsers      int64          `json:"total_users"`
	TotalHosts      int64          `json:"total_hosts"`
	TotalProperties int64          `json:"total_properties"`
	TotalBookings   int64          `json:"total_bookings"`
	TotalRevenue    float64        `json:"total_revenue"`
	BookingTrend    []MonthlyCount `json:"booking_trend"`
}

// Service defines administrative operations.
type Service interface {
	ListUsers(ctx context.Context, params user.ListParams) ([]user.User, int64, error)
	SetUserRole(ctx context.Context, userID uuid.UUID, role string) (*user.User, error)
	// SetKYCStatus records a KYC decision. Only VERIFIED and REJECTED are
	// accepted; anything else is rejected without touching the user.
	SetKYCStatus(ctx context.Context, userID uuid.UUID, status string) (*user.User, error)
	ListPayments(ctx context.Context, status string, page, pageSize int) ([]payment.Payment, int64, error)
	SetPaymentStatus(ctx context.Context, paymentID uuid.UUID, status string) (*payment.Payment, error)
	GetAnalytics(ctx context.Context) (*Analytics, error)
	RunBookingReminders(ctx context.Context) (*booking.ReminderSummary, error)
}

// ServiceImplementation implements the admin Service.
type ServiceImplementation struct {
	userRepo            user.Repository
	propertyRepo        property.Repository
	bookingRepo         booking.Repository
	bookingService      booking.Service
	paymentService      payment.Service
	notificationService notification.Service
	logger              *zap.Logger
}

// NewService creates an admin service.
func NewService(
	userRepo user.Repository,
	propertyRepo property.Repository,
	bookingRepo booking.Repository,
	bookingService booking.Service,
	paymentService payment.Service,
	notificationService notification.Service,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		userRepo:            userRepo,
		propertyRepo:        propertyRepo,
		bookingRepo:         bookingRepo,
		bookingService:      bookingService,
		paymentService:      paymentService,
		notificationService: notificationService,
		logger:              logger.Named("admin_service"),
	}
}

func (s *ServiceImplementation) ListUsers(ctx context.Context, params user.ListParams) ([]user.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *ServiceImplementation) SetUserRole(ctx context.Context, userID uuid.UUID, role string) (*user.User, error) {
	if !validRoles[role] {
		return nil, common.ErrBadRequest.WithDetails("Invalid role")
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.Role != role {
		if err := s.userRepo.UpdateFields(ctx, u.ID, map[string]interface{}{"role": role}); err != nil {
			return nil, common.ErrInternalServer.WithDetails("Failed to update role")
		}
		u.Role = role
		s.logger.Info("User role changed", zap.String("user_id", userID.String()), zap.String("role", role))
	}
	return u, nil
}

func (s *ServiceImplementation) SetKYCStatus(ctx context.Context, userID uuid.UUID, status string) (*user.User, error) {
	if !validKYCDecisions[status] {
		return nil, common.ErrBadRequest.WithDetails("KYC status must be VERIFIED or REJECTED")
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(ctx, u.ID, map[string]interface{}{"kyc_status": status}); err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to update KYC status")
	}
	u.KYCStatus = status

	if _, err := s.notificationService.Notify(ctx, notification.CreateParams{
		UserID: u.ID,
		Type:   notification.TypeKYCDecision,
		Title:  "Identity verification update",
		Body:   fmt.Sprintf("Your identity verification was %s.", kycWord(status)),
	}); err != nil {
		s.logger.Warn("Failed to record KYC notification", zap.String("user_id", userID.String()), zap.Error(err))
	}

	s.logger.Info("KYC decision recorded", zap.String("user_id", userID.String()), zap.String("status", status))
	return u, nil
}

func kycWord(status string) string {
	if status == user.KYCStatusVerified {
		return "approved"
	}
	return "rejected"
}

func (s *ServiceImplementation) ListPayments(ctx context.Context, status string, page, pageSize int) ([]payment.Payment, int64, error) {
	return s.paymentService.List(ctx, status, page, pageSize)
}

func (s *ServiceImplementation) SetPaymentStatus(ctx context.Context, paymentID uuid.UUID, status string) (*payment.Payment, error) {
	return s.paymentService.AdminSetStatus(ctx, paymentID, status)
}

// GetAnalytics returns platform totals and the last twelve months of booking
// volume, bucketed by calendar month.
func (s *ServiceImplementation) GetAnalytics(ctx context.Context) (*Analytics, error) {
	totalUsers, err := s.userRepo.CountByRole(ctx, "")
	if err != nil {
		return nil, err
	}
	totalHosts, err := s.userRepo.CountByRole(ctx, common.RoleHost)
	if err != nil {
		return nil, err
	}
	totalProperties, err := s.propertyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.bookingRepo.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	timestamps, err := s.bookingRepo.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		TotalUsers:      totalUsers,
		TotalHosts:      totalHosts,
		TotalProperties: totalProperties,
		TotalBookings:   totalBookings,
		TotalRevenue:    totalRevenue,
		BookingTrend:    bucketByMonth(timestamps, since, now),
	}, nil
}

// bucketByMonth groups timestamps into calendar months from `since` through
// the month containing `until`, inclusive, emitting zero-count months.
func bucketByMonth(timestamps []time.Time, since, until time.Time) []MonthlyCount {
	counts := map[string]int64{}
	for _, ts := range timestamps {
		counts[ts.UTC().Format("2006-01")]++
	}

	var trend []MonthlyCount
	cursor := time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(until.Year(), until.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		key := cursor.Format("2006-01")
		trend = append(trend, MonthlyCount{Month: key, Count: counts[key]})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return trend
}

func (s *ServiceImplementation) RunBookingReminders(ctx context.Context) (*booking.ReminderSummary, error) {
	return s.bookingService.SendCheckInReminders(ctx, time.Now().UTC())
}
