// File: internal/notification/service.go
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateParams describes a notification to create.
type CreateParams struct {
	UserID     uuid.UUID
	Type       string
	Title      string
	Body       string
	BookingID  *uuid.UUID
	PropertyID *uuid.UUID
}

// Service defines notification operations.
type Service interface {
	Notify(ctx context.Context, params CreateParams) (*Notification, error)
	ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID, notificationType string) (bool, error)
}

// ServiceImplementation implements the notification Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a notification service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, logger: logger.Named("notification_service")}
}

func (s *ServiceImplementation) Notify(ctx context.Context, params CreateParams) (*Notification, error) {
	n := &Notification{
		UserID:     params.UserID,
		Type:       params.Type,
		Title:      params.Title,
		Body:       params.Body,
		BookingID:  params.BookingID,
		PropertyID: params.PropertyID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.String("user_id", params.UserID.String()),
			zap.String("type", params.Type),
			zap.Error(err),
		)
		return nil, err
	}
	return n, nil
}

func (s *ServiceImplementation) ListMine(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, page, pageSize)
}

func (s *ServiceImplementation) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *ServiceImplementation) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID, time.Now().UTC())
}

func (s *ServiceImplementation) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
}

func (s *ServiceImplementation) ExistsForBooking(ctx context.Context, bookingID uuid.UUID, notificationType string) (bool, error) {
	return s.repo.ExistsForBooking(ctx, bookingID, notificationType)
}
