// File: internal/review/service.go
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/property"
)

// Service defines review operations.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req CreateRequest) (*Review, error)
	Reply(ctx context.Context, hostID uuid.UUID, actorRole string, reviewID uuid.UUID, req ReplyRequest) (*Review, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, page, pageSize int) ([]Review, int64, error)
}

// ServiceImplementation implements the review Service.
type ServiceImplementation struct {
	repo                Repository
	bookingRepo         booking.Repository
	propertyRepo        property.Repository
	notificationService notification.Service
	logger              *zap.Logger
}

// NewService creates a review service.
func NewService(
	repo Repository,
	bookingRepo booking.Repository,
	propertyRepo property.Repository,
	notificationService notification.Service,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		repo:                repo,
		bookingRepo:         bookingRepo,
		propertyRepo:        propertyRepo,
		notificationService: notificationService,
		logger:              logger.Named("review_service"),
	}
}

func (s *ServiceImplementation) Create(ctx context.Context, authorID uuid.UUID, req CreateRequest) (*Review, error) {
	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != authorID {
		return nil, common.ErrForbidden.WithDetails("Only the booking's guest can review it")
	}
	if !b.IsPaid() {
		return nil, common.ErrBadRequest.WithDetails("Only paid bookings can be reviewed")
	}

	if _, err := s.repo.FindByBookingID(ctx, b.ID); err == nil {
		return nil, common.ErrConflict.WithDetails("This booking has already been reviewed")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	rev := &Review{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		AuthorID:   authorID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.CreateWithAggregates(ctx, rev); err != nil {
		s.logger.Error("Failed to create review", zap.String("booking_id", b.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create review")
	}

	bookingID := b.ID
	propertyID := b.PropertyID
	if _, err := s.notificationService.Notify(ctx, notification.CreateParams{
		UserID:     b.HostID,
		Type:       notification.TypeReviewReceived,
		Title:      "New review",
		Body:       fmt.Sprintf("A guest left a %d-star review on your property.", req.Rating),
		BookingID:  &bookingID,
		PropertyID: &propertyID,
	}); err != nil {
		s.logger.Warn("Failed to record review notification", zap.String("review_id", rev.ID.String()), zap.Error(err))
	}

	return rev, nil
}

func (s *ServiceImplementation) Reply(ctx context.Context, hostID uuid.UUID, actorRole string, reviewID uuid.UUID, req ReplyRequest) (*Review, error) {
	rev, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	prop, err := s.propertyRepo.FindByID(ctx, rev.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop.HostID != hostID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("Only the property's host can reply to reviews")
	}
	if rev.HostReply != "" {
		return nil, common.ErrConflict.WithDetails("This review already has a reply")
	}

	now := time.Now().UTC()
	rev.HostReply = req.Reply
	rev.RepliedAt = &now
	if err := s.repo.Update(ctx, rev); err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to save reply")
	}
	return rev, nil
}

func (s *ServiceImplementation) ListByProperty(ctx context.Context, propertyID uuid.UUID, page, pageSize int) ([]Review, int64, error) {
	if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByProperty(ctx, propertyID, page, pageSize)
}
