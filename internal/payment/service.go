// File: internal/payment/service.go
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/notification"
)

const providerName = "payos"

// Service defines payment operations.
type Service interface {
	// Initialize opens a provider checkout for an approved, unpaid booking
	// and returns the redirect URL.
	Initialize(ctx context.Context, userID uuid.UUID, req InitializeRequest) (*InitializeResponse, error)
	// Verify asks the provider for the payment result. A confirmed payment
	// marks the payment and booking paid atomically.
	Verify(ctx context.Context, reference string) (*VerifyResponse, error)
	List(ctx context.Context, status string, page, pageSize int) ([]Payment, int64, error)
	// AdminSetStatus overrides the payment state, keeping the booking in
	// sync. Only the known payment states are accepted.
	AdminSetStatus(ctx context.Context, paymentID uuid.UUID, status string) (*Payment, error)
}

// ServiceImplementation implements the payment Service.
type ServiceImplementation struct {
	repo                Repository
	bookingRepo         booking.Repository
	provider            Provider
	notificationService notification.Service
	logger              *zap.Logger
}

// NewService creates a payment service.
func NewService(
	repo Repository,
	bookingRepo booking.Repository,
	provider Provider,
	notificationService notification.Service,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		repo:                repo,
		bookingRepo:         bookingRepo,
		provider:            provider,
		notificationService: notificationService,
		logger:              logger.Named("payment_service"),
	}
}

func (s *ServiceImplementation) Initialize(ctx context.Context, userID uuid.UUID, req InitializeRequest) (*InitializeResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID {
		return nil, common.ErrForbidden.WithDetails("You did not create this booking")
	}
	if b.Status != booking.StatusApproved {
		return nil, common.ErrBadRequest.WithDetails("Only approved bookings can be paid")
	}
	if b.IsPaid() {
		return nil, common.ErrConflict.WithDetails("Booking has already been paid")
	}

	orderCode := newOrderCode()
	reference := fmt.Sprintf("%s:%d", providerName, orderCode)

	propertyTitle := "Shortstay booking"
	if b.Property != nil {
		propertyTitle = b.Property.Title
	}

	p := &Payment{
		BookingID: b.ID,
		UserID:    userID,
		Amount:    b.TotalAmount,
		Provider:  providerName,
		Reference: reference,
		OrderCode: orderCode,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create payment record", zap.String("booking_id", b.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to initialize payment")
	}

	session, err := s.provider.CreateCheckout(ctx, CheckoutParams{
		OrderCode:   orderCode,
		Amount:      b.TotalAmount,
		Description: fmt.Sprintf("Booking %s", b.ID),
		ItemName:    propertyTitle,
	})
	if err != nil {
		s.logger.Error("Provider checkout failed", zap.String("reference", reference), zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Payment provider is unavailable")
	}

	p.CheckoutURL = session.CheckoutURL
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to initialize payment")
	}

	return &InitializeResponse{
		PaymentID:   p.ID,
		Reference:   reference,
		CheckoutURL: session.CheckoutURL,
		Amount:      p.Amount,
	}, nil
}

// newOrderCode builds a provider order code from the current time plus random
// low digits to avoid collisions within the same millisecond.
func newOrderCode() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

func (s *ServiceImplementation) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	p, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusSuccess {
		return &VerifyResponse{PaymentID: p.ID, BookingID: p.BookingID, Reference: p.Reference, Status: p.Status}, nil
	}

	providerStatus, err := s.provider.Verify(ctx, p.OrderCode)
	if err != nil {
		s.logger.Error("Provider verification failed", zap.String("reference", reference), zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Payment provider is unavailable")
	}

	switch providerStatus {
	case ProviderStatusPaid:
		now := time.Now().UTC()
		if err := s.repo.SetResult(ctx, p.ID, p.BookingID, StatusSuccess, &now); err != nil {
			s.logger.Error("Failed to record payment success", zap.String("reference", reference), zap.Error(err))
			return nil, common.ErrInternalServer.WithDetails("Failed to record payment")
		}
		p.Status = StatusSuccess
		s.notifyPaid(ctx, p)
	case ProviderStatusCancelled:
		if err := s.repo.SetResult(ctx, p.ID, p.BookingID, StatusFailed, nil); err != nil {
			return nil, common.ErrInternalServer.WithDetails("Failed to record payment")
		}
		p.Status = StatusFailed
	default:
		// Still pending at the provider; leave our state untouched.
	}

	return &VerifyResponse{PaymentID: p.ID, BookingID: p.BookingID, Reference: p.Reference, Status: p.Status}, nil
}

func (s *ServiceImplementation) notifyPaid(ctx context.Context, p *Payment) {
	b, err := s.bookingRepo.FindByID(ctx, p.BookingID)
	if err != nil {
		s.logger.Warn("Failed to load booking for payment notification", zap.String("payment_id", p.ID.String()), zap.Error(err))
		return
	}

	bookingID := b.ID
	propertyID := b.PropertyID
	for _, recipient := range []uuid.UUID{b.GuestID, b.HostID} {
		if _, err := s.notificationService.Notify(ctx, notification.CreateParams{
			UserID:     recipient,
			Type:       notification.TypePaymentSuccess,
			Title:      "Payment received",
			Body:       fmt.Sprintf("Payment of %.2f for booking %s was confirmed.", p.Amount, b.ID),
			BookingID:  &bookingID,
			PropertyID: &propertyID,
		}); err != nil {
			s.logger.Warn("Failed to record payment notification", zap.String("payment_id", p.ID.String()), zap.Error(err))
		}
	}
}

func (s *ServiceImplementation) List(ctx context.Context, status string, page, pageSize int) ([]Payment, int64, error) {
	return s.repo.List(ctx, status, page, pageSize)
}

func (s *ServiceImplementation) AdminSetStatus(ctx context.Context, paymentID uuid.UUID, status string) (*Payment, error) {
	if !ValidStatuses[status] {
		return nil, common.ErrBadRequest.WithDetails("Invalid payment status")
	}

	p, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if status == StatusSuccess {
		now := time.Now().UTC()
		paidAt = &now
	}
	if err := s.repo.SetResult(ctx, p.ID, p.BookingID, status, paidAt); err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to update payment status")
	}
	p.Status = status
	p.PaidAt = paidAt
	return p, nil
}
