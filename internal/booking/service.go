// File: internal/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/availability"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/mail"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/property"
	"shortstay_backend/internal/user"
)

// Service defines booking operations.
type Service interface {
	Create(ctx context.Context, guestID uuid.UUID, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error)
	ListMine(ctx context.Context, guestID uuid.UUID, page, pageSize int) ([]Response, int64, error)
	ListForHost(ctx context.Context, hostID uuid.UUID, status string, page, pageSize int) ([]Response, int64, error)
	Approve(ctx context.Context, hostID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error)
	Reject(ctx context.Context, hostID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error)
	Cancel(ctx context.Context, guestID uuid.UUID, id uuid.UUID) (*Response, error)
	// SendCheckInReminders notifies guests of paid, approved bookings whose
	// check-in is roughly 24 hours away. Safe to run repeatedly.
	SendCheckInReminders(ctx context.Context, now time.Time) (*ReminderSummary, error)
}

// ServiceImplementation implements the booking Service.
type ServiceImplementation struct {
	repo                Repository
	propertyRepo        property.Repository
	userRepo            user.Repository
	availabilityService availability.Service
	notificationService notification.Service
	mailer              mail.Mailer
	cfg                 *config.Config
	logger              *zap.Logger
}

// NewService creates a booking service.
func NewService(
	repo Repository,
	propertyRepo property.Repository,
	userRepo user.Repository,
	availabilityService availability.Service,
	notificationService notification.Service,
	mailer mail.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		repo:                repo,
		propertyRepo:        propertyRepo,
		userRepo:            userRepo,
		availabilityService: availabilityService,
		notificationService: notificationService,
		mailer:              mailer,
		cfg:                 cfg,
		logger:              logger.Named("booking_service"),
	}
}

const dateLayout = "2006-01-02"

// Reminder window: check-ins between 23 and 25 hours out. The two-hour slack
// keeps a daily run from missing bookings near the boundary.
const (
	reminderWindowStart = 23 * time.Hour
	reminderWindowEnd   = 25 * time.Hour
)

func (s *ServiceImplementation) Create(ctx context.Context, guestID uuid.UUID, req CreateRequest) (*Response, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("check_in must be a valid YYYY-MM-DD date")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("check_out must be a valid YYYY-MM-DD date")
	}
	if !checkOut.After(checkIn) {
		return nil, common.ErrBadRequest.WithDetails("check_out must be after check_in")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, common.ErrBadRequest.WithDetails("check_in must not be in the past")
	}

	prop, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsListed() {
		return nil, common.ErrBadRequest.WithDetails("Property is not available for booking")
	}
	if prop.HostID == guestID {
		return nil, common.ErrBadRequest.WithDetails("You cannot book your own property")
	}
	if req.Guests > prop.MaxGuests {
		return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Property accommodates at most %d guests", prop.MaxGuests))
	}

	blocked, err := s.availabilityService.IsBlocked(ctx, prop.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, common.ErrConflict.WithDetails("The property is unavailable for the selected dates")
	}

	conflict, err := s.repo.HasConflict(ctx, prop.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, common.ErrConflict.WithDetails("The property is already booked for the selected dates")
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	fees := s.computeFees(prop.NightlyPrice, nights)

	b := &Booking{
		PropertyID:    prop.ID,
		GuestID:       guestID,
		HostID:        prop.HostID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		Nights:        nights,
		Status:        StatusPending,
		PaymentStatus: PaymentStatusPending,
	}
	if err := b.SetFees(fees); err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to compute booking fees")
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create booking", zap.String("guest_id", guestID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create booking")
	}
	b.Property = prop

	s.notifyBookingEvent(ctx, b, prop.HostID, notification.TypeBookingCreated,
		"New booking request",
		fmt.Sprintf("A guest requested %d night(s) at %q starting %s.", nights, prop.Title, checkIn.Format(dateLayout)),
	)

	resp := b.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) computeFees(nightlyPrice float64, nights int) FeeBreakdown {
	subtotal := nightlyPrice * float64(nights)
	serviceFee := roundMoney(subtotal * s.cfg.ServiceFeePercent / 100)
	cleaning := s.cfg.CleaningFee
	return FeeBreakdown{
		NightlySubtotal: roundMoney(subtotal),
		CleaningFee:     roundMoney(cleaning),
		ServiceFee:      serviceFee,
		Total:           roundMoney(subtotal + serviceFee + cleaning),
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *ServiceImplementation) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID != actorID && b.HostID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You do not have access to this booking")
	}
	resp := b.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) ListMine(ctx context.Context, guestID uuid.UUID, page, pageSize int) ([]Response, int64, error) {
	bookings, total, err := s.repo.ListByGuest(ctx, guestID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ToResponseList(bookings), total, nil
}

func (s *ServiceImplementation) ListForHost(ctx context.Context, hostID uuid.UUID, status string, page, pageSize int) ([]Response, int64, error) {
	bookings, total, err := s.repo.ListByHost(ctx, hostID, status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ToResponseList(bookings), total, nil
}

func (s *ServiceImplementation) Approve(ctx context.Context, hostID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error) {
	return s.decide(ctx, hostID, actorRole, id, StatusApproved)
}

func (s *ServiceImplementation) Reject(ctx context.Context, hostID uuid.UUID, actorRole string, id uuid.UUID) (*Response, error) {
	return s.decide(ctx, hostID, actorRole, id, StatusRejected)
}

func (s *ServiceImplementation) decide(ctx context.Context, hostID uuid.UUID, actorRole string, id uuid.UUID, newStatus string) (*Response, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You do not host this booking")
	}
	if b.Status != StatusPending {
		return nil, common.ErrConflict.WithDetails("Only pending bookings can be approved or rejected")
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	b.Status = newStatus

	notifType := notification.TypeBookingApproved
	title := "Booking approved"
	if newStatus == StatusRejected {
		notifType = notification.TypeBookingRejected
		title = "Booking rejected"
	}

	propertyTitle := ""
	if b.Property != nil {
		propertyTitle = b.Property.Title
	}
	s.notifyBookingEvent(ctx, b, b.GuestID, notifType, title,
		fmt.Sprintf("Your booking for %q was %s.", propertyTitle, statusWord(newStatus)))
	s.emailGuest(ctx, b, propertyTitle, newStatus)

	resp := b.ToResponse()
	return &resp, nil
}

func statusWord(status string) string {
	switch status {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusCancelled:
		return "cancelled"
	default:
		return "updated"
	}
}

func (s *ServiceImplementation) Cancel(ctx context.Context, guestID uuid.UUID, id uuid.UUID) (*Response, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID != guestID {
		return nil, common.ErrForbidden.WithDetails("You did not create this booking")
	}
	if b.Status == StatusCancelled || b.Status == StatusRejected {
		return nil, common.ErrConflict.WithDetails("Booking is already closed")
	}
	if !time.Now().UTC().Before(b.CheckIn) {
		return nil, common.ErrConflict.WithDetails("Bookings cannot be cancelled after check-in")
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	propertyTitle := ""
	if b.Property != nil {
		propertyTitle = b.Property.Title
	}
	s.notifyBookingEvent(ctx, b, b.HostID, notification.TypeBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("The guest cancelled a booking for %q.", propertyTitle))

	resp := b.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) SendCheckInReminders(ctx context.Context, now time.Time) (*ReminderSummary, error) {
	from := now.Add(reminderWindowStart)
	to := now.Add(reminderWindowEnd)

	due, err := s.repo.FindDueForReminder(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &ReminderSummary{Scanned: len(due)}
	for i := range due {
		b := &due[i]

		exists, err := s.notificationService.ExistsForBooking(ctx, b.ID, notification.TypeCheckInReminder)
		if err != nil {
			s.logger.Error("Reminder dedupe check failed", zap.String("booking_id", b.ID.String()), zap.Error(err))
			summary.Errored++
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		propertyTitle := ""
		if b.Property != nil {
			propertyTitle = b.Property.Title
		}

		bookingID := b.ID
		propertyID := b.PropertyID
		_, err = s.notificationService.Notify(ctx, notification.CreateParams{
			UserID:     b.GuestID,
			Type:       notification.TypeCheckInReminder,
			Title:      "Check-in tomorrow",
			Body:       fmt.Sprintf("Your stay at %q starts on %s. Safe travels!", propertyTitle, b.CheckIn.Format(dateLayout)),
			BookingID:  &bookingID,
			PropertyID: &propertyID,
		})
		if err != nil {
			summary.Errored++
			continue
		}
		summary.Created++
	}

	s.logger.Info("Check-in reminder run complete",
		zap.Int("scanned", summary.Scanned),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errored", summary.Errored),
	)
	return summary, nil
}

// notifyBookingEvent records an in-app notification. Notification failures
// never fail the booking operation.
func (s *ServiceImplementation) notifyBookingEvent(ctx context.Context, b *Booking, recipient uuid.UUID, notifType, title, body string) {
	bookingID := b.ID
	propertyID := b.PropertyID
	if _, err := s.notificationService.Notify(ctx, notification.CreateParams{
		UserID:     recipient,
		Type:       notifType,
		Title:      title,
		Body:       body,
		BookingID:  &bookingID,
		PropertyID: &propertyID,
	}); err != nil {
		s.logger.Warn("Failed to record booking notification",
			zap.String("booking_id", b.ID.String()),
			zap.String("type", notifType),
			zap.Error(err),
		)
	}
}

// emailGuest sends a best-effort status email to the booking's guest.
func (s *ServiceImplementation) emailGuest(ctx context.Context, b *Booking, propertyTitle, status string) {
	guest, err := s.userRepo.FindByID(ctx, b.GuestID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn("Failed to load guest for status email", zap.String("booking_id", b.ID.String()), zap.Error(err))
		}
		return
	}
	if err := s.mailer.SendBookingStatusUpdate(guest.Email, propertyTitle, status); err != nil {
		s.logger.Warn("Failed to send booking status email", zap.String("booking_id", b.ID.String()), zap.Error(err))
	}
}
