// File: internal/payment/service_test.go
package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/property"
)

// stubProvider returns canned checkout sessions and statuses.
type stubProvider struct {
	status     string
	verifyErr  error
	checkouts  int
	lastParams CheckoutParams
}

func (p *stubProvider) CreateCheckout(_ context.Context, params CheckoutParams) (*CheckoutSession, error) {
	p.checkouts++
	p.lastParams = params
	return &CheckoutSession{
		OrderCode:   params.OrderCode,
		CheckoutURL: "https://pay.example.com/checkout/123",
	}, nil
}

func (p *stubProvider) Verify(context.Context, int64) (string, error) {
	return p.status, p.verifyErr
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&property.Property{},
		&booking.Booking{},
		&Payment{},
		&notification.Notification{},
	))
	return db
}

type fixture struct {
	svc      Service
	db       *gorm.DB
	provider *stubProvider
	guestID  uuid.UUID
	hostID   uuid.UUID
	booking  *booking.Booking
}

func setupFixture(t *testing.T, bookingStatus, paymentStatus string) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	provider := &stubProvider{status: ProviderStatusPending}

	hostID := uuid.New()
	guestID := uuid.New()

	prop := &property.Property{
		HostID:       hostID,
		Title:        "Dune House",
		Slug:         "dune-house-" + uuid.NewString()[:8],
		City:         "Zandvoort",
		NightlyPrice: 150,
		MaxGuests:    4,
		Status:       property.StatusListed,
	}
	require.NoError(t, db.Create(prop).Error)

	b := &booking.Booking{
		PropertyID:    prop.ID,
		GuestID:       guestID,
		HostID:        hostID,
		CheckIn:       time.Now().UTC().AddDate(0, 0, 7),
		CheckOut:      time.Now().UTC().AddDate(0, 0, 9),
		Guests:        2,
		Nights:        2,
		TotalAmount:   325,
		Status:        bookingStatus,
		PaymentStatus: paymentStatus,
	}
	require.NoError(t, db.Create(b).Error)

	svc := NewService(
		NewGORMRepository(db),
		booking.NewGORMRepository(db),
		provider,
		notification.NewService(notification.NewGORMRepository(db), log),
		log,
	)
	return &fixture{svc: svc, db: db, provider: provider, guestID: guestID, hostID: hostID, booking: b}
}

func TestInitializeReturnsCheckoutURL(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)

	resp, err := f.svc.Initialize(context.Background(), f.guestID, InitializeRequest{BookingID: f.booking.ID})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/checkout/123", resp.CheckoutURL)
	assert.Equal(t, 325.0, resp.Amount)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, 1, f.provider.checkouts)
}

func TestInitializeRejectsPendingBooking(t *testing.T) {
	f := setupFixture(t, booking.StatusPending, booking.PaymentStatusPending)

	_, err := f.svc.Initialize(context.Background(), f.guestID, InitializeRequest{BookingID: f.booking.ID})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestInitializeRejectsPaidBooking(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusSuccess)

	_, err := f.svc.Initialize(context.Background(), f.guestID, InitializeRequest{BookingID: f.booking.ID})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestInitializeRejectsNonGuest(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)

	_, err := f.svc.Initialize(context.Background(), uuid.New(), InitializeRequest{BookingID: f.booking.ID})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestVerifyPaidMarksPaymentAndBookingAtomically(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)
	ctx := context.Background()

	init, err := f.svc.Initialize(ctx, f.guestID, InitializeRequest{BookingID: f.booking.ID})
	require.NoError(t, err)

	f.provider.status = ProviderStatusPaid
	resp, err := f.svc.Verify(ctx, init.Reference)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)

	var p Payment
	require.NoError(t, f.db.First(&p, "id = ?", init.PaymentID).Error)
	assert.Equal(t, StatusSuccess, p.Status)
	require.NotNil(t, p.PaidAt)

	var b booking.Booking
	require.NoError(t, f.db.First(&b, "id = ?", f.booking.ID).Error)
	assert.Equal(t, booking.PaymentStatusSuccess, b.PaymentStatus)

	// Guest and host are both notified.
	var count int64
	require.NoError(t, f.db.Model(&notification.Notification{}).
		Where("type = ?", notification.TypePaymentSuccess).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestVerifyCancelledMarksFailed(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)
	ctx := context.Background()

	init, err := f.svc.Initialize(ctx, f.guestID, InitializeRequest{BookingID: f.booking.ID})
	require.NoError(t, err)

	f.provider.status = ProviderStatusCancelled
	resp, err := f.svc.Verify(ctx, init.Reference)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, resp.Status)

	var b booking.Booking
	require.NoError(t, f.db.First(&b, "id = ?", f.booking.ID).Error)
	assert.Equal(t, booking.PaymentStatusFailed, b.PaymentStatus)
}

func TestVerifyAlreadySucceededSkipsProvider(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)
	ctx := context.Background()

	init, err := f.svc.Initialize(ctx, f.guestID, InitializeRequest{BookingID: f.booking.ID})
	require.NoError(t, err)

	f.provider.status = ProviderStatusPaid
	_, err = f.svc.Verify(ctx, init.Reference)
	require.NoError(t, err)

	f.provider.verifyErr = assert.AnError
	resp, err := f.svc.Verify(ctx, init.Reference)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
}

func TestAdminSetStatusValidatesSetMembership(t *testing.T) {
	f := setupFixture(t, booking.StatusApproved, booking.PaymentStatusPending)
	ctx := context.Background()

	init, err := f.svc.Initialize(ctx, f.guestID, InitializeRequest{BookingID: f.booking.ID})
	require.NoError(t, err)

	_, err = f.svc.AdminSetStatus(ctx, init.PaymentID, "PAID")
	assert.ErrorIs(t, err, common.ErrBadRequest)

	p, err := f.svc.AdminSetStatus(ctx, init.PaymentID, StatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, p.Status)

	var b booking.Booking
	require.NoError(t, f.db.First(&b, "id = ?", f.booking.ID).Error)
	assert.Equal(t, booking.PaymentStatusRefunded, b.PaymentStatus)
}
