// File: internal/review/service_test.go
package review

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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&property.Property{},
		&booking.Booking{},
		&Review{},
		&notification.Notification{},
	))
	return db
}

type fixture struct {
	svc      Service
	db       *gorm.DB
	property *property.Property
	guestID  uuid.UUID
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()

	prop := &property.Property{
		HostID:       uuid.New(),
		Title:        "Harbour Studio",
		Slug:         "harbour-studio-" + uuid.NewString()[:8],
		City:         "Rotterdam",
		NightlyPrice: 95,
		MaxGuests:    2,
		Status:       property.StatusListed,
	}
	require.NoError(t, db.Create(prop).Error)

	svc := NewService(
		NewGORMRepository(db),
		booking.NewGORMRepository(db),
		property.NewGORMRepository(db),
		notification.NewService(notification.NewGORMRepository(db), log),
		log,
	)
	return &fixture{svc: svc, db: db, property: prop, guestID: uuid.New()}
}

func (f *fixture) seedBooking(t *testing.T, paymentStatus string) *booking.Booking {
	t.Helper()
	b := &booking.Booking{
		PropertyID:    f.property.ID,
		GuestID:       f.guestID,
		HostID:        f.property.HostID,
		CheckIn:       time.Now().UTC().AddDate(0, 0, -3),
		CheckOut:      time.Now().UTC().AddDate(0, 0, -1),
		Guests:        2,
		Nights:        2,
		TotalAmount:   215,
		Status:        booking.StatusApproved,
		PaymentStatus: paymentStatus,
	}
	require.NoError(t, f.db.Create(b).Error)
	return b
}

func TestCreateReviewOnUnpaidBookingIsRejected(t *testing.T) {
	f := setupFixture(t)
	b := f.seedBooking(t, booking.PaymentStatusPending)

	_, err := f.svc.Create(context.Background(), f.guestID, CreateRequest{
		BookingID: b.ID,
		Rating:    5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBadRequest)

	var count int64
	require.NoError(t, f.db.Model(&Review{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateReviewByNonGuestIsForbidden(t *testing.T) {
	f := setupFixture(t)
	b := f.seedBooking(t, booking.PaymentStatusSuccess)

	_, err := f.svc.Create(context.Background(), uuid.New(), CreateRequest{
		BookingID: b.ID,
		Rating:    4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestSecondReviewOnSameBookingConflicts(t *testing.T) {
	f := setupFixture(t)
	b := f.seedBooking(t, booking.PaymentStatusSuccess)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.guestID, CreateRequest{BookingID: b.ID, Rating: 4})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.guestID, CreateRequest{BookingID: b.ID, Rating: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	var fresh property.Property
	require.NoError(t, f.db.First(&fresh, "id = ?", f.property.ID).Error)
	assert.Equal(t, 1, fresh.ReviewsCount)
}

func TestAvgRatingIsArithmeticMean(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ratings := []int{5, 3, 4}
	for _, rating := range ratings {
		b := f.seedBooking(t, booking.PaymentStatusSuccess)
		_, err := f.svc.Create(ctx, f.guestID, CreateRequest{BookingID: b.ID, Rating: rating})
		require.NoError(t, err)
	}

	var fresh property.Property
	require.NoError(t, f.db.First(&fresh, "id = ?", f.property.ID).Error)
	assert.Equal(t, 3, fresh.ReviewsCount)
	assert.InDelta(t, 4.0, fresh.AvgRating, 0.0001)
}

func TestReviewCreationNotifiesHost(t *testing.T) {
	f := setupFixture(t)
	b := f.seedBooking(t, booking.PaymentStatusSuccess)

	_, err := f.svc.Create(context.Background(), f.guestID, CreateRequest{BookingID: b.ID, Rating: 5})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&notification.Notification{}).
		Where("user_id = ? AND type = ?", f.property.HostID, notification.TypeReviewReceived).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHostReply(t *testing.T) {
	f := setupFixture(t)
	b := f.seedBooking(t, booking.PaymentStatusSuccess)
	ctx := context.Background()

	rev, err := f.svc.Create(ctx, f.guestID, CreateRequest{BookingID: b.ID, Rating: 4, Comment: "Great stay"})
	require.NoError(t, err)

	_, err = f.svc.Reply(ctx, uuid.New(), common.RoleHost, rev.ID, ReplyRequest{Reply: "Thanks!"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	updated, err := f.svc.Reply(ctx, f.property.HostID, common.RoleHost, rev.ID, ReplyRequest{Reply: "Thanks!"})
	require.NoError(t, err)
	assert.Equal(t, "Thanks!", updated.HostReply)
	require.NotNil(t, updated.RepliedAt)

	_, err = f.svc.Reply(ctx, f.property.HostID, common.RoleHost, rev.ID, ReplyRequest{Reply: "Again"})
	assert.ErrorIs(t, err, common.ErrConflict)
}
