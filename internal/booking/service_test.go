// File: internal/booking/service_test.go
package booking

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

	"shortstay_backend/internal/availability"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/mail"
	"shortstay_backend/internal/notification"
	"shortstay_backend/internal/property"
	"shortstay_backend/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&property.Property{},
		&availability.AvailabilityBlock{},
		&Booking{},
		&notification.Notification{},
	))
	return db
}

type fixture struct {
	svc     Service
	db      *gorm.DB
	cfg     *config.Config
	host    *user.User
	guest   *user.User
	listing *property.Property
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	cfg := &config.Config{ServiceFeePercent: 10, CleaningFee: 25}

	host := &user.User{FirstName: "Hana", LastName: "Host", Email: "host-" + uuid.NewString()[:8] + "@example.com", PasswordHash: "x", Role: common.RoleHost}
	guest := &user.User{FirstName: "Gus", LastName: "Guest", Email: "guest-" + uuid.NewString()[:8] + "@example.com", PasswordHash: "x", Role: common.RoleUser}
	require.NoError(t, db.Create(host).Error)
	require.NoError(t, db.Create(guest).Error)

	listing := &property.Property{
		HostID:       host.ID,
		Title:        "Forest Cabin",
		Slug:         "forest-cabin-" + uuid.NewString()[:8],
		City:         "Utrecht",
		NightlyPrice: 100,
		MaxGuests:    4,
		Status:       property.StatusListed,
	}
	require.NoError(t, db.Create(listing).Error)

	propertyRepo := property.NewGORMRepository(db)
	availabilityService := availability.NewService(availability.NewGORMRepository(db), propertyRepo, log)
	notificationService := notification.NewService(notification.NewGORMRepository(db), log)

	svc := NewService(
		NewGORMRepository(db),
		propertyRepo,
		user.NewGORMRepository(db),
		availabilityService,
		notificationService,
		mail.NoopMailer{},
		cfg,
		log,
	)
	return &fixture{svc: svc, db: db, cfg: cfg, host: host, guest: guest, listing: listing}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateBookingComputesFees(t *testing.T) {
	f := setupFixture(t)

	resp, err := f.svc.Create(context.Background(), f.guest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(12),
		Guests:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Nights)
	assert.Equal(t, 200.0, resp.Fees.NightlySubtotal)
	assert.Equal(t, 20.0, resp.Fees.ServiceFee)
	assert.Equal(t, 25.0, resp.Fees.CleaningFee)
	assert.Equal(t, 245.0, resp.TotalAmount)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, PaymentStatusPending, resp.PaymentStatus)
}

func TestCreateBookingRejectsOwnProperty(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Create(context.Background(), f.host.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(12),
		Guests:     2,
	})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCreateBookingRejectsTooManyGuests(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Create(context.Background(), f.guest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(12),
		Guests:     9,
	})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCreateBookingRejectsBlockedDates(t *testing.T) {
	f := setupFixture(t)

	start, _ := time.Parse("2006-01-02", futureDate(9))
	end, _ := time.Parse("2006-01-02", futureDate(13))
	require.NoError(t, f.db.Create(&availability.AvailabilityBlock{
		PropertyID: f.listing.ID,
		StartDate:  start,
		EndDate:    end,
	}).Error)

	_, err := f.svc.Create(context.Background(), f.guest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(12),
		Guests:     2,
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateBookingRejectsOverlapWithApprovedBooking(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.guest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(14),
		Guests:     2,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.host.ID, common.RoleHost, first.ID)
	require.NoError(t, err)

	otherGuest := &user.User{FirstName: "Olive", LastName: "Other", Email: "other-" + uuid.NewString()[:8] + "@example.com", PasswordHash: "x", Role: common.RoleUser}
	require.NoError(t, f.db.Create(otherGuest).Error)

	_, err = f.svc.Create(ctx, otherGuest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(12),
		CheckOut:   futureDate(16),
		Guests:     2,
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestApproveByNonHostIsForbidden(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, f.guest.ID, CreateRequest{
		PropertyID: f.listing.ID,
		CheckIn:    futureDate(10),
		CheckOut:   futureDate(12),
		Guests:     2,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, uuid.New(), common.RoleHost, resp.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCancelAfterCheckInIsRejected(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	b := &Booking{
		PropertyID:    f.listing.ID,
		GuestID:       f.guest.ID,
		HostID:        f.host.ID,
		CheckIn:       time.Now().UTC().AddDate(0, 0, -1),
		CheckOut:      time.Now().UTC().AddDate(0, 0, 1),
		Guests:        2,
		Nights:        2,
		Status:        StatusApproved,
		PaymentStatus: PaymentStatusSuccess,
	}
	require.NoError(t, f.db.Create(b).Error)

	_, err := f.svc.Cancel(ctx, f.guest.ID, b.ID)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func seedReminderBooking(t *testing.T, f *fixture, checkIn time.Time, status, paymentStatus string) *Booking {
	t.Helper()
	b := &Booking{
		PropertyID:    f.listing.ID,
		GuestID:       f.guest.ID,
		HostID:        f.host.ID,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		Guests:        2,
		Nights:        2,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	require.NoError(t, f.db.Create(b).Error)
	return b
}

func TestSendCheckInRemindersTargetsWindow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	due := seedReminderBooking(t, f, now.Add(24*time.Hour), StatusApproved, PaymentStatusSuccess)
	seedReminderBooking(t, f, now.Add(72*time.Hour), StatusApproved, PaymentStatusSuccess)
	seedReminderBooking(t, f, now.Add(24*time.Hour), StatusApproved, PaymentStatusPending)
	seedReminderBooking(t, f, now.Add(24*time.Hour), StatusPending, PaymentStatusSuccess)

	summary, err := f.svc.SendCheckInReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Skipped)

	var count int64
	require.NoError(t, f.db.Model(&notification.Notification{}).
		Where("booking_id = ? AND type = ?", due.ID, notification.TypeCheckInReminder).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSendCheckInRemindersIsIdempotent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	due := seedReminderBooking(t, f, now.Add(24*time.Hour), StatusApproved, PaymentStatusSuccess)

	first, err := f.svc.SendCheckInReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := f.svc.SendCheckInReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)

	var count int64
	require.NoError(t, f.db.Model(&notification.Notification{}).
		Where("booking_id = ? AND type = ?", due.ID, notification.TypeCheckInReminder).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
