// File: internal/admin/service_test.go
package admin

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
		&booking.Booking{},
		&notification.Notification{},
	))
	return db
}

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()

	svc := NewService(
		user.NewGORMRepository(db),
		property.NewGORMRepository(db),
		booking.NewGORMRepository(db),
		nil, // booking service: not exercised here
		nil, // payment service: not exercised here
		notification.NewService(notification.NewGORMRepository(db), log),
		log,
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, role, kycStatus string) *user.User {
	t.Helper()
	u := &user.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        "user-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         role,
		KYCStatus:    kycStatus,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestSetKYCStatusRejectsUnknownValue(t *testing.T) {
	svc, db := setupService(t)
	u := seedUser(t, db, common.RoleUser, user.KYCStatusPending)

	for _, invalid := range []string{"APPROVED", "pending", "VERIFIED ", ""} {
		_, err := svc.SetKYCStatus(context.Background(), u.ID, invalid)
		assert.ErrorIs(t, err, common.ErrBadRequest, "value %q must be rejected", invalid)
	}

	var fresh user.User
	require.NoError(t, db.First(&fresh, "id = ?", u.ID).Error)
	assert.Equal(t, user.KYCStatusPending, fresh.KYCStatus)
}

func TestSetKYCStatusVerifiedNotifiesUser(t *testing.T) {
	svc, db := setupService(t)
	u := seedUser(t, db, common.RoleUser, user.KYCStatusPending)

	updated, err := svc.SetKYCStatus(context.Background(), u.ID, user.KYCStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, user.KYCStatusVerified, updated.KYCStatus)

	var count int64
	require.NoError(t, db.Model(&notification.Notification{}).
		Where("user_id = ? AND type = ?", u.ID, notification.TypeKYCDecision).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetUserRoleValidatesSetMembership(t *testing.T) {
	svc, db := setupService(t)
	u := seedUser(t, db, common.RoleUser, user.KYCStatusNone)
	ctx := context.Background()

	_, err := svc.SetUserRole(ctx, u.ID, "SUPERADMIN")
	assert.ErrorIs(t, err, common.ErrBadRequest)

	updated, err := svc.SetUserRole(ctx, u.ID, common.RoleHost)
	require.NoError(t, err)
	assert.Equal(t, common.RoleHost, updated.Role)
}

func TestListUsersFiltersByRoleAndKYC(t *testing.T) {
	svc, db := setupService(t)
	seedUser(t, db, common.RoleUser, user.KYCStatusNone)
	seedUser(t, db, common.RoleHost, user.KYCStatusPending)
	seedUser(t, db, common.RoleHost, user.KYCStatusVerified)

	users, total, err := svc.ListUsers(context.Background(), user.ListParams{Role: common.RoleHost, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = svc.ListUsers(context.Background(), user.ListParams{Role: common.RoleHost, KYCStatus: user.KYCStatusPending, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, user.KYCStatusPending, users[0].KYCStatus)
}

func TestBucketByMonthGroupsByCalendarMonth(t *testing.T) {
	since := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	timestamps := []time.Time{
		time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
	}

	trend := bucketByMonth(timestamps, since, until)
	require.Len(t, trend, 3)
	assert.Equal(t, MonthlyCount{Month: "2026-06", Count: 2}, trend[0])
	assert.Equal(t, MonthlyCount{Month: "2026-07", Count: 0}, trend[1])
	assert.Equal(t, MonthlyCount{Month: "2026-08", Count: 1}, trend[2])
}

func TestGetAnalyticsTotals(t *testing.T) {
	svc, db := setupService(t)
	host := seedUser(t, db, common.RoleHost, user.KYCStatusVerified)
	guest := seedUser(t, db, common.RoleUser, user.KYCStatusNone)

	prop := &property.Property{
		HostID:       host.ID,
		Title:        "City Flat",
		Slug:         "city-flat-" + uuid.NewString()[:8],
		City:         "Leiden",
		NightlyPrice: 80,
		MaxGuests:    2,
		Status:       property.StatusListed,
	}
	require.NoError(t, db.Create(prop).Error)

	paid := &booking.Booking{
		PropertyID:    prop.ID,
		GuestID:       guest.ID,
		HostID:        host.ID,
		CheckIn:       time.Now().UTC().AddDate(0, 0, 5),
		CheckOut:      time.Now().UTC().AddDate(0, 0, 7),
		Guests:        2,
		Nights:        2,
		TotalAmount:   200,
		Status:        booking.StatusApproved,
		PaymentStatus: booking.PaymentStatusSuccess,
	}
	unpaid := &booking.Booking{
		PropertyID:    prop.ID,
		GuestID:       guest.ID,
		HostID:        host.ID,
		CheckIn:       time.Now().UTC().AddDate(0, 0, 10),
		CheckOut:      time.Now().UTC().AddDate(0, 0, 12),
		Guests:        2,
		Nights:        2,
		TotalAmount:   150,
		Status:        booking.StatusPending,
		PaymentStatus: booking.PaymentStatusPending,
	}
	require.NoError(t, db.Create(paid).Error)
	require.NoError(t, db.Create(unpaid).Error)

	analytics, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalUsers)
	assert.Equal(t, int64(1), analytics.TotalHosts)
	assert.Equal(t, int64(1), analytics.TotalProperties)
	assert.Equal(t, int64(2), analytics.TotalBookings)
	assert.InDelta(t, 200.0, analytics.TotalRevenue, 0.0001)
	assert.Len(t, analytics.BookingTrend, 12)
}
