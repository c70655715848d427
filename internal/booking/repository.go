// File: internal/booking/repository.go
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
)

// StatusCounts maps a booking status to the number of bookings in it.
type StatusCounts map[string]int64

// Repository defines persistence operations for bookings.
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, page, pageSize int) ([]Booking, int64, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, status string, page, pageSize int) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus string) error
	// HasConflict reports whether an APPROVED or paid booking on the property
	// intersects [checkIn, checkOut).
	HasConflict(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	// FindDueForReminder returns APPROVED, paid bookings whose check-in falls
	// inside [from, to).
	FindDueForReminder(ctx context.Context, from, to time.Time) ([]Booking, error)
	CountByHostStatus(ctx context.Context, hostID uuid.UUID) (StatusCounts, error)
	SumHostEarnings(ctx context.Context, hostID uuid.UUID) (float64, error)
	RecentByHost(ctx context.Context, hostID uuid.UUID, limit int) ([]Booking, error)
	Count(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	// ListCreatedSince returns creation timestamps of bookings created at or
	// after the given time, for trend bucketing.
	ListCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a booking repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Preload("Property").First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Booking not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *gormRepository) ListByGuest(ctx context.Context, guestID uuid.UUID, page, pageSize int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Where("guest_id = ?", guestID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Preload("Property").
		Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *gormRepository) ListByHost(ctx context.Context, hostID uuid.UUID, status string, page, pageSize int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Where("host_id = ?", hostID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Preload("Property").
		Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Booking not found")
	}
	return nil
}

func (r *gormRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentStatus string) error {
	result := r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Update("payment_status", paymentStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Booking not found")
	}
	return nil
}

func (r *gormRepository) HasConflict(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("property_id = ?", propertyID).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Where("status = ? OR payment_status = ?", StatusApproved, PaymentStatusSuccess).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) FindDueForReminder(ctx context.Context, from, to time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("status = ? AND payment_status = ?", StatusApproved, PaymentStatusSuccess).
		Where("check_in >= ? AND check_in < ?", from, to).
		Find(&bookings).Error
	return bookings, err
}

func (r *gormRepository) CountByHostStatus(ctx context.Context, hostID uuid.UUID) (StatusCounts, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("status, COUNT(*) as count").
		Where("host_id = ?", hostID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := StatusCounts{}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *gormRepository) SumHostEarnings(ctx context.Context, hostID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("host_id = ? AND payment_status = ?", hostID, PaymentStatusSuccess).
		Scan(&total).Error
	return total, err
}

func (r *gormRepository) RecentByHost(ctx context.Context, hostID uuid.UUID, limit int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).Count(&count).Error
	return count, err
}

func (r *gormRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", PaymentStatusSuccess).
		Scan(&total).Error
	return total, err
}

func (r *gormRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var timestamps []time.Time
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &timestamps).Error
	return timestamps, err
}
