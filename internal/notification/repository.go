// File: internal/notification/repository.go
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
)

// Repository defines persistence operations for notifications.
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	// ExistsForBooking reports whether a notification of the given type was
	// already created for the booking. Used to keep the reminder job
	// idempotent.
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID, notificationType string) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a notification repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, notification *Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.ErrNotFound.WithDetails("Notification not found")
		}
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]Notification, int64, error) {
	var notifications []Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *gormRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Notification not found")
	}
	return nil
}

func (r *gormRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID, notificationType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("booking_id = ? AND type = ?", bookingID, notificationType).
		Count(&count).Error
	return count > 0, err
}
