// File: internal/payment/repository.go
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
)

// Repository defines persistence operations for payments.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByReference(ctx context.Context, reference string) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	List(ctx context.Context, status string, page, pageSize int) ([]Payment, int64, error)
	// SetResult updates the payment and its booking's payment state in one
	// transaction.
	SetResult(ctx context.Context, paymentID, bookingID uuid.UUID, status string, paidAt *time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a payment repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Payment not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindByReference(ctx context.Context, reference string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Payment not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) Update(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *gormRepository) List(ctx context.Context, status string, page, pageSize int) ([]Payment, int64, error) {
	var payments []Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *gormRepository) SetResult(ctx context.Context, paymentID, bookingID uuid.UUID, status string, paidAt *time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{"status": status}
		if paidAt != nil {
			fields["paid_at"] = *paidAt
		}
		if err := tx.Model(&Payment{}).Where("id = ?", paymentID).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Model(&booking.Booking{}).
			Where("id = ?", bookingID).
			Update("payment_status", status).Error
	})
}
