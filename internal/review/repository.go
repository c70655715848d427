// File: internal/review/repository.go
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Repository defines persistence operations for reviews.
type Repository interface {
	// CreateWithAggregates inserts the review and recomputes the property's
	// avg_rating and reviews_count from a full aggregate, in one transaction.
	CreateWithAggregates(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	Update(ctx context.Context, review *Review) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID, page, pageSize int) ([]Review, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a review repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateWithAggregates(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// Aggregates come from a full recount, never from incremental math,
		// so a drifted counter heals on the next review.
		var agg struct {
			Count int64
			Avg   float64
		}
		err := tx.Model(&Review{}).
			Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as avg").
			Where("property_id = ?", review.PropertyID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		return tx.Model(&property.Property{}).
			Where("id = ?", review.PropertyID).
			Updates(map[string]interface{}{
				"avg_rating":    agg.Avg,
				"reviews_count": agg.Count,
			}).Error
	})
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var rev Review
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Review not found")
		}
		return nil, err
	}
	return &rev, nil
}

func (r *gormRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error) {
	var rev Review
	err := r.db.WithContext(ctx).First(&rev, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Review not found")
		}
		return nil, err
	}
	return &rev, nil
}

func (r *gormRepository) Update(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *gormRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, page, pageSize int) ([]Review, int64, error) {
	var reviews []Review
	var total int64

	query := r.db.WithContext(ctx).Model(&Review{}).Where("property_id = ?", propertyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
