// File: internal/availability/repository.go
package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
)

// Repository defines persistence operations for availability blocks.
type Repository interface {
	Create(ctx context.Context, block *AvailabilityBlock) error
	FindByID(ctx context.Context, id uuid.UUID) (*AvailabilityBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]AvailabilityBlock, error)
	// HasOverlap reports whether any block on the property intersects
	// [start, end). excludeID skips a block, for updates.
	HasOverlap(ctx context.Context, propertyID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates an availability repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, block *AvailabilityBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*AvailabilityBlock, error) {
	var block AvailabilityBlock
	err := r.db.WithContext(ctx).First(&block, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.ErrNotFound.WithDetails("Availability block not found")
		}
		return nil, err
	}
	return &block, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&AvailabilityBlock{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Availability block not found")
	}
	return nil
}

func (r *gormRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]AvailabilityBlock, error) {
	var blocks []AvailabilityBlock
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("start_date ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *gormRepository) HasOverlap(ctx context.Context, propertyID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&AvailabilityBlock{}).
		Where("property_id = ?", propertyID).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
