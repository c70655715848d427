// File: internal/property/repository.go
package property

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
)

// Repository defines persistence operations for properties.
type Repository interface {
	Create(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindBySlug(ctx context.Context, slug string) (*Property, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params SearchParams) ([]Property, int64, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, page, pageSize int) ([]Property, int64, error)
	CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a property repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, property *Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var p Property
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Property not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Property, error) {
	var p Property
	err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Property not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) Update(ctx context.Context, property *Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Property not found")
	}
	return nil
}

func (r *gormRepository) Search(ctx context.Context, params SearchParams) ([]Property, int64, error) {
	var properties []Property
	var total int64

	query := r.db.WithContext(ctx).Model(&Property{}).Where("status = ?", StatusListed)
	if params.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", params.City)
	}
	if params.MinPrice > 0 {
		query = query.Where("nightly_price >= ?", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		query = query.Where("nightly_price <= ?", params.MaxPrice)
	}
	if params.Guests > 0 {
		query = query.Where("max_guests >= ?", params.Guests)
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: params.Page, PageSize: params.PageSize}
	err := query.Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *gormRepository) ListByHost(ctx context.Context, hostID uuid.UUID, page, pageSize int) ([]Property, int64, error) {
	var properties []Property
	var total int64

	query := r.db.WithContext(ctx).Model(&Property{}).Where("host_id = ?", hostID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *gormRepository) CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Property{}).Where("host_id = ?", hostID).Count(&count).Error
	return count, err
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Property{}).Count(&count).Error
	return count, err
}

func (r *gormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Property{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
