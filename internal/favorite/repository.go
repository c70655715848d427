// File: internal/favorite/repository.go
package favorite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Repository defines persistence operations for favorites.
type Repository interface {
	// Favorite adds the property to the user's favorites inside one
	// transaction: no-op when already present, otherwise insert plus counter
	// increment. Returns whether a row was created and the resulting count.
	Favorite(ctx context.Context, userID, propertyID uuid.UUID) (created bool, count int, err error)
	// Unfavorite removes the property from the user's favorites inside one
	// transaction: no-op when absent, otherwise delete plus counter decrement
	// clamped at zero. Returns whether a row was removed and the resulting
	// count.
	Unfavorite(ctx context.Context, userID, propertyID uuid.UUID) (removed bool, count int, err error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Favorite, int64, error)
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a favorite repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Favorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, int, error) {
	var created bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop property.Property
		if err := tx.First(&prop, "id = ?", propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return common.ErrNotFound.WithDetails("Property not found")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&Favorite{}).
			Where("user_id = ? AND property_id = ?", userID, propertyID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			count = prop.FavoritesCount
			return nil
		}

		fav := &Favorite{UserID: userID, PropertyID: propertyID}
		if err := tx.Create(fav).Error; err != nil {
			return err
		}
		if err := tx.Model(&property.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error; err != nil {
			return err
		}

		created = true
		count = prop.FavoritesCount + 1
		return nil
	})
	return created, count, err
}

func (r *gormRepository) Unfavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, int, error) {
	var removed bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop property.Property
		if err := tx.First(&prop, "id = ?", propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return common.ErrNotFound.WithDetails("Property not found")
			}
			return err
		}

		result := tx.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			count = prop.FavoritesCount
			return nil
		}

		if err := tx.Model(&property.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - 1")).Error; err != nil {
			return err
		}
		// The counter never goes negative even if it was already out of sync.
		if err := tx.Model(&property.Property{}).
			Where("id = ? AND favorites_count < 0", propertyID).
			UpdateColumn("favorites_count", 0).Error; err != nil {
			return err
		}

		removed = true
		count = prop.FavoritesCount - 1
		if count < 0 {
			count = 0
		}
		return nil
	})
	return removed, count, err
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Favorite, int64, error) {
	var favorites []Favorite
	var total int64

	query := r.db.WithContext(ctx).Model(&Favorite{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.Preload("Property").
		Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *gormRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, err
}
