// File: internal/favorite/model.go
package favorite

import (
	"github.com/google/uuid"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Favorite marks a property saved by a user. One row per (user, property).
type Favorite struct {
	common.BaseModel
	UserID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	PropertyID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property;index" json:"property_id"`
	Property   *property.Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}

// ToggleResult reports the outcome of a favorite/unfavorite operation.
type ToggleResult struct {
	PropertyID     uuid.UUID `json:"property_id"`
	Favorited      bool      `json:"favorited"`
	Changed        bool      `json:"changed"`
	FavoritesCount int       `json:"favorites_count"`
}

// Response is a favorite with its property preloaded.
type Response struct {
	ID       uuid.UUID         `json:"id"`
	Property property.Response `json:"property"`
}
