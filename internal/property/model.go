// File: internal/property/model.go
package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shortstay_backend/internal/common"
)

// Property listing states.
const (
	StatusDraft    = "DRAFT"
	StatusListed   = "LISTED"
	StatusUnlisted = "UNLISTED"
)

// ValidStatuses are the property states accepted on update.
var ValidStatuses = map[string]bool{
	StatusDraft:    true,
	StatusListed:   true,
	StatusUnlisted: true,
}

// Property represents a short-let listing owned by a host.
type Property struct {
	common.BaseModel
	HostID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"host_id"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Slug           string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	City           string         `gorm:"size:100;not null;index" json:"city"`
	Address        string         `gorm:"size:500" json:"address"`
	NightlyPrice   float64        `gorm:"not null" json:"nightly_price"`
	MaxGuests      int            `gorm:"not null;default:1" json:"max_guests"`
	Bedrooms       int            `gorm:"not null;default:1" json:"bedrooms"`
	Bathrooms      int            `gorm:"not null;default:1" json:"bathrooms"`
	Photos         pq.StringArray `gorm:"type:text[]" json:"photos"`
	Amenities      pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Status         string         `gorm:"size:16;not null;default:'DRAFT';index" json:"status"`
	AvgRating      float64        `gorm:"not null;default:0" json:"avg_rating"`
	ReviewsCount   int            `gorm:"not null;default:0" json:"reviews_count"`
	FavoritesCount int            `gorm:"not null;default:0" json:"favorites_count"`
}

// TableName specifies the table name for the Property model.
func (Property) TableName() string {
	return "properties"
}

// IsListed reports whether the property is visible and bookable.
func (p *Property) IsListed() bool { return p.Status == StatusListed }

// --- DTOs ---

// CreateRequest creates a new property in DRAFT state.
type CreateRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Description  string   `json:"description" binding:"omitempty,max=10000"`
	City         string   `json:"city" binding:"required,min=1,max=100"`
	Address      string   `json:"address" binding:"omitempty,max=500"`
	NightlyPrice float64  `json:"nightly_price" binding:"required,gt=0"`
	MaxGuests    int      `json:"max_guests" binding:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Photos       []string `json:"photos" binding:"omitempty,max=20"`
	Amenities    []string `json:"amenities" binding:"omitempty,max=50"`
}

// UpdateRequest carries a partial property update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Title        *string   `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description  *string   `json:"description,omitempty" binding:"omitempty,max=10000"`
	City         *string   `json:"city,omitempty" binding:"omitempty,min=1,max=100"`
	Address      *string   `json:"address,omitempty" binding:"omitempty,max=500"`
	NightlyPrice *float64  `json:"nightly_price,omitempty" binding:"omitempty,gt=0"`
	MaxGuests    *int      `json:"max_guests,omitempty" binding:"omitempty,gt=0"`
	Bedrooms     *int      `json:"bedrooms,omitempty" binding:"omitempty,gte=0"`
	Bathrooms    *int      `json:"bathrooms,omitempty" binding:"omitempty,gte=0"`
	Photos       *[]string `json:"photos,omitempty" binding:"omitempty,max=20"`
	Amenities    *[]string `json:"amenities,omitempty" binding:"omitempty,max=50"`
	Status       *string   `json:"status,omitempty" binding:"omitempty,oneof=DRAFT LISTED UNLISTED"`
}

// SearchParams filters the public property listing.
type SearchParams struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Guests   int
	Query    string
	Page     int
	PageSize int
}

// Response is the public representation of a property.
type Response struct {
	ID             uuid.UUID `json:"id"`
	HostID         uuid.UUID `json:"host_id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	City           string    `json:"city"`
	Address        string    `json:"address,omitempty"`
	NightlyPrice   float64   `json:"nightly_price"`
	MaxGuests      int       `json:"max_guests"`
	Bedrooms       int       `json:"bedrooms"`
	Bathrooms      int       `json:"bathrooms"`
	Photos         []string  `json:"photos"`
	Amenities      []string  `json:"amenities"`
	Status         string    `json:"status"`
	AvgRating      float64   `json:"avg_rating"`
	ReviewsCount   int       `json:"reviews_count"`
	FavoritesCount int       `json:"favorites_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToResponse converts a Property to its public representation.
func (p *Property) ToResponse() Response {
	return Response{
		ID:             p.ID,
		HostID:         p.HostID,
		Title:          p.Title,
		Slug:           p.Slug,
		Description:    p.Description,
		City:           p.City,
		Address:        p.Address,
		NightlyPrice:   p.NightlyPrice,
		MaxGuests:      p.MaxGuests,
		Bedrooms:       p.Bedrooms,
		Bathrooms:      p.Bathrooms,
		Photos:         p.Photos,
		Amenities:      p.Amenities,
		Status:         p.Status,
		AvgRating:      p.AvgRating,
		ReviewsCount:   p.ReviewsCount,
		FavoritesCount: p.FavoritesCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToResponseList converts a slice of properties.
func ToResponseList(properties []Property) []Response {
	out := make([]Response, 0, len(properties))
	for i := range properties {
		out = append(out, properties[i].ToResponse())
	}
	return out
}
