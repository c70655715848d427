// File: internal/availability/model.go
package availability

import (
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
)

// AvailabilityBlock marks a date range on a property as unavailable for
// booking. End date is exclusive.
type AvailabilityBlock struct {
	common.BaseModel
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	Reason     string    `gorm:"size:255" json:"reason,omitempty"`
}

// TableName specifies the table name for the AvailabilityBlock model.
func (AvailabilityBlock) TableName() string {
	return "availability_blocks"
}

// CreateRequest blocks a date range. Dates use YYYY-MM-DD.
type CreateRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"omitempty,max=255"`
}
