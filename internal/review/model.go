// File: internal/review/model.go
package review

import (
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
)

// Review is a guest's rating of a completed, paid booking. One review per
// booking.
type Review struct {
	common.BaseModel
	BookingID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Rating     int        `gorm:"not null" json:"rating"`
	Comment    string     `gorm:"type:text" json:"comment,omitempty"`
	HostReply  string     `gorm:"type:text" json:"host_reply,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
}

// TableName specifies the table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}

// CreateRequest submits a review for a booking.
type CreateRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" binding:"omitempty,max=5000"`
}

// ReplyRequest adds the host's reply to a review.
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,min=1,max=5000"`
}
