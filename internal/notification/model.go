// File: internal/notification/model.go
package notification

import (
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
)

// Notification types.
const (
	TypeBookingCreated   = "BOOKING_CREATED"
	TypeBookingApproved  = "BOOKING_APPROVED"
	TypeBookingRejected  = "BOOKING_REJECTED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypePaymentSuccess   = "PAYMENT_SUCCESS"
	TypeReviewReceived   = "REVIEW_RECEIVED"
	TypeKYCDecision      = "KYC_DECISION"
	TypeCheckInReminder  = "CHECKIN_REMINDER"
)

// Notification is an in-app message for a user.
type Notification struct {
	common.BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string     `gorm:"size:32;not null;index" json:"type"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Body       string     `gorm:"type:text" json:"body"`
	BookingID  *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	PropertyID *uuid.UUID `gorm:"type:uuid" json:"property_id,omitempty"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool { return n.ReadAt != nil }
