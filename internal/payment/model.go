// File: internal/payment/model.go
package payment

import (
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
)

// Payment states mirror booking payment states.
const (
	StatusPending  = "PENDING"
	StatusSuccess  = "SUCCESS"
	StatusFailed   = "FAILED"
	StatusRefunded = "REFUNDED"
)

// ValidStatuses are the payment states accepted on admin override.
var ValidStatuses = map[string]bool{
	StatusPending:  true,
	StatusSuccess:  true,
	StatusFailed:   true,
	StatusRefunded: true,
}

// Payment records one checkout attempt against a booking.
type Payment struct {
	common.BaseModel
	BookingID   uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Provider    string    `gorm:"size:32;not null" json:"provider"`
	Reference   string    `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	OrderCode   int64     `gorm:"not null" json:"order_code"`
	CheckoutURL string    `gorm:"size:1024" json:"checkout_url,omitempty"`
	Status      string    `gorm:"size:16;not null;default:'PENDING';index" json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// TableName specifies the table name for the Payment model.
func (Payment) TableName() string {
	return "payments"
}

// --- DTOs ---

// InitializeRequest starts a checkout for a booking.
type InitializeRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
}

// InitializeResponse returns the redirect URL for the provider checkout page.
type InitializeResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	Reference   string    `json:"reference"`
	CheckoutURL string    `json:"checkout_url"`
	Amount      float64   `json:"amount"`
}

// VerifyResponse reports the provider-confirmed state of a payment.
type VerifyResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
}
