// File: internal/booking/model.go
package booking

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Booking lifecycle states.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// Payment states tracked on the booking.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusSuccess  = "SUCCESS"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// ValidPaymentStatuses are the payment states accepted on admin override.
var ValidPaymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusSuccess:  true,
	PaymentStatusFailed:   true,
	PaymentStatusRefunded: true,
}

// Booking represents a guest's stay request on a property.
type Booking struct {
	common.BaseModel
	PropertyID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"property_id"`
	GuestID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"guest_id"`
	HostID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"host_id"`
	CheckIn       time.Time          `gorm:"not null;index" json:"check_in"`
	CheckOut      time.Time          `gorm:"not null" json:"check_out"`
	Guests        int                `gorm:"not null" json:"guests"`
	Nights        int                `gorm:"not null" json:"nights"`
	TotalAmount   float64            `gorm:"not null" json:"total_amount"`
	FeesJSON      string             `gorm:"type:text" json:"-"`
	Status        string             `gorm:"size:16;not null;default:'PENDING';index" json:"status"`
	PaymentStatus string             `gorm:"size:16;not null;default:'PENDING';index" json:"payment_status"`
	Property      *property.Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName specifies the table name for the Booking model.
func (Booking) TableName() string {
	return "bookings"
}

// FeeBreakdown itemizes the booking total.
type FeeBreakdown struct {
	NightlySubtotal float64 `json:"nightly_subtotal"`
	CleaningFee     float64 `json:"cleaning_fee"`
	ServiceFee      float64 `json:"service_fee"`
	Total           float64 `json:"total"`
}

// SetFees stores the fee breakdown on the booking.
func (b *Booking) SetFees(fees FeeBreakdown) error {
	data, err := json.Marshal(fees)
	if err != nil {
		return err
	}
	b.FeesJSON = string(data)
	b.TotalAmount = fees.Total
	return nil
}

// Fees returns the stored fee breakdown, zero-valued when absent.
func (b *Booking) Fees() FeeBreakdown {
	var fees FeeBreakdown
	if b.FeesJSON != "" {
		_ = json.Unmarshal([]byte(b.FeesJSON), &fees)
	}
	return fees
}

// IsPaid reports whether the booking has been successfully paid.
func (b *Booking) IsPaid() bool { return b.PaymentStatus == PaymentStatusSuccess }

// --- DTOs ---

// CreateRequest requests a new booking. Dates use YYYY-MM-DD.
type CreateRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string    `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests     int       `json:"guests" binding:"required,gt=0"`
}

// Response is the public representation of a booking.
type Response struct {
	ID            uuid.UUID          `json:"id"`
	PropertyID    uuid.UUID          `json:"property_id"`
	GuestID       uuid.UUID          `json:"guest_id"`
	HostID        uuid.UUID          `json:"host_id"`
	CheckIn       time.Time          `json:"check_in"`
	CheckOut      time.Time          `json:"check_out"`
	Guests        int                `json:"guests"`
	Nights        int                `json:"nights"`
	TotalAmount   float64            `json:"total_amount"`
	Fees          FeeBreakdown       `json:"fees"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Property      *property.Response `json:"property,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ToResponse converts a Booking to its public representation.
func (b *Booking) ToResponse() Response {
	resp := Response{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		GuestID:       b.GuestID,
		HostID:        b.HostID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Nights:        b.Nights,
		TotalAmount:   b.TotalAmount,
		Fees:          b.Fees(),
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
	}
	if b.Property != nil {
		pr := b.Property.ToResponse()
		resp.Property = &pr
	}
	return resp
}

// ToResponseList converts a slice of bookings.
func ToResponseList(bookings []Booking) []Response {
	out := make([]Response, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].ToResponse())
	}
	return out
}

// ReminderSummary reports the outcome of one reminder batch run.
type ReminderSummary struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}
