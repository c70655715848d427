// File: internal/user/model.go
package user

import (
	"time"

	"github.com/google/uuid"

	"shortstay_backend/internal/common"
)

// KYC verification states.
const (
	KYCStatusNone     = "NONE"
	KYCStatusPending  = "PENDING"
	KYCStatusVerified = "VERIFIED"
	KYCStatusRejected = "REJECTED"
)

// User represents an account on the platform.
type User struct {
	common.BaseModel
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100;not null" json:"last_name"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone           string     `gorm:"size:32" json:"phone,omitempty"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	Role            string     `gorm:"size:16;not null;default:'USER';index" json:"role"`
	EmailVerifiedAt *time.Time `gorm:"" json:"email_verified_at,omitempty"`
	KYCStatus       string     `gorm:"size:16;not null;default:'NONE';index" json:"kyc_status"`
	KYCDocFrontPath string     `gorm:"size:512" json:"-"`
	KYCDocBackPath  string     `gorm:"size:512" json:"-"`
	AvatarPath      string     `gorm:"size:512" json:"-"`
	Bio             string     `gorm:"type:text" json:"bio,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// GetID implements shared.UserDataForToken.
func (u *User) GetID() uuid.UUID { return u.ID }

// GetEmail implements shared.UserDataForToken.
func (u *User) GetEmail() string { return u.Email }

// GetRole implements shared.UserDataForToken.
func (u *User) GetRole() string { return u.Role }

// IsEmailVerified reports whether the account completed email verification.
func (u *User) IsEmailVerified() bool { return u.EmailVerifiedAt != nil }

// --- DTOs ---

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=2000"`
}

// Response is the public representation of a user.
type Response struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role"`
	EmailVerified   bool       `json:"email_verified"`
	KYCStatus       string     `json:"kyc_status"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
}

// ToResponse converts a User to its public representation. avatarURL is the
// resolved public URL for the stored avatar path, if any.
func (u *User) ToResponse(avatarURL string) Response {
	return Response{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role,
		EmailVerified:   u.IsEmailVerified(),
		KYCStatus:       u.KYCStatus,
		AvatarURL:       avatarURL,
		Bio:             u.Bio,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
		EmailVerifiedAt: u.EmailVerifiedAt,
	}
}
