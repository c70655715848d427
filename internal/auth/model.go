// File: internal/auth/model.go
package auth

import (
	"time"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/user"
)

// Verification code purposes.
const (
	PurposeEmailVerification = "EMAIL_VERIFICATION"
)

// VerificationCode is a short-lived, single-use email code.
type VerificationCode struct {
	common.BaseModel
	Email      string     `gorm:"size:255;not null;index" json:"email"`
	Code       string     `gorm:"size:16;not null" json:"-"`
	Purpose    string     `gorm:"size:32;not null;default:'EMAIL_VERIFICATION'" json:"purpose"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

// TableName specifies the table name for the VerificationCode model.
func (VerificationCode) TableName() string {
	return "verification_codes"
}

// IsConsumed reports whether the code has already been used.
func (v *VerificationCode) IsConsumed() bool { return v.ConsumedAt != nil }

// IsExpired reports whether the code is past its expiry at the given time.
func (v *VerificationCode) IsExpired(now time.Time) bool { return now.After(v.ExpiresAt) }

// --- DTOs ---

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestCodeRequest asks for a fresh verification code.
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyCodeRequest consumes a verification code.
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPair carries a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// AuthResponse is returned on successful verification, login, and refresh.
type AuthResponse struct {
	User   user.Response `json:"user"`
	Tokens TokenPair     `json:"tokens"`
}
