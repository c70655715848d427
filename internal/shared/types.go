// File: internal/shared/types.go

// Package shared holds types used across feature packages where a direct
// import would create a dependency cycle (auth <-> middleware <-> user).
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims embedded in access and refresh tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService abstracts creation and validation of signed tokens.
type TokenService interface {
	GenerateAccessToken(user UserDataForToken) (string, time.Time, error)
	GenerateRefreshToken(user UserDataForToken) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserDataForToken is the minimal user view needed to mint a token.
type UserDataForToken interface {
	GetID() uuid.UUID
	GetEmail() string
	GetRole() string
}
