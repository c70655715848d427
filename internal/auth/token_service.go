// File: internal/auth/token_service.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shortstay_backend/internal/config"
	"shortstay_backend/internal/shared"
)

type jwtTokenService struct {
	secret          []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTTokenService creates a TokenService signing HS256 tokens.
func NewJWTTokenService(cfg *config.Config) shared.TokenService {
	return &jwtTokenService{
		secret:          []byte(cfg.JWTSecret),
		issuer:          cfg.JWTIssuer,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

func (s *jwtTokenService) GenerateAccessToken(u shared.UserDataForToken) (string, time.Time, error) {
	return s.generate(u, s.accessTokenTTL)
}

func (s *jwtTokenService) GenerateRefreshToken(u shared.UserDataForToken) (string, time.Time, error) {
	return s.generate(u, s.refreshTokenTTL)
}

func (s *jwtTokenService) generate(u shared.UserDataForToken, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := shared.Claims{
		UserID: u.GetID(),
		Email:  u.GetEmail(),
		Role:   u.GetRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   u.GetID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtTokenService) ValidateToken(tokenString string) (*shared.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &shared.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*shared.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
