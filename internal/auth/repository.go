// File: internal/auth/repository.go
package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shortstay_backend/internal/common"
)

// Repository defines persistence operations for verification codes.
type Repository interface {
	Create(ctx context.Context, code *VerificationCode) error
	// FindActive returns the most recent unconsumed code for the email and
	// purpose, expired or not.
	FindActive(ctx context.Context, email, purpose string) (*VerificationCode, error)
	MarkConsumed(ctx context.Context, code *VerificationCode, at time.Time) error
	// InvalidateActive consumes all outstanding codes for the email and
	// purpose so only the newest issued code can be used.
	InvalidateActive(ctx context.Context, email, purpose string, at time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a verification code repository backed by GORM.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, code *VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *gormRepository) FindActive(ctx context.Context, email, purpose string) (*VerificationCode, error) {
	var code VerificationCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ? AND consumed_at IS NULL", email, purpose).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No active verification code found")
		}
		return nil, err
	}
	return &code, nil
}

func (r *gormRepository) MarkConsumed(ctx context.Context, code *VerificationCode, at time.Time) error {
	code.ConsumedAt = &at
	return r.db.WithContext(ctx).Model(code).Update("consumed_at", at).Error
}

func (r *gormRepository) InvalidateActive(ctx context.Context, email, purpose string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&VerificationCode{}).
		Where("email = ? AND purpose = ? AND consumed_at IS NULL", email, purpose).
		Update("consumed_at", at).Error
}
