// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/mail"
	"shortstay_backend/internal/platform/crypto"
	"shortstay_backend/internal/shared"
	"shortstay_backend/internal/user"
)

// Service defines registration, verification, and session operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*user.Response, error)
	RequestCode(ctx context.Context, req RequestCodeRequest) error
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*user.Response, error)
}

// ServiceImplementation implements the auth Service.
type ServiceImplementation struct {
	codeRepo     Repository
	userRepo     user.Repository
	userService  user.Service
	tokenService shared.TokenService
	mailer       mail.Mailer
	cfg          *config.Config
	logger       *zap.Logger
}

// NewService creates an auth service.
func NewService(
	codeRepo Repository,
	userRepo user.Repository,
	userService user.Service,
	tokenService shared.TokenService,
	mailer mail.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		codeRepo:     codeRepo,
		userRepo:     userRepo,
		userService:  userService,
		tokenService: tokenService,
		mailer:       mailer,
		cfg:          cfg,
		logger:       logger.Named("auth_service"),
	}
}

// Register creates an unverified account and emails a verification code.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*user.Response, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("An account with this email already exists")
	}

	hash, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create account")
	}

	u := &user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         common.RoleUser,
		KYCStatus:    user.KYCStatusNone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create account")
	}

	if err := s.issueCode(ctx, u.Email); err != nil {
		// The account exists; the client can request a fresh code.
		s.logger.Warn("Failed to issue verification code after registration", zap.String("email", u.Email), zap.Error(err))
	}

	return s.userService.GetProfile(ctx, u.ID)
}

// RequestCode issues a fresh code, invalidating any outstanding ones. The
// response does not reveal whether the email is registered.
func (s *ServiceImplementation) RequestCode(ctx context.Context, req RequestCodeRequest) error {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug("Verification code requested for unknown email", zap.String("email", req.Email))
			return nil
		}
		return err
	}
	return s.issueCode(ctx, req.Email)
}

func (s *ServiceImplementation) issueCode(ctx context.Context, email string) error {
	now := time.Now().UTC()
	if err := s.codeRepo.InvalidateActive(ctx, email, PurposeEmailVerification, now); err != nil {
		return err
	}

	codeValue, err := crypto.GenerateNumericCode(s.cfg.OTPLength)
	if err != nil {
		return err
	}

	code := &VerificationCode{
		Email:     email,
		Code:      codeValue,
		Purpose:   PurposeEmailVerification,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
	}
	if err := s.codeRepo.Create(ctx, code); err != nil {
		return err
	}

	ttlMinutes := int(s.cfg.OTPTTL.Minutes())
	if err := s.mailer.SendVerificationCode(email, codeValue, ttlMinutes); err != nil {
		s.logger.Error("Failed to email verification code", zap.String("email", email), zap.Error(err))
		return common.ErrServiceUnavailable.WithDetails("Could not send verification email")
	}
	return nil
}

// VerifyCode consumes a code and returns a session for the verified account.
func (s *ServiceImplementation) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrBadRequest.WithDetails("Invalid verification code")
		}
		return nil, err
	}

	code, err := s.codeRepo.FindActive(ctx, req.Email, PurposeEmailVerification)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrBadRequest.WithDetails("Invalid verification code")
		}
		return nil, err
	}

	now := time.Now().UTC()
	if code.IsExpired(now) {
		return nil, common.ErrBadRequest.WithDetails("Verification code has expired")
	}
	if code.Code != req.Code {
		return nil, common.ErrBadRequest.WithDetails("Invalid verification code")
	}

	if err := s.codeRepo.MarkConsumed(ctx, code, now); err != nil {
		return nil, err
	}

	if !u.IsEmailVerified() {
		if err := s.userRepo.UpdateFields(ctx, u.ID, map[string]interface{}{"email_verified_at": now}); err != nil {
			return nil, err
		}
		u.EmailVerifiedAt = &now
	}

	return s.buildAuthResponse(ctx, u)
}

// Login authenticates with email and password. Unverified accounts are
// rejected the same way as bad credentials.
func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password")
		}
		return nil, err
	}

	if !common.CheckPasswordHash(req.Password, u.PasswordHash) {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password")
	}
	if !u.IsEmailVerified() {
		return nil, common.ErrUnauthorized.WithDetails("Email address is not verified")
	}
	if !u.IsActive {
		return nil, common.ErrForbidden.WithDetails("This account has been deactivated")
	}

	return s.buildAuthResponse(ctx, u)
}

// Refresh validates a refresh token and issues a new token pair.
func (s *ServiceImplementation) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.tokenService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid or expired refresh token")
	}

	u, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Account no longer exists")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, common.ErrForbidden.WithDetails("This account has been deactivated")
	}

	return s.buildAuthResponse(ctx, u)
}

func (s *ServiceImplementation) Me(ctx context.Context, userID uuid.UUID) (*user.Response, error) {
	return s.userService.GetProfile(ctx, userID)
}

func (s *ServiceImplementation) buildAuthResponse(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, accessExp, err := s.tokenService.GenerateAccessToken(u)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create session")
	}
	refreshToken, refreshExp, err := s.tokenService.GenerateRefreshToken(u)
	if err != nil {
		s.logger.Error("Failed to generate refresh token", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create session")
	}

	profile, err := s.userService.GetProfile(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: *profile,
		Tokens: TokenPair{
			AccessToken:           accessToken,
			AccessTokenExpiresAt:  accessExp,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresAt: refreshExp,
		},
	}, nil
}
