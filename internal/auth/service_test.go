// File: internal/auth/service_test.go
package auth

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/config"
	"shortstay_backend/internal/user"
)

// recordingMailer captures the last verification code instead of sending it.
type recordingMailer struct {
	lastEmail string
	lastCode  string
	sent      int
}

func (m *recordingMailer) SendVerificationCode(toEmail, code string, _ int) error {
	m.lastEmail = toEmail
	m.lastCode = code
	m.sent++
	return nil
}

func (m *recordingMailer) SendBookingStatusUpdate(string, string, string) error { return nil }

// noopStorage satisfies the user service's storage dependency.
type noopStorage struct{}

func (noopStorage) Save(context.Context, string, *multipart.FileHeader) (string, error) {
	return "", nil
}
func (noopStorage) Delete(context.Context, string) error { return nil }
func (noopStorage) PublicURL(string) string              { return "" }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &VerificationCode{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTIssuer:       "shortstay-test",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		OTPLength:       6,
		OTPTTL:          10 * time.Minute,
	}
}

type fixture struct {
	svc    Service
	db     *gorm.DB
	mailer *recordingMailer
	cfg    *config.Config
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	cfg := testConfig()
	mailer := &recordingMailer{}

	userRepo := user.NewGORMRepository(db)
	userService := user.NewService(userRepo, noopStorage{}, log)
	svc := NewService(
		NewGORMRepository(db),
		userRepo,
		userService,
		NewJWTTokenService(cfg),
		mailer,
		cfg,
		log,
	)
	return &fixture{svc: svc, db: db, mailer: mailer, cfg: cfg}
}

func registerRequest(email string) RegisterRequest {
	return RegisterRequest{
		FirstName: "Nora",
		LastName:  "Guest",
		Email:     email,
		Password:  "sup3r-secret",
	}
}

func TestRegisterEmailsVerificationCode(t *testing.T) {
	f := setupFixture(t)

	resp, err := f.svc.Register(context.Background(), registerRequest("nora@example.com"))
	require.NoError(t, err)
	assert.False(t, resp.EmailVerified)
	assert.Equal(t, common.RoleUser, resp.Role)

	assert.Equal(t, "nora@example.com", f.mailer.lastEmail)
	assert.Len(t, f.mailer.lastCode, 6)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("dup@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerRequest("dup@example.com"))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestVerifyCodeFlow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("flow@example.com"))
	require.NoError(t, err)
	code := f.mailer.lastCode

	resp, err := f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "flow@example.com", Code: code})
	require.NoError(t, err)
	assert.True(t, resp.User.EmailVerified)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	// Single use: the same code cannot be consumed twice.
	_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "flow@example.com", Code: code})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("wrong@example.com"))
	require.NoError(t, err)

	_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "wrong@example.com", Code: "000000"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestVerifyCodeRejectsExpiredCode(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("late@example.com"))
	require.NoError(t, err)

	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, f.db.Model(&VerificationCode{}).
		Where("email = ?", "late@example.com").
		Update("expires_at", expired).Error)

	_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "late@example.com", Code: f.mailer.lastCode})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestRequestCodeInvalidatesPriorCode(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("fresh@example.com"))
	require.NoError(t, err)
	oldCode := f.mailer.lastCode

	require.NoError(t, f.svc.RequestCode(ctx, RequestCodeRequest{Email: "fresh@example.com"}))
	newCode := f.mailer.lastCode

	if oldCode != newCode {
		_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "fresh@example.com", Code: oldCode})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	}

	_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "fresh@example.com", Code: newCode})
	assert.NoError(t, err)
}

func TestRequestCodeForUnknownEmailDoesNotLeak(t *testing.T) {
	f := setupFixture(t)

	err := f.svc.RequestCode(context.Background(), RequestCodeRequest{Email: "ghost@example.com"})
	assert.NoError(t, err)
	assert.Zero(t, f.mailer.sent)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("pending@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, LoginRequest{Email: "pending@example.com", Password: "sup3r-secret"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "pending@example.com", Code: f.mailer.lastCode})
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, LoginRequest{Email: "pending@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)

	_, err = f.svc.Login(ctx, LoginRequest{Email: "pending@example.com", Password: "bad-password"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("refresh@example.com"))
	require.NoError(t, err)
	verified, err := f.svc.VerifyCode(ctx, VerifyCodeRequest{Email: "refresh@example.com", Code: f.mailer.lastCode})
	require.NoError(t, err)

	resp, err := f.svc.Refresh(ctx, RefreshRequest{RefreshToken: verified.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)

	_, err = f.svc.Refresh(ctx, RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
