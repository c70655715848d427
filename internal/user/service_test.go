// File: internal/user/service_test.go
package user

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shortstay_backend/internal/common"
)

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeStorage) Save(_ context.Context, subDir string, fh *multipart.FileHeader) (string, error) {
	path := subDir + "/" + uuid.NewString() + ".jpg"
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return "http://cdn.example.com/" + path
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *User {
	t.Helper()
	u := &User{
		FirstName:    "Maya",
		LastName:     "Visser",
		Email:        "maya-" + uuid.NewString()[:8] + "@example.com",
		Phone:        "+31600000000",
		PasswordHash: "x",
		Role:         common.RoleUser,
		KYCStatus:    KYCStatusNone,
		Bio:          "Original bio",
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUpdateProfileOnlyTouchesPresentFields(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	svc := NewService(NewGORMRepository(db), storage, zap.NewNop())
	u := seedUser(t, db)

	newName := "Maja"
	resp, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileRequest{
		FirstName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maja", resp.FirstName)
	assert.Equal(t, "Visser", resp.LastName)
	assert.Equal(t, "+31600000000", resp.Phone)
	assert.Equal(t, "Original bio", resp.Bio)
}

func TestUpdateProfileAllowsClearingWithEmptyString(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGORMRepository(db), &fakeStorage{}, zap.NewNop())
	u := seedUser(t, db)

	empty := ""
	resp, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileRequest{Bio: &empty})
	require.NoError(t, err)
	assert.Empty(t, resp.Bio)
	assert.Equal(t, "Maya", resp.FirstName)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGORMRepository(db), &fakeStorage{}, zap.NewNop())

	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileRequest{FirstName: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmitKYCSetsPendingAndStoresBothSides(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	svc := NewService(NewGORMRepository(db), storage, zap.NewNop())
	u := seedUser(t, db)

	front := &multipart.FileHeader{Filename: "front.jpg"}
	back := &multipart.FileHeader{Filename: "back.jpg"}

	resp, err := svc.SubmitKYC(context.Background(), u.ID, front, back)
	require.NoError(t, err)
	assert.Equal(t, KYCStatusPending, resp.KYCStatus)
	assert.Len(t, storage.saved, 2)

	var fresh User
	require.NoError(t, db.First(&fresh, "id = ?", u.ID).Error)
	assert.NotEmpty(t, fresh.KYCDocFrontPath)
	assert.NotEmpty(t, fresh.KYCDocBackPath)
}

func TestSubmitKYCRequiresBothDocuments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGORMRepository(db), &fakeStorage{}, zap.NewNop())
	u := seedUser(t, db)

	_, err := svc.SubmitKYC(context.Background(), u.ID, &multipart.FileHeader{Filename: "front.jpg"}, nil)
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestUploadAvatarReplacesPrevious(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	svc := NewService(NewGORMRepository(db), storage, zap.NewNop())
	u := seedUser(t, db)
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, u.ID, &multipart.FileHeader{Filename: "one.jpg"})
	require.NoError(t, err)
	firstPath := storage.saved[0]

	resp, err := svc.UploadAvatar(ctx, u.ID, &multipart.FileHeader{Filename: "two.jpg"})
	require.NoError(t, err)

	assert.Contains(t, storage.deleted, firstPath)
	assert.Contains(t, resp.AvatarURL, "http://cdn.example.com/")
}
