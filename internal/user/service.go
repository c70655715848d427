// File: internal/user/service.go
package user

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/filestorage"
)

// Service defines profile operations for the authenticated user.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Response, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*Response, error)
	SubmitKYC(ctx context.Context, userID uuid.UUID, front, back *multipart.FileHeader) (*Response, error)
}

// ServiceImplementation implements the user Service.
type ServiceImplementation struct {
	repo    Repository
	storage filestorage.Service
	logger  *zap.Logger
}

// NewService creates a user service.
func NewService(repo Repository, storage filestorage.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{
		repo:    repo,
		storage: storage,
		logger:  logger.Named("user_service"),
	}
}

func (s *ServiceImplementation) GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse(s.storage.PublicURL(u.AvatarPath))
	return &resp, nil
}

func (s *ServiceImplementation) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Response, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Only fields present in the request are written.
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, u.ID, fields); err != nil {
			s.logger.Error("Failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
			return nil, common.ErrInternalServer.WithDetails("Failed to update profile")
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *ServiceImplementation) UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*Response, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Save(ctx, filestorage.SubDirAvatars, file)
	if err != nil {
		return nil, err
	}

	oldPath := u.AvatarPath
	if err := s.repo.UpdateFields(ctx, u.ID, map[string]interface{}{"avatar_path": path}); err != nil {
		s.storage.Delete(ctx, path)
		return nil, common.ErrInternalServer.WithDetails("Failed to save avatar")
	}
	if oldPath != "" {
		if delErr := s.storage.Delete(ctx, oldPath); delErr != nil {
			s.logger.Warn("Failed to delete previous avatar", zap.String("path", oldPath), zap.Error(delErr))
		}
	}

	return s.GetProfile(ctx, userID)
}

// SubmitKYC stores both document sides and moves the account back to PENDING
// review, regardless of any prior decision.
func (s *ServiceImplementation) SubmitKYC(ctx context.Context, userID uuid.UUID, front, back *multipart.FileHeader) (*Response, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if front == nil || back == nil {
		return nil, common.ErrBadRequest.WithDetails("Both document_front and document_back files are required")
	}

	frontPath, err := s.storage.Save(ctx, filestorage.SubDirKYC, front)
	if err != nil {
		return nil, err
	}
	backPath, err := s.storage.Save(ctx, filestorage.SubDirKYC, back)
	if err != nil {
		s.storage.Delete(ctx, frontPath)
		return nil, err
	}

	fields := map[string]interface{}{
		"kyc_doc_front_path": frontPath,
		"kyc_doc_back_path":  backPath,
		"kyc_status":         KYCStatusPending,
	}
	if err := s.repo.UpdateFields(ctx, u.ID, fields); err != nil {
		s.storage.Delete(ctx, frontPath)
		s.storage.Delete(ctx, backPath)
		return nil, common.ErrInternalServer.WithDetails("Failed to submit KYC documents")
	}

	s.logger.Info("KYC documents submitted", zap.String("user_id", userID.String()))
	return s.GetProfile(ctx, userID)
}
