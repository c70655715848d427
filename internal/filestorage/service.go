// File: internal/filestorage/service.go

// Package filestorage persists uploaded files on local disk.
package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/config"
)

// Known upload sub-directories.
const (
	SubDirAvatars  = "avatars"
	SubDirKYC      = "kyc"
	SubDirProperty = "properties"
)

// Service manages stored files and their public URLs.
type Service interface {
	// Save stores the uploaded file under the given sub-directory and returns
	// the relative path to use as a stable reference.
	Save(ctx context.Context, subDir string, fileHeader *multipart.FileHeader) (string, error)
	// Delete removes a previously stored file. Deleting a missing file is not
	// an error.
	Delete(ctx context.Context, relativePath string) error
	// PublicURL maps a stored relative path to its public URL.
	PublicURL(relativePath string) string
}

type localStorageService struct {
	basePath      string
	publicBaseURL string
	logger        *zap.Logger
}

// NewLocalStorageService creates a disk-backed storage service rooted at the
// configured upload path.
func NewLocalStorageService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	basePath, err := filepath.Abs(cfg.UploadStoragePath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload storage path: %w", err)
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload storage directory: %w", err)
	}
	return &localStorageService{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(cfg.UploadPublicBaseURL, "/"),
		logger:        logger.Named("filestorage"),
	}, nil
}

func (s *localStorageService) Save(ctx context.Context, subDir string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", common.ErrBadRequest.WithDetails("No file provided")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	fileName := uuid.New().String() + ext
	relativePath := filepath.ToSlash(filepath.Join(subDir, fileName))

	dir := filepath.Join(s.basePath, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(dir, fileName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	s.logger.Debug("Stored file", zap.String("path", relativePath), zap.Int64("size", fileHeader.Size))
	return relativePath, nil
}

func (s *localStorageService) Delete(ctx context.Context, relativePath string) error {
	if relativePath == "" {
		return nil
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))

	// Reject paths escaping the storage root.
	cleaned, err := filepath.Abs(fullPath)
	if err != nil || !strings.HasPrefix(cleaned, s.basePath+string(os.PathSeparator)) {
		return common.ErrBadRequest.WithDetails("Invalid file path")
	}

	if err := os.Remove(cleaned); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", relativePath, err)
	}
	return nil
}

func (s *localStorageService) PublicURL(relativePath string) string {
	if relativePath == "" {
		return ""
	}
	return s.publicBaseURL + "/" + strings.TrimLeft(filepath.ToSlash(relativePath), "/")
}
