// File: internal/property/service.go
package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/platform/crypto"
)

// Service defines property operations.
type Service interface {
	Create(ctx context.Context, hostID uuid.UUID, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Response, error)
	GetBySlug(ctx context.Context, slugValue string) (*Response, error)
	Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error
	Search(ctx context.Context, params SearchParams) ([]Response, int64, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, page, pageSize int) ([]Response, int64, error)
}

// ServiceImplementation implements the property Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a property service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, logger: logger.Named("property_service")}
}

func (s *ServiceImplementation) Create(ctx context.Context, hostID uuid.UUID, req CreateRequest) (*Response, error) {
	slugValue, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	p := &Property{
		HostID:       hostID,
		Title:        req.Title,
		Slug:         slugValue,
		Description:  req.Description,
		City:         req.City,
		Address:      req.Address,
		NightlyPrice: req.NightlyPrice,
		MaxGuests:    req.MaxGuests,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Photos:       req.Photos,
		Amenities:    req.Amenities,
		Status:       StatusDraft,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create property", zap.String("host_id", hostID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create property")
	}

	resp := p.ToResponse()
	return &resp, nil
}

// uniqueSlug derives a URL slug from the title, suffixing a short random
// token on collision.
func (s *ServiceImplementation) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "property"
	}

	exists, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	suffix, err := crypto.GenerateSecureToken(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, suffix), nil
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) GetBySlug(ctx context.Context, slugValue string) (*Response, error) {
	p, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req UpdateRequest) (*Response, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.HostID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You do not own this property")
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.NightlyPrice != nil {
		p.NightlyPrice = *req.NightlyPrice
	}
	if req.MaxGuests != nil {
		p.MaxGuests = *req.MaxGuests
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Photos != nil {
		p.Photos = *req.Photos
	}
	if req.Amenities != nil {
		p.Amenities = *req.Amenities
	}
	if req.Status != nil {
		if !ValidStatuses[*req.Status] {
			return nil, common.ErrBadRequest.WithDetails("Invalid property status")
		}
		p.Status = *req.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update property", zap.String("property_id", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to update property")
	}

	resp := p.ToResponse()
	return &resp, nil
}

func (s *ServiceImplementation) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.HostID != actorID && actorRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("You do not own this property")
	}
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImplementation) Search(ctx context.Context, params SearchParams) ([]Response, int64, error) {
	properties, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return ToResponseList(properties), total, nil
}

func (s *ServiceImplementation) ListByHost(ctx context.Context, hostID uuid.UUID, page, pageSize int) ([]Response, int64, error) {
	properties, total, err := s.repo.ListByHost(ctx, hostID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ToResponseList(properties), total, nil
}
