// File: internal/availability/service.go
package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Service defines availability block operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole string, propertyID uuid.UUID, req CreateRequest) (*AvailabilityBlock, error)
	Delete(ctx context.Context, actorID uuid.UUID, actorRole string, blockID uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]AvailabilityBlock, error)
	// IsBlocked reports whether any block on the property intersects
	// [start, end). Used by booking creation.
	IsBlocked(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error)
}

// ServiceImplementation implements the availability Service.
type ServiceImplementation struct {
	repo         Repository
	propertyRepo property.Repository
	logger       *zap.Logger
}

// NewService creates an availability service.
func NewService(repo Repository, propertyRepo property.Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{
		repo:         repo,
		propertyRepo: propertyRepo,
		logger:       logger.Named("availability_service"),
	}
}

const dateLayout = "2006-01-02"

func (s *ServiceImplementation) Create(ctx context.Context, actorID uuid.UUID, actorRole string, propertyID uuid.UUID, req CreateRequest) (*AvailabilityBlock, error) {
	prop, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop.HostID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You do not own this property")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("start_date must be a valid YYYY-MM-DD date")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("end_date must be a valid YYYY-MM-DD date")
	}
	if !end.After(start) {
		return nil, common.ErrBadRequest.WithDetails("end_date must be after start_date")
	}

	overlaps, err := s.repo.HasOverlap(ctx, propertyID, start, end, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, common.ErrConflict.WithDetails("The date range overlaps an existing availability block")
	}

	block := &AvailabilityBlock{
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	}
	if err := s.repo.Create(ctx, block); err != nil {
		s.logger.Error("Failed to create availability block", zap.String("property_id", propertyID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create availability block")
	}
	return block, nil
}

func (s *ServiceImplementation) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, blockID uuid.UUID) error {
	block, err := s.repo.FindByID(ctx, blockID)
	if err != nil {
		return err
	}
	prop, err := s.propertyRepo.FindByID(ctx, block.PropertyID)
	if err != nil {
		return err
	}
	if prop.HostID != actorID && actorRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("You do not own this property")
	}
	return s.repo.Delete(ctx, blockID)
}

func (s *ServiceImplementation) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]AvailabilityBlock, error) {
	if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *ServiceImplementation) IsBlocked(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	return s.repo.HasOverlap(ctx, propertyID, start, end, uuid.Nil)
}
