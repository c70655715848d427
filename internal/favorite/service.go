// File: internal/favorite/service.go
package favorite

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines favorite operations.
type Service interface {
	Favorite(ctx context.Context, userID, propertyID uuid.UUID) (*ToggleResult, error)
	Unfavorite(ctx context.Context, userID, propertyID uuid.UUID) (*ToggleResult, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Response, int64, error)
}

// ServiceImplementation implements the favorite Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a favorite service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, logger: logger.Named("favorite_service")}
}

func (s *ServiceImplementation) Favorite(ctx context.Context, userID, propertyID uuid.UUID) (*ToggleResult, error) {
	created, count, err := s.repo.Favorite(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		PropertyID:     propertyID,
		Favorited:      true,
		Changed:        created,
		FavoritesCount: count,
	}, nil
}

func (s *ServiceImplementation) Unfavorite(ctx context.Context, userID, propertyID uuid.UUID) (*ToggleResult, error) {
	removed, count, err := s.repo.Unfavorite(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		PropertyID:     propertyID,
		Favorited:      false,
		Changed:        removed,
		FavoritesCount: count,
	}, nil
}

func (s *ServiceImplementation) ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Response, int64, error) {
	favorites, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]Response, 0, len(favorites))
	for i := range favorites {
		resp := Response{ID: favorites[i].ID}
		if favorites[i].Property != nil {
			resp.Property = favorites[i].Property.ToResponse()
		}
		out = append(out, resp)
	}
	return out, total, nil
}
