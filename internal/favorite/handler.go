// File: internal/favorite/handler.go
package favorite

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for favorites.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a favorite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("favorite_handler")}
}

// RegisterRoutes sets up the routes for favorites. All routes require
// authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	favorites := router.Group("/favorites")
	favorites.Use(authMiddleware)
	{
		favorites.GET("", h.ListMine)
		favorites.PUT("/:property_id", h.Favorite)
		favorites.DELETE("/:property_id", h.Unfavorite)
	}
}

func (h *Handler) Favorite(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property_id format"))
		return
	}

	userID := common.GetUserIDFromContext(c)
	result, err := h.service.Favorite(c.Request.Context(), userID, propertyID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	message := "Property added to favorites"
	if !result.Changed {
		message = "Property is already in favorites"
	}
	common.RespondOK(c, message, result)
}

func (h *Handler) Unfavorite(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property_id format"))
		return
	}

	userID := common.GetUserIDFromContext(c)
	result, err := h.service.Unfavorite(c.Request.Context(), userID, propertyID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	message := "Property removed from favorites"
	if !result.Changed {
		message = "Property was not in favorites"
	}
	common.RespondOK(c, message, result)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	favorites, total, err := h.service.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Favorites retrieved successfully", favorites, common.NewPagination(total, page, pageSize))
}
