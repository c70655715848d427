// File: internal/availability/handler.go
package availability

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for availability blocks.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates an availability handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("availability_handler")}
}

// RegisterRoutes sets up the routes for availability blocks.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, hostMiddleware gin.HandlerFunc) {
	router.GET("/properties/:id/availability-blocks", h.ListByProperty)
	router.POST("/properties/:id/availability-blocks", authMiddleware, hostMiddleware, h.Create)
	router.DELETE("/availability-blocks/:id", authMiddleware, hostMiddleware, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property id format"))
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	actorID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	block, err := h.service.Create(c.Request.Context(), actorID, actorRole, propertyID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Availability block created successfully", block)
}

func (h *Handler) Delete(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid block id format"))
		return
	}

	actorID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	if err := h.service.Delete(c.Request.Context(), actorID, actorRole, blockID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) ListByProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property id format"))
		return
	}

	blocks, err := h.service.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Availability blocks retrieved successfully", blocks)
}
