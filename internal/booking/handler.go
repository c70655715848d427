// File: internal/booking/handler.go
package booking

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for bookings.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a booking handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("booking_handler")}
}

// RegisterRoutes sets up the guest-facing booking routes. Host decisions are
// exposed under the host dashboard.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	bookings := router.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("/my", h.ListMine)
		bookings.GET("/:id", h.GetByID)
		bookings.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
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

	guestID := common.GetUserIDFromContext(c)
	resp, err := h.service.Create(c.Request.Context(), guestID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Booking requested successfully", resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking id format"))
		return
	}

	actorID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	resp, err := h.service.GetByID(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking retrieved successfully", resp)
}

func (h *Handler) ListMine(c *gin.Context) {
	guestID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	bookings, total, err := h.service.ListMine(c.Request.Context(), guestID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Bookings retrieved successfully", bookings, common.NewPagination(total, page, pageSize))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking id format"))
		return
	}

	guestID := common.GetUserIDFromContext(c)
	resp, err := h.service.Cancel(c.Request.Context(), guestID, id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking cancelled successfully", resp)
}
