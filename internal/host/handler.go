// File: internal/host/handler.go
package host

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/common"
	"shortstay_backend/internal/property"
)

// Handler handles HTTP requests for the host dashboard.
type Handler struct {
	service         Service
	bookingService  booking.Service
	propertyService property.Service
	logger          *zap.Logger
}

// NewHandler creates a host handler.
func NewHandler(service Service, bookingService booking.Service, propertyService property.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:         service,
		bookingService:  bookingService,
		propertyService: propertyService,
		logger:          logger.Named("host_handler"),
	}
}

// RegisterRoutes sets up the host routes. All routes require authentication
// and the host role.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, hostMiddleware gin.HandlerFunc) {
	hostGroup := router.Group("/host")
	hostGroup.Use(authMiddleware, hostMiddleware)
	{
		hostGroup.GET("/dashboard", h.GetDashboard)
		hostGroup.GET("/properties", h.ListProperties)
		hostGroup.GET("/bookings", h.ListBookings)
		hostGroup.POST("/bookings/:id/approve", h.ApproveBooking)
		hostGroup.POST("/bookings/:id/reject", h.RejectBooking)
	}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	hostID := common.GetUserIDFromContext(c)
	dashboard, err := h.service.GetDashboard(c.Request.Context(), hostID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dashboard retrieved successfully", dashboard)
}

func (h *Handler) ListProperties(c *gin.Context) {
	hostID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	properties, total, err := h.propertyService.ListByHost(c.Request.Context(), hostID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Properties retrieved successfully", properties, common.NewPagination(total, page, pageSize))
}

func (h *Handler) ListBookings(c *gin.Context) {
	hostID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	bookings, total, err := h.bookingService.ListForHost(c.Request.Context(), hostID, c.Query("status"), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Bookings retrieved successfully", bookings, common.NewPagination(total, page, pageSize))
}

func (h *Handler) ApproveBooking(c *gin.Context) {
	h.decideBooking(c, true)
}

func (h *Handler) RejectBooking(c *gin.Context) {
	h.decideBooking(c, false)
}

func (h *Handler) decideBooking(c *gin.Context, approve bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking id format"))
		return
	}

	hostID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)

	var resp *booking.Response
	if approve {
		resp, err = h.bookingService.Approve(c.Request.Context(), hostID, actorRole, id)
	} else {
		resp, err = h.bookingService.Reject(c.Request.Context(), hostID, actorRole, id)
	}
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	message := "Booking approved successfully"
	if !approve {
		message = "Booking rejected successfully"
	}
	common.RespondOK(c, message, resp)
}
