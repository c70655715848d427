// File: internal/admin/handler.go
package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/user"
)

// Handler handles administrative HTTP requests.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("admin_handler")}
}

// RegisterRoutes sets up the admin routes. All routes require authentication
// and the admin role.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, adminMiddleware gin.HandlerFunc) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(authMiddleware, adminMiddleware)
	{
		adminGroup.GET("/users", h.ListUsers)
		adminGroup.PATCH("/users/:id/role", h.SetUserRole)
		adminGroup.PATCH("/users/:id/kyc", h.SetKYCStatus)
		adminGroup.GET("/payments", h.ListPayments)
		adminGroup.PATCH("/payments/:id/status", h.SetPaymentStatus)
		adminGroup.GET("/analytics", h.GetAnalytics)
		adminGroup.POST("/jobs/booking-reminders", h.RunBookingReminders)
	}
}

type roleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

type kycUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type paymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid id format"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	params := user.ListParams{
		Role:      c.Query("role"),
		KYCStatus: c.Query("kyc_status"),
		Page:      page,
		PageSize:  pageSize,
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Users retrieved successfully", users, common.NewPagination(total, page, pageSize))
}

func (h *Handler) SetUserRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req roleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.service.SetUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User role updated successfully", u)
}

func (h *Handler) SetKYCStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req kycUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.service.SetKYCStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "KYC status updated successfully", u)
}

func (h *Handler) ListPayments(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	payments, total, err := h.service.ListPayments(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Payments retrieved successfully", payments, common.NewPagination(total, page, pageSize))
}

func (h *Handler) SetPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.service.SetPaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Payment status updated successfully", p)
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.GetAnalytics(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Analytics retrieved successfully", analytics)
}

func (h *Handler) RunBookingReminders(c *gin.Context) {
	summary, err := h.service.RunBookingReminders(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking reminder job completed", summary)
}
