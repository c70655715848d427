// File: internal/payment/handler.go
package payment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for payments.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a payment handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("payment_handler")}
}

// RegisterRoutes sets up the routes for payments. All routes require
// authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	payments := router.Group("/payments")
	payments.Use(authMiddleware)
	{
		payments.POST("/initialize", h.Initialize)
		payments.GET("/verify/:reference", h.Verify)
	}
}

func (h *Handler) Initialize(c *gin.Context) {
	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	userID := common.GetUserIDFromContext(c)
	resp, err := h.service.Initialize(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Payment initialized. Redirect the user to the checkout URL.", resp)
}

func (h *Handler) Verify(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A payment reference is required"))
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), reference)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Payment status retrieved", resp)
}
