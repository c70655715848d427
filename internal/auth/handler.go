// File: internal/auth/handler.go
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("auth_handler")}
}

// RegisterRoutes sets up the routes for authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/request-code", h.RequestCode)
		authGroup.POST("/verify-code", h.VerifyCode)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", authMiddleware, h.Me)
	}
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

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Account created. Check your email for a verification code.", resp)
}

func (h *Handler) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.RequestCode(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "If the email is registered, a verification code has been sent.", nil)
}

func (h *Handler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.VerifyCode(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Email verified successfully", resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Logged in successfully", resp)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Session refreshed", resp)
}

func (h *Handler) Me(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	resp, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully", resp)
}
