// File: internal/user/handler.go
package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for user profiles.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("user_handler")}
}

// RegisterRoutes sets up the routes for user profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", h.GetMyProfile)
		users.PATCH("/me", h.UpdateMyProfile)
		users.POST("/me/avatar", h.UploadAvatar)
		users.POST("/me/kyc", h.SubmitKYC)
	}
}

func (h *Handler) GetMyProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully", resp)
}

func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully", resp)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("An 'avatar' file is required"))
		return
	}

	resp, err := h.service.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Avatar uploaded successfully", resp)
}

func (h *Handler) SubmitKYC(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	front, err := c.FormFile("document_front")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A 'document_front' file is required"))
		return
	}
	back, err := c.FormFile("document_back")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A 'document_back' file is required"))
		return
	}

	resp, err := h.service.SubmitKYC(c.Request.Context(), userID, front, back)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "KYC documents submitted for review", resp)
}
