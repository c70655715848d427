// File: internal/review/handler.go
package review

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a review handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("review_handler")}
}

// RegisterRoutes sets up the routes for reviews.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	router.GET("/properties/:id/reviews", h.ListByProperty)
	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.POST("", h.Create)
		reviews.POST("/:id/reply", h.Reply)
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

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	authorID := common.GetUserIDFromContext(c)
	rev, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Review submitted successfully", rev)
}

func (h *Handler) Reply(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid review id format"))
		return
	}

	var req ReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	hostID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	rev, err := h.service.Reply(c.Request.Context(), hostID, actorRole, reviewID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Reply added successfully", rev)
}

func (h *Handler) ListByProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid property id format"))
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	reviews, total, err := h.service.ListByProperty(c.Request.Context(), propertyID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Reviews retrieved successfully", reviews, common.NewPagination(total, page, pageSize))
}
