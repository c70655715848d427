// File: internal/notification/handler.go
package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a notification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("notification_handler")}
}

// RegisterRoutes sets up the routes for notifications. All routes require
// authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", h.ListMine)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/mark-all-read", h.MarkAllRead)
	}
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.ListMine(c.Request.Context(), userID, unreadOnly, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Notifications retrieved successfully", notifications, common.NewPagination(total, page, pageSize))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Unread count retrieved successfully", gin.H{"unread_count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid notification id format"))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Notification marked as read", nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	updated, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All notifications marked as read", gin.H{"updated": updated})
}
