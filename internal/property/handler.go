// File: internal/property/handler.go
package property

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// Handler handles HTTP requests for properties.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a property handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("property_handler")}
}

// RegisterRoutes sets up the routes for properties. Write operations require
// the host role.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware, hostMiddleware gin.HandlerFunc) {
	properties := router.Group("/properties")
	{
		properties.GET("", h.Search)
		properties.GET("/:id", h.GetByID)
		properties.GET("/slug/:slug", h.GetBySlug)

		properties.POST("", authMiddleware, hostMiddleware, h.Create)
		properties.PATCH("/:id", authMiddleware, hostMiddleware, h.Update)
		properties.DELETE("/:id", authMiddleware, hostMiddleware, h.Delete)
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

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	hostID := common.GetUserIDFromContext(c)

	var req CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), hostID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Property created successfully", resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property retrieved successfully", resp)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property retrieved successfully", resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	actorID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	resp, err := h.service.Update(c.Request.Context(), actorID, actorRole, id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property updated successfully", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actorID := common.GetUserIDFromContext(c)
	actorRole := common.GetUserRoleFromContext(c)
	if err := h.service.Delete(c.Request.Context(), actorID, actorRole, id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) Search(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	guests, _ := strconv.Atoi(c.Query("guests"))

	params := SearchParams{
		City:     c.Query("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Guests:   guests,
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}

	properties, total, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Properties retrieved successfully", properties, common.NewPagination(total, page, pageSize))
}
