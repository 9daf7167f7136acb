package guest

import (
	"errors"
	"net/http"
	"strconv"

	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	guests := rg.Group("/guests")
	{
		guests.GET("", h.ListGuests)
		guests.POST("", h.CreateGuest)
		guests.GET("/:id", h.GetGuest)
		guests.PUT("/:id", h.UpdateGuest)
		guests.DELETE("/:id", h.DeleteGuest)
	}
}

func (h *Handler) ListGuests(c *gin.Context) {
	var q ListGuestsQuery
	_ = c.ShouldBindQuery(&q)

	guests, err := h.service.List(c.Request.Context(), q.Q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guests": guests})
}

func (h *Handler) GetGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	g, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": g})
}

func (h *Handler) CreateGuest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"guest": g})
}

func (h *Handler) UpdateGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req GuestRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	g, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": g})
}

func (h *Handler) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Guest not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrGuestHasBookings):
		response.Error(c, http.StatusConflict, "GUEST_HAS_BOOKINGS", "Guest has bookings and cannot be deleted")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process guest")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest ID")
		return 0, false
	}
	return id, true
}
