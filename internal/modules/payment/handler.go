package payment

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
	rg.GET("/payments", h.ListPayments)
	rg.GET("/bookings/:id/payments", h.ListBookingPayments)
	rg.POST("/bookings/:id/payments", h.RecordPayment)
}

// ListPayments godoc
// @Summary      List payments
// @Description  Returns all recorded payments, newest first
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// ListBookingPayments godoc
// @Summary      List payments for a booking
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /bookings/{id}/payments [get]
func (h *Handler) ListBookingPayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payments, summary, err := h.service.ListForBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments, "summary": summary})
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Records a cash, card or online payment against a booking. Status defaults to pending.
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int                  true "Booking ID"
// @Param        body body RecordPaymentRequest true "Payment payload"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /bookings/{id}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Record(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
