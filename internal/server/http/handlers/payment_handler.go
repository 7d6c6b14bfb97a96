package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MaGuangChen/xendit-opencart-module/internal/adapter/xendit"
	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	"github.com/MaGuangChen/xendit-opencart-module/internal/metrics"
	"github.com/MaGuangChen/xendit-opencart-module/internal/server/http/dto"
	"github.com/MaGuangChen/xendit-opencart-module/internal/usecase"
)

// PaymentHandler manages invoice creation and notification endpoints.
type PaymentHandler struct {
	facade  PaymentFacade
	metrics *metrics.Metrics
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, m *metrics.Metrics) *PaymentHandler {
	return &PaymentHandler{facade: facade, metrics: m}
}

// Checkout handles POST /api/payment/xendit. The checkout UI renders the
// error inline, so rejections travel as a JSON error body rather than an
// HTTP status.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.PostForm("order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusOK, dto.CheckoutResponse{Error: "Invalid order id."})
		return
	}

	method := model.PaymentMethod(strings.ToLower(c.PostForm("invoice_hash")))

	redirect, err := h.facade.CreateInvoice(c.Request.Context(), orderID, method)
	if err != nil {
		c.JSON(http.StatusOK, dto.CheckoutResponse{Error: checkoutErrorMessage(err)})
		return
	}

	h.metrics.InvoicesCreated.Inc()
	c.JSON(http.StatusOK, dto.CheckoutResponse{Redirect: redirect})
}

func checkoutErrorMessage(err error) string {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var gatewayErr *xendit.GatewayError
	if errors.As(err, &gatewayErr) {
		return gatewayErr.Message
	}
	if errors.Is(err, domainErrors.ErrNotFound) {
		return "Order not found."
	}
	return "Payment could not be processed. Please try again."
}

// Notify handles notification deliveries on /api/payment/xendit/notification.
// The route accepts any method so non-POST deliveries get an explicit
// rejection instead of a router 404.
func (h *PaymentHandler) Notify(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusMethodNotAllowed, "Unexpected request method")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.metrics.NotificationOutcomes.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.String(http.StatusBadRequest, "Malformed notification payload.")
		return
	}

	message, err := h.facade.ProcessNotification(c.Request.Context(), body)
	if err != nil {
		var reconcileErr *usecase.ReconcileError
		if errors.As(err, &reconcileErr) {
			h.metrics.NotificationOutcomes.WithLabelValues(metrics.OutcomeRejected).Inc()
			c.String(reconcileStatus(reconcileErr), reconcileErr.Message)
			return
		}
		h.metrics.NotificationOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		c.String(http.StatusInternalServerError, "Notification could not be processed.")
		return
	}

	if strings.HasPrefix(message, "Payment successful") {
		h.metrics.NotificationOutcomes.WithLabelValues(metrics.OutcomePaid).Inc()
	} else {
		h.metrics.NotificationOutcomes.WithLabelValues(metrics.OutcomeCancelled).Inc()
	}
	c.String(http.StatusOK, message)
}

func reconcileStatus(err *usecase.ReconcileError) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrOrderNotPending):
		return http.StatusUnprocessableEntity
	default:
		// Malformed payloads and gateway lookup failures.
		return http.StatusBadRequest
	}
}

// Health handles GET /healthz.
func (h *PaymentHandler) Health(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}
