package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/payments"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/interfaces/http/response"
	"maintenance-genie.backend/pkg/logger"
)

type PaymentService interface {
	ListServices(ctx context.Context) ([]*entities.Service, error)
	CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentIntentInput) (string, error)
	ProcessEvent(ctx context.Context, event *payments.Event) error
}

// PaymentHandler handles checkout and webhook endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
	webhookSecret  string
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase, webhookSecret: webhookSecret}
}

// ListServices lists purchasable plans
// GET /api/payments/services
func (h *PaymentHandler) ListServices(c *gin.Context) {
	services, err := h.paymentUsecase.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

// CreateIntent starts a checkout
// POST /api/payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input entities.CreatePaymentIntentInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	clientSecret, err := h.paymentUsecase.CreateIntent(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// Webhook receives provider events. The signature is checked against the
// raw body before any parsing; once it passes the provider always gets a
// 200 so it stops retrying, even when applying the event fails.
// POST /api/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: unable to read body")
		return
	}

	header := c.GetHeader(payments.SignatureHeader)
	if err := payments.VerifySignature(payload, header, h.webhookSecret, payments.DefaultTolerance); err != nil {
		if errors.Is(err, payments.ErrStaleTimestamp) {
			c.String(http.StatusBadRequest, "Webhook Error: timestamp outside tolerance")
			return
		}
		c.String(http.StatusBadRequest, "Webhook Error: signature verification failed")
		return
	}

	event, err := payments.ParseEvent(payload)
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: malformed event")
		return
	}

	if err := h.paymentUsecase.ProcessEvent(c.Request.Context(), event); err != nil {
		logger.Error(c.Request.Context(), "failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
