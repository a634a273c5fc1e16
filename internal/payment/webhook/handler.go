package webhook

import (
	"errors"
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"

	"go.uber.org/zap"
)

// Handler receives asynchronous payment outcomes from the provider and
// reconciles them onto orders.
type Handler struct {
	OrderSvc order.Service
	Gateway  payment.Gateway
}

func NewHandler(orderSvc order.Service, gateway payment.Gateway) *Handler {
	return &Handler{
		OrderSvc: orderSvc,
		Gateway:  gateway,
	}
}

func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	if err := h.Gateway.VerifySignature(r); err != nil {
		log.Warn("webhook signature rejected", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	result, err := h.Gateway.ParseWebhookRequest(r)
	if err != nil {
		log.Warn("failed to parse webhook", zap.Error(err))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if result == nil {
		// Event type we do not track.
		w.WriteHeader(http.StatusOK)
		return
	}

	switch result.Outcome {
	case payment.OutcomePaid:
		err = h.OrderSvc.MarkAsPaid(r.Context(), result.OrderID)
	case payment.OutcomeFailed:
		err = h.OrderSvc.MarkAsFailed(r.Context(), result.OrderID)
	}

	if errors.Is(err, order.ErrOrderNotFound) {
		// Acknowledge unknown references so the provider stops retrying.
		log.Warn("webhook for unknown order", zap.Int64("order_id", result.OrderID))
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		log.Error("failed to apply webhook outcome",
			zap.Int64("order_id", result.OrderID),
			zap.Error(err),
		)
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
