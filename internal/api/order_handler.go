package api

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// GetOrder handles GET /orders/{orderId}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	view, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetAllOrders handles GET /orders.
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.GetAllOrders(r.Context())
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrAccessDenied):
		// Opaque on purpose: do not confirm the order exists.
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.FromCtx(r.Context()).Error("order request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
