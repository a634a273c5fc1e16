package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type checkoutRequest struct {
	CartID string `json:"cartId"`
}

// Checkout handles POST /checkout.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	result, err := h.svc.Checkout(r.Context(), cartID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartNotFound):
			writeError(w, http.StatusNotFound, "cart not found")
		case errors.Is(err, checkout.ErrCartEmpty):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, auth.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "unauthenticated")
		case errors.Is(err, checkout.ErrCompensationFailed):
			log.Error("checkout left a stuck pending order", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "checkout could not be completed")
		case errors.Is(err, checkout.ErrCheckoutFailed):
			// Gateway-internal details stay in the logs.
			log.Warn("checkout rejected by payment provider", zap.Error(err))
			writeError(w, http.StatusBadGateway, "payment session could not be created")
		default:
			log.Error("checkout failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
