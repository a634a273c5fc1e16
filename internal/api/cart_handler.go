package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// CreateCart handles POST /carts.
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.CreateCart(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to create cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// GetCart handles GET /carts/{cartId}.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddItem handles POST /carts/{cartId}/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /carts/{cartId}/items/{productId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateItemQuantity(r.Context(), cartID, productID, req.Quantity); err != nil {
		h.writeCartError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem handles DELETE /carts/{cartId}/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), cartID, productID); err != nil {
		h.writeCartError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cartID, err := uuid.Parse(chi.URLParam(r, "cartId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return uuid.Nil, false
	}
	return cartID, true
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		writeError(w, http.StatusNotFound, "cart not found")
	case errors.Is(err, cart.ErrCartItemNotFound):
		writeError(w, http.StatusNotFound, "cart item not found")
	case errors.Is(err, cart.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
	default:
		logger.FromCtx(r.Context()).Error("cart request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
