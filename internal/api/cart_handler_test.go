package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-be/internal/cart"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) CreateCart(ctx context.Context) (*cart.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, cartID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*cart.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func cartRouter(svc cart.Service) http.Handler {
	h := NewCartHandler(svc)
	r := chi.NewRouter()
	r.Post("/carts", h.CreateCart)
	r.Get("/carts/{cartId}", h.GetCart)
	r.Post("/carts/{cartId}/items", h.AddItem)
	r.Put("/carts/{cartId}/items/{productId}", h.UpdateItem)
	r.Delete("/carts/{cartId}/items/{productId}", h.RemoveItem)
	return r
}

func TestCreateCart(t *testing.T) {
	svc := new(MockCartService)
	svc.On("CreateCart", mock.Anything).Return(&cart.Cart{ID: uuid.New()}, nil)

	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, httptest.NewRequest("POST", "/carts", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetCart_NotFound(t *testing.T) {
	svc := new(MockCartService)
	cartID := uuid.New()
	svc.On("GetCart", mock.Anything, cartID).Return(nil, cart.ErrCartNotFound)

	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/carts/"+cartID.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCart_InvalidID(t *testing.T) {
	svc := new(MockCartService)

	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/carts/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestAddItem_Created(t *testing.T) {
	svc := new(MockCartService)
	cartID := uuid.New()

	svc.On("AddItem", mock.Anything, cartID, int64(1), 2).
		Return(&cart.CartItem{ID: 7, CartID: cartID, ProductID: 1, Quantity: 2}, nil)

	req := httptest.NewRequest("POST", "/carts/"+cartID.String()+"/items",
		strings.NewReader(`{"productId":1,"quantity":2}`))
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddItem_InvalidQuantityMapsTo400(t *testing.T) {
	svc := new(MockCartService)
	cartID := uuid.New()

	svc.On("AddItem", mock.Anything, cartID, int64(1), 0).
		Return(nil, cart.ErrInvalidQuantity)

	req := httptest.NewRequest("POST", "/carts/"+cartID.String()+"/items",
		strings.NewReader(`{"productId":1,"quantity":0}`))
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItem_NoContent(t *testing.T) {
	svc := new(MockCartService)
	cartID := uuid.New()

	svc.On("UpdateItemQuantity", mock.Anything, cartID, int64(1), 3).Return(nil)

	req := httptest.NewRequest("PUT", "/carts/"+cartID.String()+"/items/1",
		strings.NewReader(`{"quantity":3}`))
	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemoveItem_NotFound(t *testing.T) {
	svc := new(MockCartService)
	cartID := uuid.New()

	svc.On("RemoveItem", mock.Anything, cartID, int64(1)).Return(cart.ErrCartItemNotFound)

	rec := httptest.NewRecorder()
	cartRouter(svc).ServeHTTP(rec, httptest.NewRequest("DELETE", "/carts/"+cartID.String()+"/items/1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
