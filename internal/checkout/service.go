package checkout

import (
	"context"
	"fmt"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Result struct {
	OrderID     int64  `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// Service turns a cart into an order and hands off to the payment provider.
// The order is persisted before the provider is called; a payment failure is
// compensated by deleting the order again, leaving the cart untouched so the
// caller can retry.
type Service interface {
	Checkout(ctx context.Context, cartID uuid.UUID) (*Result, error)
}

type service struct {
	carts    cart.Repository
	orders   order.Repository
	identity auth.Service
	gateway  payment.Gateway
}

func NewService(
	carts cart.Repository,
	orders order.Repository,
	identity auth.Service,
	gateway payment.Gateway,
) Service {
	return &service{
		carts:    carts,
		orders:   orders,
		identity: identity,
		gateway:  gateway,
	}
}

func (s *service) Checkout(ctx context.Context, cartID uuid.UUID) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("cart_id", cartID.String()),
	)

	// 1. Cart lookup. Items are a snapshot taken here; concurrent cart
	// edits after this point are not part of this checkout.
	c, err := s.carts.FindWithItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	if len(c.Items) == 0 {
		return nil, ErrCartEmpty
	}

	// 2. The customer is always the authenticated actor, never an id
	// supplied by the caller.
	actor, err := s.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Build the order from the cart snapshot, denormalizing the
	// prices observed now.
	o := &order.Order{
		CustomerID: actor.ID,
		Status:     order.StatusPending,
	}
	for _, item := range c.Items {
		lineTotal := item.Product.PriceCents * int64(item.Quantity)
		o.Items = append(o.Items, order.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.Product.Name,
			UnitPriceCents: item.Product.PriceCents,
			Quantity:       item.Quantity,
			TotalCents:     lineTotal,
		})
		o.TotalCents += lineTotal
	}

	// 4. Durability point. A successful payment always has an order to
	// attach to, even if this process dies during the gateway call.
	if err := s.orders.Save(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log = log.With(zap.Int64("order_id", o.ID))

	// 5. External call. No store lock is held here; failure (including
	// timeout) triggers the compensating delete.
	session, err := s.gateway.CreateCheckoutSession(ctx, o)
	if err != nil {
		log.Warn("payment session creation failed, compensating", zap.Error(err))

		if delErr := s.orders.Delete(ctx, o); delErr != nil {
			log.Error("compensating delete failed, order stuck PENDING",
				zap.Error(delErr),
			)
			return nil, fmt.Errorf("%w: %v (payment failure: %v)", ErrCompensationFailed, delErr, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	// 6. The cart is consumed only on success. A clear failure is logged
	// but not surfaced: the order and payment session already exist.
	if err := s.carts.ClearItems(ctx, cartID); err != nil {
		log.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	log.Info("checkout completed",
		zap.Int64("total_cents", o.TotalCents),
	)

	return &Result{
		OrderID:     o.ID,
		CheckoutURL: session.URL,
	}, nil
}
