package cart

import (
	"context"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the cart-management collaborator. Checkout consumes carts
// through the Repository directly; this service only adds and removes items.
type Service interface {
	CreateCart(ctx context.Context) (*Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*Cart, error)
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) CreateCart(ctx context.Context) (*Cart, error) {
	return s.repo.CreateCart(ctx)
}

func (s *service) GetCart(ctx context.Context, cartID uuid.UUID) (*Cart, error) {
	c, err := s.repo.FindWithItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity < 1 {
		log.Warn("invalid quantity")
		return nil, ErrInvalidQuantity
	}

	c, err := s.repo.FindWithItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetItem(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}

	var item *CartItem
	if existing == nil {
		item, err = s.repo.CreateItem(ctx, cartID, productID, quantity)
	} else {
		item, err = s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+quantity)
	}
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	item.Product = *p
	return item, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) error {
	if quantity <= 0 {
		// Dropping to zero removes the line entirely.
		return s.repo.RemoveItem(ctx, cartID, productID)
	}

	existing, err := s.repo.GetItem(ctx, cartID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	_, err = s.repo.UpdateItemQuantity(ctx, existing.ID, quantity)
	return err
}

func (s *service) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error {
	return s.repo.RemoveItem(ctx, cartID, productID)
}
