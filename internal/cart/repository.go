package cart

import (
	"context"
	"database/sql"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateCart(ctx context.Context) (*Cart, error)

	// FindWithItems returns nil without error when the cart does not exist.
	FindWithItems(ctx context.Context, cartID uuid.UUID) (*Cart, error)

	GetItem(ctx context.Context, cartID uuid.UUID, productID int64) (*CartItem, error)
	CreateItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error

	// ClearItems empties the cart. Clearing an already-empty cart is a no-op.
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCart(ctx context.Context) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
	)

	c := &Cart{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (id)
		VALUES ($1)
		RETURNING id, created_at
	`, uuid.New()).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}

	c.Items = []CartItem{}
	return c, nil
}

func (r *repository) FindWithItems(ctx context.Context, cartID uuid.UUID) (*Cart, error) {
	c := &Cart{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at
		FROM carts
		WHERE id = $1
	`, cartID).Scan(&c.ID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id,
			ci.cart_id,
			ci.product_id,
			ci.quantity,
			ci.created_at,
			ci.updated_at,

			p.id,
			p.name,
			p.description,
			p.price_cents
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Items = []CartItem{}
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,

			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.PriceCents,
		); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) GetItem(ctx context.Context, cartID uuid.UUID, productID int64) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.String("cart_id", cartID.String()),
		zap.Int64("product_id", productID),
	)

	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at
	`, cartID, productID, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.Int64("cart_item_id", item.ID))
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $1,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at
	`, quantity, itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1
	`, cartID)
	return err
}
