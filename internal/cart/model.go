package cart

import (
	"time"

	"storefront-be/internal/product"

	"github.com/google/uuid"
)

// Cart holds items until a successful checkout consumes them. Carts are
// created anonymously and referenced by an opaque id.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items"`
}

type CartItem struct {
	ID        int64     `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product product.Product `json:"product"`
}
