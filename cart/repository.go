package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// Repository specifies cart database operations.
type Repository interface {
	CreateCart(ctx context.Context, c *entity.Cart) error
	// GetCart loads the cart with its items and their products.
	GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	CartExists(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteCart removes the cart and its items.
	DeleteCart(ctx context.Context, id uuid.UUID) error

	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error)
	// AddItem increments the quantity of the (cart, product) line, creating it when absent.
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error)
	GetItem(ctx context.Context, cartID, id uuid.UUID) (*entity.CartItem, error)
	SetItemQuantity(ctx context.Context, item *entity.CartItem, quantity int) error
	DeleteItem(ctx context.Context, cartID, id uuid.UUID) error
}
