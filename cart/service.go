package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrUnknownProduct  = errors.New("no product with the given id was found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Service exposes anonymous cart operations. The cart id is the only credential.
type Service interface {
	CreateCart(ctx context.Context) (*entity.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error)
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error)
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
}
