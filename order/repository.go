package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// Repository defines DB operations for orders.
type Repository interface {
	// CartItemCount reports whether the cart exists and how many lines it holds.
	CartItemCount(ctx context.Context, cartID uuid.UUID) (exists bool, count int64, err error)
	// Checkout turns the cart into a pending order owned by the user's customer and deletes the
	// cart, all in one transaction.
	Checkout(ctx context.Context, userID, cartID uuid.UUID) (*entity.Order, error)

	GetCustomerIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	// List returns orders newest first. A nil customerID lists every order.
	List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]entity.Order, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
	// Delete removes the order and its lines.
	Delete(ctx context.Context, id uuid.UUID) error
}
