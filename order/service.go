package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrCartNotFound         = errors.New("no cart with the given id was found")
	ErrEmptyCart            = errors.New("the cart is empty")
	ErrUnknownProduct       = errors.New("cart references a product that no longer exists")
	ErrCustomerNotFound     = errors.New("customer profile not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrForbidden            = errors.New("you do not have access to this order")
	ErrInvalidPaymentStatus = errors.New("payment status must be one of P, C, F")
)

// Viewer is the authenticated caller an order operation runs on behalf of.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// Event is the message published for order lifecycle changes.
type Event struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	PaymentStatus string    `json:"payment_status"`
	Total         string    `json:"total"`
	Items         int       `json:"items"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier pushes realtime order updates to connected clients.
type Notifier interface {
	NotifyCustomer(customerID string, event string, payload any) error
	BroadcastAdmins(event string, payload any)
}

// Service exposes checkout and order management.
type Service interface {
	Checkout(ctx context.Context, userID, cartID uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, viewer Viewer, limit, offset int) ([]entity.Order, int64, error)
	Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
