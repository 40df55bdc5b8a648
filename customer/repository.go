package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// CustomerRepository specifies customer related database operations.
type CustomerRepository interface {
	List(ctx context.Context, limit, offset int) ([]entity.Customer, int64, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, c *entity.Customer) error
	HasOrders(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
