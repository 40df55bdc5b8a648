package customer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerHasOrders = errors.New("customer cannot be deleted because they have placed orders")
	ErrInvalidMembership = errors.New("membership must be one of B, S, G")
)

// UpdateCustomerRequest replaces the customer's profile fields. An empty Membership keeps the
// current tier.
type UpdateCustomerRequest struct {
	Phone      string
	BirthDate  *time.Time
	Membership entity.Membership
}

// CustomerService exposes customer-related business operations.
type CustomerService interface {
	ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, int64, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	// GetProfile and UpdateProfile act on the customer owned by userID. Membership is not
	// self-service and is ignored by UpdateProfile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateCustomerRequest) (*entity.Customer, error)
}
