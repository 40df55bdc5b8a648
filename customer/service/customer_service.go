package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	customerpkg "github.com/mikios34/storefront-backend/customer"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

// customerService implements CustomerService.
type customerService struct {
	repo customerpkg.CustomerRepository
}

// NewCustomerService constructs a CustomerService backed by the provided repository.
func NewCustomerService(repo customerpkg.CustomerRepository) customerpkg.CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, err := s.repo.GetCustomerByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerpkg.ErrCustomerNotFound
	}
	return c, err
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req customerpkg.UpdateCustomerRequest) (*entity.Customer, error) {
	if req.Membership != "" && !req.Membership.Valid() {
		return nil, customerpkg.ErrInvalidMembership
	}
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, c, req, true)
}

// DeleteCustomer refuses to remove customers that own orders.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	has, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return customerpkg.ErrCustomerHasOrders
	}
	err = s.repo.DeleteCustomer(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customerpkg.ErrCustomerNotFound
	}
	return err
}

func (s *customerService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	c, err := s.repo.GetCustomerByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerpkg.ErrCustomerNotFound
	}
	return c, err
}

func (s *customerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req customerpkg.UpdateCustomerRequest) (*entity.Customer, error) {
	c, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, c, req, false)
}

func (s *customerService) apply(ctx context.Context, c *entity.Customer, req customerpkg.UpdateCustomerRequest, membership bool) (*entity.Customer, error) {
	c.Phone = req.Phone
	c.BirthDate = req.BirthDate
	if membership && req.Membership != "" {
		c.Membership = req.Membership
	}
	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
