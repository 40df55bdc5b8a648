package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	cartpkg "github.com/mikios34/storefront-backend/cart"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

type cartService struct {
	repo cartpkg.Repository
}

// NewCartService constructs a cart.Service backed by the provided repository.
func NewCartService(repo cartpkg.Repository) cartpkg.Service {
	return &cartService{repo: repo}
}

func (s *cartService) CreateCart(ctx context.Context) (*entity.Cart, error) {
	c := &entity.Cart{}
	if err := s.repo.CreateCart(ctx, c); err != nil {
		return nil, err
	}
	c.Items = []entity.CartItem{}
	return c, nil
}

// GetCart returns the cart with items, products and the computed total.
func (s *cartService) GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	c, err := s.repo.GetCart(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cartpkg.ErrCartNotFound
		}
		return nil, err
	}
	c.ComputeTotal()
	return c, nil
}

func (s *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteCart(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cartpkg.ErrCartNotFound
	}
	return err
}

func (s *cartService) requireCart(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.CartExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return cartpkg.ErrCartNotFound
	}
	return nil
}

func (s *cartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error) {
	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, cartID)
}

// AddItem merges into an existing line for the same product instead of adding a duplicate.
func (s *cartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, cartpkg.ErrInvalidQuantity
	}
	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cartpkg.ErrUnknownProduct
	}
	item, err := s.repo.AddItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	slog.Debug("cart item added", "cart_id", cartID, "product_id", productID, "quantity", item.Quantity)
	return item, nil
}

func (s *cartService) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*entity.CartItem, error) {
	item, err := s.repo.GetItem(ctx, cartID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cartpkg.ErrItemNotFound
	}
	return item, err
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, cartpkg.ErrInvalidQuantity
	}
	item, err := s.GetItem(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetItemQuantity(ctx, item, quantity); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	err := s.repo.DeleteItem(ctx, cartID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cartpkg.ErrItemNotFound
	}
	return err
}
