package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	cartpkg "github.com/mikios34/storefront-backend/cart"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

// GormCartRepo implements cart.Repository using GORM.
type GormCartRepo struct {
	db *gorm.DB
}

func NewGormCartRepo(db *gorm.DB) cartpkg.Repository {
	return &GormCartRepo{db: db}
}

func (r *GormCartRepo) CreateCart(ctx context.Context, c *entity.Cart) error {
	return r.db.WithContext(ctx).Omit("Items").Create(c).Error
}

func (r *GormCartRepo) GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var c entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCartRepo) CartExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Cart{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCartRepo) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Cart{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormCartRepo) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").Where("cart_id = ?", cartID).
		Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = entity.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			return tx.Omit("Product").Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepo) GetItem(ctx context.Context, cartID, id uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		First(&item, "id = ? AND cart_id = ?", id, cartID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepo) SetItemQuantity(ctx context.Context, item *entity.CartItem, quantity int) error {
	if err := r.db.WithContext(ctx).Model(item).Update("quantity", quantity).Error; err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

func (r *GormCartRepo) DeleteItem(ctx context.Context, cartID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND cart_id = ?", id, cartID).Delete(&entity.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
