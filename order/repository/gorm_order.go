package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	orderpkg "github.com/mikios34/storefront-backend/order"
	"gorm.io/gorm"
)

type GormOrderRepo struct{ db *gorm.DB }

func NewGormOrderRepo(db *gorm.DB) orderpkg.Repository { return &GormOrderRepo{db: db} }

func (r *GormOrderRepo) CartItemCount(ctx context.Context, cartID uuid.UUID) (bool, int64, error) {
	var carts int64
	if err := r.db.WithContext(ctx).Model(&entity.Cart{}).Where("id = ?", cartID).Count(&carts).Error; err != nil {
		return false, 0, err
	}
	if carts == 0 {
		return false, 0, nil
	}
	var items int64
	if err := r.db.WithContext(ctx).Model(&entity.CartItem{}).Where("cart_id = ?", cartID).Count(&items).Error; err != nil {
		return true, 0, err
	}
	return true, items, nil
}

func (r *GormOrderRepo) Checkout(ctx context.Context, userID, cartID uuid.UUID) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entity.Customer
		if err := tx.First(&customer, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return orderpkg.ErrCustomerNotFound
			}
			return err
		}

		var items []entity.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cartID).Order("created_at ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return orderpkg.ErrEmptyCart
		}

		o = entity.Order{CustomerID: customer.ID, PaymentStatus: entity.PaymentPending}
		if err := tx.Omit("Items").Create(&o).Error; err != nil {
			return err
		}

		lines := make([]entity.OrderItem, 0, len(items))
		for _, it := range items {
			if it.Product == nil {
				return orderpkg.ErrUnknownProduct
			}
			lines = append(lines, entity.OrderItem{
				OrderID:   o.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.Product.UnitPrice,
			})
		}
		if err := tx.Omit("Product").Create(&lines).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Cart{}, "id = ?", cartID).Error; err != nil {
			return err
		}
		o.Items = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) GetCustomerIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Select("id").First(&c, "user_id = ?", userID).Error; err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

func (r *GormOrderRepo) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]entity.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if customerID != nil {
			return db.Where("customer_id = ?", *customerID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Scopes(scope).Preload("Items.Product").Order("placed_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var list []entity.Order
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *GormOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.WithContext(ctx).Preload("Items.Product").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
