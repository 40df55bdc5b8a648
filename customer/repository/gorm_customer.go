package repository

import (
	"context"

	"github.com/google/uuid"
	customerpkg "github.com/mikios34/storefront-backend/customer"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

// GormCustomerRepo implements customer.CustomerRepository using GORM.
type GormCustomerRepo struct {
	db *gorm.DB
}

func NewGormCustomerRepo(db *gorm.DB) customerpkg.CustomerRepository {
	return &GormCustomerRepo{db: db}
}

func (r *GormCustomerRepo) List(ctx context.Context, limit, offset int) ([]entity.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := r.db.WithContext(ctx).Preload("User").Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var list []entity.Customer
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *GormCustomerRepo) GetCustomerByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepo) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Preload("User").First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepo) UpdateCustomer(ctx context.Context, c *entity.Customer) error {
	return r.db.WithContext(ctx).Model(c).Select("phone", "birth_date", "membership").Updates(c).Error
}

func (r *GormCustomerRepo) HasOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).Where("customer_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepo) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
