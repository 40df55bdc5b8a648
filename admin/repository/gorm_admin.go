package repository

import (
	"context"

	"github.com/google/uuid"
	adminpkg "github.com/mikios34/storefront-backend/admin"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

// GormAdminRepo implements admin.AdminRepository using GORM.
type GormAdminRepo struct {
	db *gorm.DB
}

func NewGormAdminRepo(db *gorm.DB) adminpkg.AdminRepository {
	return &GormAdminRepo{db: db}
}

func (r *GormAdminRepo) StoreAdminUser(ctx context.Context, u *entity.User, a *entity.Admin, c *entity.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		a.UserID = u.ID
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		c.UserID = u.ID
		return tx.Omit("User").Create(c).Error
	})
}

func (r *GormAdminRepo) GetAdminByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var a entity.Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAdminRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAdminRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
