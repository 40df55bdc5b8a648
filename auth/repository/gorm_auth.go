package repository

import (
	"context"

	"github.com/google/uuid"
	authpkg "github.com/mikios34/storefront-backend/auth"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

type GormAuthRepo struct {
	db *gorm.DB
}

func NewGormAuthRepo(db *gorm.DB) authpkg.Repository {
	return &GormAuthRepo{db: db}
}

func (r *GormAuthRepo) CreateUserWithCustomer(ctx context.Context, u *entity.User, c *entity.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		c.UserID = u.ID
		return tx.Create(c).Error
	})
}

// UpdateUser writes the profile fields and the password hash in one statement.
func (r *GormAuthRepo) UpdateUser(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Model(u).Select("username", "email", "first_name", "last_name", "password").Updates(u).Error
}

func (r *GormAuthRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *GormAuthRepo) LinkFirebaseUID(ctx context.Context, id uuid.UUID, uid string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("firebase_uid", uid).Error
}

func (r *GormAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormAuthRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormAuthRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormAuthRepo) GetUserByFirebaseUID(ctx context.Context, uid string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormAuthRepo) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormAuthRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (r *GormAuthRepo) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	return r.taken(ctx, "username", username, exclude)
}

func (r *GormAuthRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	return r.taken(ctx, "email", email, exclude)
}

func (r *GormAuthRepo) taken(ctx context.Context, column, value string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&entity.User{}).Where(column+" = ?", value)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAuthRepo) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormAuthRepo) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*entity.Admin, error) {
	var a entity.Admin
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
