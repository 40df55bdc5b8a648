package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	reviewpkg "github.com/mikios34/storefront-backend/review"
	"gorm.io/gorm"
)

// GormReviewRepo implements review.Repository using GORM.
type GormReviewRepo struct {
	db *gorm.DB
}

func NewGormReviewRepo(db *gorm.DB) reviewpkg.Repository {
	return &GormReviewRepo{db: db}
}

func (r *GormReviewRepo) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormReviewRepo) List(ctx context.Context, productID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("date DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *GormReviewRepo) Get(ctx context.Context, productID, id uuid.UUID) (*entity.Review, error) {
	var rv entity.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *GormReviewRepo) Update(ctx context.Context, rv *entity.Review) error {
	return r.db.WithContext(ctx).Model(rv).Select("name", "description", "rate").Updates(rv).Error
}

func (r *GormReviewRepo) Delete(ctx context.Context, productID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(&entity.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
