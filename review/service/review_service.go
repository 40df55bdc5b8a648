package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	reviewpkg "github.com/mikios34/storefront-backend/review"
	"gorm.io/gorm"
)

type reviewService struct {
	repo reviewpkg.Repository
}

func NewReviewService(repo reviewpkg.Repository) reviewpkg.Service {
	return &reviewService{repo: repo}
}

func (s *reviewService) requireProduct(ctx context.Context, productID uuid.UUID) error {
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return reviewpkg.ErrProductNotFound
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, productID uuid.UUID) ([]entity.Review, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, productID)
}

func (s *reviewService) Create(ctx context.Context, productID, reviewerID uuid.UUID, in reviewpkg.Input) (*entity.Review, error) {
	if in.Rate < 1 || in.Rate > 5 {
		return nil, reviewpkg.ErrInvalidRate
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rv := &entity.Review{
		ProductID:   productID,
		ReviewerID:  reviewerID,
		Name:        in.Name,
		Description: in.Description,
		Rate:        in.Rate,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Get(ctx context.Context, productID, id uuid.UUID) (*entity.Review, error) {
	rv, err := s.repo.Get(ctx, productID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reviewpkg.ErrReviewNotFound
	}
	return rv, err
}

// owned loads the review and checks the caller wrote it.
func (s *reviewService) owned(ctx context.Context, productID, id, callerID uuid.UUID) (*entity.Review, error) {
	rv, err := s.Get(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	if rv.ReviewerID != callerID {
		return nil, reviewpkg.ErrNotReviewer
	}
	return rv, nil
}

func (s *reviewService) Update(ctx context.Context, productID, id, callerID uuid.UUID, in reviewpkg.Input) (*entity.Review, error) {
	if in.Rate < 1 || in.Rate > 5 {
		return nil, reviewpkg.ErrInvalidRate
	}
	rv, err := s.owned(ctx, productID, id, callerID)
	if err != nil {
		return nil, err
	}
	rv.Name = in.Name
	rv.Description = in.Description
	rv.Rate = in.Rate
	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Delete(ctx context.Context, productID, id, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, productID, id, callerID); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, productID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reviewpkg.ErrReviewNotFound
	}
	return err
}
