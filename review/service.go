package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewer     = errors.New("only the reviewer can modify this review")
	ErrInvalidRate     = errors.New("rate must be between 1 and 5")
)

// Input is the writable part of a review.
type Input struct {
	Name        string
	Description string
	Rate        int
}

// Service exposes product review operations. Reads are public; writes need a reviewer.
type Service interface {
	List(ctx context.Context, productID uuid.UUID) ([]entity.Review, error)
	Create(ctx context.Context, productID, reviewerID uuid.UUID, in Input) (*entity.Review, error)
	Get(ctx context.Context, productID, id uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, productID, id, callerID uuid.UUID, in Input) (*entity.Review, error)
	Delete(ctx context.Context, productID, id, callerID uuid.UUID) error
}
