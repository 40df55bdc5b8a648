package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// Repository specifies review database operations. Every lookup is scoped to a product.
type Repository interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
	List(ctx context.Context, productID uuid.UUID) ([]entity.Review, error)
	Create(ctx context.Context, r *entity.Review) error
	Get(ctx context.Context, productID, id uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, productID, id uuid.UUID) error
}
