package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search       string
	CollectionID *uuid.UUID
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	// Ordering is one of the keys of Orderings, or empty for the default order.
	Ordering string
	Limit    int
	Offset   int
}

// Orderings maps accepted ordering parameters to SQL ORDER BY clauses.
var Orderings = map[string]string{
	"unit_price":  "unit_price ASC",
	"-unit_price": "unit_price DESC",
	"id":          "id ASC",
	"-id":         "id DESC",
}

// Repository specifies catalog database operations.
type Repository interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]entity.Product, int64, error)
	ListAllProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p *entity.Product) error
	// DeleteProduct removes the product with its images, reviews and cart lines and returns the
	// deleted image URLs. It fails with ErrProductHasOrderItems when an order references the product.
	DeleteProduct(ctx context.Context, id uuid.UUID) ([]string, error)
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

	ListCollections(ctx context.Context) ([]entity.Collection, error)
	CreateCollection(ctx context.Context, c *entity.Collection) error
	GetCollection(ctx context.Context, id uuid.UUID) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, c *entity.Collection) error
	// DeleteCollection fails with ErrCollectionNotEmpty while products still reference it.
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	ListImages(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error)
	CreateImage(ctx context.Context, img *entity.ProductImage) error
	GetImage(ctx context.Context, productID, id uuid.UUID) (*entity.ProductImage, error)
	UpdateImage(ctx context.Context, img *entity.ProductImage) error
	DeleteImage(ctx context.Context, productID, id uuid.UUID) error
}
