package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrImageNotFound        = errors.New("product image not found")
	ErrProductHasOrderItems = errors.New("product cannot be deleted because it is associated with an order item")
	ErrCollectionNotEmpty   = errors.New("collection cannot be deleted because it includes one or more products")
	ErrSlugTaken            = errors.New("product with this slug already exists")
	ErrUnknownCollection    = errors.New("collection does not exist")
	ErrUnknownProduct       = errors.New("product does not exist")
	ErrInvalidPrice         = errors.New("unit price must be between 1 and 9999.99 with at most 2 decimal places")
	ErrInvalidInventory     = errors.New("inventory cannot be negative")
	ErrInvalidOrdering      = errors.New("unsupported ordering")
)

// Unit prices are stored as decimal(6,2).
var (
	MinUnitPrice = decimal.NewFromInt(1)
	MaxUnitPrice = decimal.RequireFromString("9999.99")
)

// ProductInput is the full set of writable product fields.
type ProductInput struct {
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	CollectionID uuid.UUID
}

// ProductPatch changes only the non-nil fields.
type ProductPatch struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *decimal.Decimal
	Inventory    *int
	CollectionID *uuid.UUID
}

// CollectionInput is the set of writable collection fields.
type CollectionInput struct {
	Title             string
	FeaturedProductID *uuid.UUID
}

// Service exposes catalog operations: products, collections and product images.
type Service interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]entity.Product, int64, error)
	CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// ExportProducts writes every product as an xlsx workbook.
	ExportProducts(ctx context.Context, w io.Writer) error

	ListCollections(ctx context.Context) ([]entity.Collection, error)
	CreateCollection(ctx context.Context, in CollectionInput) (*entity.Collection, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, id uuid.UUID, in CollectionInput) (*entity.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	ListImages(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error)
	AddImage(ctx context.Context, productID uuid.UUID, url string) (*entity.ProductImage, error)
	GetImage(ctx context.Context, productID, imageID uuid.UUID) (*entity.ProductImage, error)
	ReplaceImage(ctx context.Context, productID, imageID uuid.UUID, url string) (*entity.ProductImage, error)
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error
}

// FileRemover deletes stored files by their public URL.
type FileRemover interface {
	Remove(publicURL string) error
}
