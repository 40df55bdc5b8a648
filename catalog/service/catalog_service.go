package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/cache"
	catalogpkg "github.com/mikios34/storefront-backend/catalog"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

// catalogService implements catalog.Service. Product details are cached by id and evicted on writes.
type catalogService struct {
	repo     catalogpkg.Repository
	cache    cache.Store
	cacheTTL time.Duration
	files    catalogpkg.FileRemover
}

// NewCatalogService constructs a catalog.Service. files may be nil when uploads are not stored locally.
func NewCatalogService(repo catalogpkg.Repository, store cache.Store, cacheTTL time.Duration, files catalogpkg.FileRemover) catalogpkg.Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &catalogService{repo: repo, cache: store, cacheTTL: cacheTTL, files: files}
}

func productKey(id uuid.UUID) string { return "product:" + id.String() }

func (s *catalogService) ListProducts(ctx context.Context, f catalogpkg.ProductFilter) ([]entity.Product, int64, error) {
	if f.Ordering != "" {
		if _, ok := catalogpkg.Orderings[f.Ordering]; !ok {
			return nil, 0, catalogpkg.ErrInvalidOrdering
		}
	}
	return s.repo.ListProducts(ctx, f)
}

func (s *catalogService) CreateProduct(ctx context.Context, in catalogpkg.ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice,
		Inventory:    in.Inventory,
		CollectionID: in.CollectionID,
	}
	if err := s.validateProduct(ctx, p, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	p.Images = []entity.ProductImage{}
	slog.Info("product created", "product_id", p.ID, "slug", p.Slug)
	return p, nil
}

// GetProduct reads through the cache. Cache failures fall back to the database.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	key := productKey(id)
	if b, err := s.cache.Get(ctx, key); err == nil {
		var p entity.Product
		if jerr := json.Unmarshal(b, &p); jerr == nil {
			return &p, nil
		}
		slog.Warn("discarding undecodable cached product", "product_id", id)
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("product cache read failed", "product_id", id, "err", err)
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogpkg.ErrProductNotFound
		}
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
			slog.Warn("product cache write failed", "product_id", id, "err", err)
		}
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch catalogpkg.ProductPatch) (*entity.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogpkg.ErrProductNotFound
		}
		return nil, err
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.Inventory != nil {
		p.Inventory = *patch.Inventory
	}
	if patch.CollectionID != nil {
		p.CollectionID = *patch.CollectionID
	}
	if err := s.validateProduct(ctx, p, p.ID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	urls, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogpkg.ErrProductNotFound
		}
		return err
	}
	s.evict(ctx, id)
	for _, u := range urls {
		s.removeFile(u)
	}
	slog.Info("product deleted", "product_id", id, "images", len(urls))
	return nil
}

func (s *catalogService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.repo.ListAllProducts(ctx)
	if err != nil {
		return err
	}
	return catalogpkg.WriteProductsXLSX(w, products)
}

func (s *catalogService) validateProduct(ctx context.Context, p *entity.Product, self uuid.UUID) error {
	p.Slug = strings.TrimSpace(p.Slug)
	if p.UnitPrice.LessThan(catalogpkg.MinUnitPrice) || p.UnitPrice.GreaterThan(catalogpkg.MaxUnitPrice) {
		return catalogpkg.ErrInvalidPrice
	}
	if !p.UnitPrice.Equal(p.UnitPrice.Truncate(2)) {
		return catalogpkg.ErrInvalidPrice
	}
	if p.Inventory < 0 {
		return catalogpkg.ErrInvalidInventory
	}
	if _, err := s.repo.GetCollection(ctx, p.CollectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogpkg.ErrUnknownCollection
		}
		return err
	}
	taken, err := s.repo.SlugTaken(ctx, p.Slug, self)
	if err != nil {
		return err
	}
	if taken {
		return catalogpkg.ErrSlugTaken
	}
	return nil
}

func (s *catalogService) evict(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, productKey(id)); err != nil {
		slog.Warn("product cache eviction failed", "product_id", id, "err", err)
	}
}

func (s *catalogService) removeFile(url string) {
	if s.files == nil {
		return
	}
	if err := s.files.Remove(url); err != nil {
		slog.Warn("failed to remove image file", "url", url, "err", err)
	}
}

func (s *catalogService) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	return s.repo.ListCollections(ctx)
}

func (s *catalogService) CreateCollection(ctx context.Context, in catalogpkg.CollectionInput) (*entity.Collection, error) {
	if err := s.checkFeatured(ctx, in.FeaturedProductID); err != nil {
		return nil, err
	}
	c := &entity.Collection{Title: in.Title, FeaturedProductID: in.FeaturedProductID}
	if err := s.repo.CreateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) GetCollection(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	c, err := s.repo.GetCollection(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogpkg.ErrCollectionNotFound
	}
	return c, err
}

func (s *catalogService) UpdateCollection(ctx context.Context, id uuid.UUID, in catalogpkg.CollectionInput) (*entity.Collection, error) {
	c, err := s.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkFeatured(ctx, in.FeaturedProductID); err != nil {
		return nil, err
	}
	c.Title = in.Title
	c.FeaturedProductID = in.FeaturedProductID
	if err := s.repo.UpdateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteCollection(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalogpkg.ErrCollectionNotFound
	}
	return err
}

func (s *catalogService) checkFeatured(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := s.repo.ProductExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return catalogpkg.ErrUnknownProduct
	}
	return nil
}

func (s *catalogService) requireProduct(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.ProductExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return catalogpkg.ErrProductNotFound
	}
	return nil
}

func (s *catalogService) ListImages(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, productID)
}

func (s *catalogService) AddImage(ctx context.Context, productID uuid.UUID, url string) (*entity.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	img := &entity.ProductImage{ProductID: productID, Image: url}
	if err := s.repo.CreateImage(ctx, img); err != nil {
		return nil, err
	}
	s.evict(ctx, productID)
	return img, nil
}

func (s *catalogService) GetImage(ctx context.Context, productID, imageID uuid.UUID) (*entity.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	img, err := s.repo.GetImage(ctx, productID, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogpkg.ErrImageNotFound
	}
	return img, err
}

func (s *catalogService) ReplaceImage(ctx context.Context, productID, imageID uuid.UUID, url string) (*entity.ProductImage, error) {
	img, err := s.GetImage(ctx, productID, imageID)
	if err != nil {
		return nil, err
	}
	old := img.Image
	img.Image = url
	if err := s.repo.UpdateImage(ctx, img); err != nil {
		return nil, err
	}
	s.evict(ctx, productID)
	if old != url {
		s.removeFile(old)
	}
	return img, nil
}

func (s *catalogService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	img, err := s.GetImage(ctx, productID, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, productID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogpkg.ErrImageNotFound
		}
		return err
	}
	s.evict(ctx, productID)
	s.removeFile(img.Image)
	return nil
}
