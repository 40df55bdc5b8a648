package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	catalogpkg "github.com/mikios34/storefront-backend/catalog"
	"github.com/mikios34/storefront-backend/entity"
	"gorm.io/gorm"
)

const productCountSelect = "collections.*, (SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id) AS product_count"

// GormCatalogRepo implements catalog.Repository using GORM.
type GormCatalogRepo struct {
	db *gorm.DB
}

func NewGormCatalogRepo(db *gorm.DB) catalogpkg.Repository {
	return &GormCatalogRepo{db: db}
}

func (r *GormCatalogRepo) filtered(ctx context.Context, f catalogpkg.ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Product{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if f.CollectionID != nil {
		q = q.Where("collection_id = ?", *f.CollectionID)
	}
	if f.MinPrice != nil {
		q = q.Where("unit_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("unit_price <= ?", *f.MaxPrice)
	}
	return q
}

func (r *GormCatalogRepo) ListProducts(ctx context.Context, f catalogpkg.ProductFilter) ([]entity.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := catalogpkg.Orderings[f.Ordering]
	if !ok {
		order = "title ASC, id ASC"
	}
	q := r.filtered(ctx, f).Preload("Images").Order(order)
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var products []entity.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormCatalogRepo) ListAllProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormCatalogRepo) CreateProduct(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Omit("Collection", "Images").Create(p).Error
}

func (r *GormCatalogRepo) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Preload("Images").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormCatalogRepo) UpdateProduct(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Model(p).
		Select("title", "slug", "description", "unit_price", "inventory", "collection_id").
		Updates(p).Error
}

func (r *GormCatalogRepo) DeleteProduct(ctx context.Context, id uuid.UUID) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entity.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&entity.OrderItem{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return catalogpkg.ErrProductHasOrderItems
		}

		if err := tx.Model(&entity.ProductImage{}).Where("product_id = ?", id).Pluck("image", &urls).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Collection{}).Where("featured_product_id = ?", id).
			Update("featured_product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *GormCatalogRepo) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCatalogRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&entity.Product{}).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCatalogRepo) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	var cs []entity.Collection
	if err := r.db.WithContext(ctx).Model(&entity.Collection{}).
		Select(productCountSelect).Order("title ASC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *GormCatalogRepo) CreateCollection(ctx context.Context, c *entity.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCatalogRepo) GetCollection(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	var c entity.Collection
	if err := r.db.WithContext(ctx).Model(&entity.Collection{}).
		Select(productCountSelect).Where("collections.id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCatalogRepo) UpdateCollection(ctx context.Context, c *entity.Collection) error {
	return r.db.WithContext(ctx).Model(c).Select("title", "featured_product_id").Updates(c).Error
}

func (r *GormCatalogRepo) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c entity.Collection
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return err
		}
		var products int64
		if err := tx.Model(&entity.Product{}).Where("collection_id = ?", id).Count(&products).Error; err != nil {
			return err
		}
		if products > 0 {
			return catalogpkg.ErrCollectionNotEmpty
		}
		return tx.Delete(&entity.Collection{}, "id = ?", id).Error
	})
}

func (r *GormCatalogRepo) ListImages(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error) {
	var imgs []entity.ProductImage
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at ASC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}

func (r *GormCatalogRepo) CreateImage(ctx context.Context, img *entity.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GormCatalogRepo) GetImage(ctx context.Context, productID, id uuid.UUID) (*entity.ProductImage, error) {
	var img entity.ProductImage
	if err := r.db.WithContext(ctx).First(&img, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *GormCatalogRepo) UpdateImage(ctx context.Context, img *entity.ProductImage) error {
	return r.db.WithContext(ctx).Model(img).Update("image", img.Image).Error
}

func (r *GormCatalogRepo) DeleteImage(ctx context.Context, productID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(&entity.ProductImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
