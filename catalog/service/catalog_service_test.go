package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/mikios34/storefront-backend/cache"
	catalogpkg "github.com/mikios34/storefront-backend/catalog"
	"github.com/mikios34/storefront-backend/catalog/repository"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/testdb"
)

type memCache struct{ data map[string][]byte }

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type removedFiles struct{ urls []string }

func (r *removedFiles) Remove(url string) error {
	r.urls = append(r.urls, url)
	return nil
}

type fixture struct {
	db    *gorm.DB
	svc   catalogpkg.Service
	cache *memCache
	files *removedFiles
}

func newFixture(t *testing.T) *fixture {
	db := testdb.New(t)
	f := &fixture{db: db, cache: newMemCache(), files: &removedFiles{}}
	f.svc = NewCatalogService(repository.NewGormCatalogRepo(db), f.cache, time.Minute, f.files)
	return f
}

func (f *fixture) collection(t *testing.T, title string) *entity.Collection {
	t.Helper()
	c, err := f.svc.CreateCollection(context.Background(), catalogpkg.CollectionInput{Title: title})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, c *entity.Collection, slug, price string) *entity.Product {
	t.Helper()
	p, err := f.svc.CreateProduct(context.Background(), catalogpkg.ProductInput{
		Title:        "Product " + slug,
		Slug:         slug,
		Description:  "about " + slug,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    5,
		CollectionID: c.ID,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.collection(t, "Beverages")

	p := f.product(t, c, "tea", "10.00")
	assert.True(t, p.PriceWithTax.Equal(decimal.RequireFromString("11")))

	in := catalogpkg.ProductInput{Title: "x", Slug: "cheap", UnitPrice: decimal.RequireFromString("0.5"), CollectionID: c.ID}
	_, err := f.svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, catalogpkg.ErrInvalidPrice)

	for _, price := range []string{"123456.789", "10000", "1.005"} {
		in = catalogpkg.ProductInput{Title: "x", Slug: "bad-" + price, UnitPrice: decimal.RequireFromString(price), CollectionID: c.ID}
		_, err = f.svc.CreateProduct(ctx, in)
		assert.ErrorIs(t, err, catalogpkg.ErrInvalidPrice, price)
	}

	in = catalogpkg.ProductInput{Title: "x", Slug: "top", UnitPrice: decimal.RequireFromString("9999.990"), CollectionID: c.ID}
	_, err = f.svc.CreateProduct(ctx, in)
	assert.NoError(t, err)

	in = catalogpkg.ProductInput{Title: "x", Slug: "neg", UnitPrice: decimal.NewFromInt(2), Inventory: -1, CollectionID: c.ID}
	_, err = f.svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, catalogpkg.ErrInvalidInventory)

	in = catalogpkg.ProductInput{Title: "x", Slug: "orphan", UnitPrice: decimal.NewFromInt(2), CollectionID: uuid.New()}
	_, err = f.svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, catalogpkg.ErrUnknownCollection)

	in = catalogpkg.ProductInput{Title: "x", Slug: "tea", UnitPrice: decimal.NewFromInt(2), CollectionID: c.ID}
	_, err = f.svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, catalogpkg.ErrSlugTaken)
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	drinks := f.collection(t, "Drinks")
	snacks := f.collection(t, "Snacks")
	f.product(t, drinks, "green-tea", "4.00")
	f.product(t, drinks, "coffee", "7.50")
	f.product(t, snacks, "chips", "2.25")

	all, total, err := f.svc.ListProducts(ctx, catalogpkg.ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	got, total, err := f.svc.ListProducts(ctx, catalogpkg.ProductFilter{Search: "TEA"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "green-tea", got[0].Slug)

	got, _, err = f.svc.ListProducts(ctx, catalogpkg.ProductFilter{CollectionID: &drinks.ID, Ordering: "-unit_price"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "coffee", got[0].Slug)

	lo, hi := decimal.NewFromInt(3), decimal.NewFromInt(5)
	got, _, err = f.svc.ListProducts(ctx, catalogpkg.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "green-tea", got[0].Slug)

	got, total, err = f.svc.ListProducts(ctx, catalogpkg.ProductFilter{Ordering: "unit_price", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "coffee", got[0].Slug)

	_, _, err = f.svc.ListProducts(ctx, catalogpkg.ProductFilter{Ordering: "title; DROP TABLE products"})
	assert.ErrorIs(t, err, catalogpkg.ErrInvalidOrdering)
}

func TestGetProductUsesCacheAndUpdateEvicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.collection(t, "Drinks")
	p := f.product(t, c, "tea", "4.00")

	_, err := f.svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Contains(t, f.cache.data, productKey(p.ID))

	// a stale database row proves the second read is served from cache
	require.NoError(t, f.db.Model(&entity.Product{}).Where("id = ?", p.ID).Update("title", "changed behind our back").Error)
	cached, err := f.svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product tea", cached.Title)

	price := decimal.RequireFromString("5.00")
	updated, err := f.svc.UpdateProduct(ctx, p.ID, catalogpkg.ProductPatch{UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "changed behind our back", updated.Title)
	assert.NotContains(t, f.cache.data, productKey(p.ID))

	fresh, err := f.svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fresh.UnitPrice.Equal(price))
	assert.True(t, fresh.PriceWithTax.Equal(decimal.RequireFromString("5.5")))

	_, err = f.svc.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, catalogpkg.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.collection(t, "Drinks")
	sold := f.product(t, c, "sold", "4.00")
	spare := f.product(t, c, "spare", "4.00")

	order := entity.Order{CustomerID: uuid.New()}
	require.NoError(t, f.db.Create(&order).Error)
	require.NoError(t, f.db.Create(&entity.OrderItem{OrderID: order.ID, ProductID: sold.ID, Quantity: 1, UnitPrice: sold.UnitPrice}).Error)
	assert.ErrorIs(t, f.svc.DeleteProduct(ctx, sold.ID), catalogpkg.ErrProductHasOrderItems)

	_, err := f.svc.AddImage(ctx, spare.ID, "/uploads/products/a.png")
	require.NoError(t, err)
	cart := entity.Cart{}
	require.NoError(t, f.db.Create(&cart).Error)
	require.NoError(t, f.db.Create(&entity.CartItem{CartID: cart.ID, ProductID: spare.ID, Quantity: 2}).Error)
	_, err = f.svc.UpdateCollection(ctx, c.ID, catalogpkg.CollectionInput{Title: c.Title, FeaturedProductID: &spare.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(ctx, spare.ID))
	assert.Equal(t, []string{"/uploads/products/a.png"}, f.files.urls)

	var lines int64
	f.db.Model(&entity.CartItem{}).Where("product_id = ?", spare.ID).Count(&lines)
	assert.Zero(t, lines)
	got, err := f.svc.GetCollection(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FeaturedProductID)

	assert.ErrorIs(t, f.svc.DeleteProduct(ctx, spare.ID), catalogpkg.ErrProductNotFound)
}

func TestCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	full := f.collection(t, "Full")
	empty := f.collection(t, "Empty")
	f.product(t, full, "a", "1.00")
	f.product(t, full, "b", "2.00")

	list, err := f.svc.ListCollections(ctx)
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, c := range list {
		counts[c.Title] = c.ProductCount
	}
	assert.Equal(t, map[string]int64{"Full": 2, "Empty": 0}, counts)

	got, err := f.svc.GetCollection(ctx, full.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ProductCount)

	missing := uuid.New()
	_, err = f.svc.UpdateCollection(ctx, empty.ID, catalogpkg.CollectionInput{Title: "Empty", FeaturedProductID: &missing})
	assert.ErrorIs(t, err, catalogpkg.ErrUnknownProduct)

	assert.ErrorIs(t, f.svc.DeleteCollection(ctx, full.ID), catalogpkg.ErrCollectionNotEmpty)
	require.NoError(t, f.svc.DeleteCollection(ctx, empty.ID))
	assert.ErrorIs(t, f.svc.DeleteCollection(ctx, empty.ID), catalogpkg.ErrCollectionNotFound)
}

func TestProductImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.collection(t, "Drinks")
	p := f.product(t, c, "tea", "4.00")

	_, err := f.svc.ListImages(ctx, uuid.New())
	assert.ErrorIs(t, err, catalogpkg.ErrProductNotFound)

	img, err := f.svc.AddImage(ctx, p.ID, "/uploads/products/1.png")
	require.NoError(t, err)

	replaced, err := f.svc.ReplaceImage(ctx, p.ID, img.ID, "/uploads/products/2.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/2.png", replaced.Image)
	assert.Equal(t, []string{"/uploads/products/1.png"}, f.files.urls)

	imgs, err := f.svc.ListImages(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 1)

	_, err = f.svc.GetImage(ctx, p.ID, uuid.New())
	assert.ErrorIs(t, err, catalogpkg.ErrImageNotFound)

	require.NoError(t, f.svc.DeleteImage(ctx, p.ID, img.ID))
	assert.ErrorIs(t, f.svc.DeleteImage(ctx, p.ID, img.ID), catalogpkg.ErrImageNotFound)
}

func TestExportProducts(t *testing.T) {
	f := newFixture(t)
	c := f.collection(t, "Drinks")
	f.product(t, c, "tea", "4.00")

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportProducts(context.Background(), &buf))

	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := book.Sheet["Products"]
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Title", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "tea", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "4.00", sheet.Rows[1].Cells[4].Value)
}
