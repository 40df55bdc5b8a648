package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	cartpkg "github.com/mikios34/storefront-backend/cart"
	"github.com/mikios34/storefront-backend/cart/repository"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/testdb"
)

func seedProducts(t *testing.T, db *gorm.DB, prices ...string) []entity.Product {
	t.Helper()
	c := entity.Collection{Title: "Misc"}
	require.NoError(t, db.Create(&c).Error)
	out := make([]entity.Product, 0, len(prices))
	for _, price := range prices {
		p := entity.Product{
			Title:        "p",
			Slug:         "p-" + uuid.NewString(),
			UnitPrice:    decimal.RequireFromString(price),
			CollectionID: c.ID,
		}
		require.NoError(t, db.Create(&p).Error)
		out = append(out, p)
	}
	return out
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := testdb.New(t)
	svc := NewCartService(repository.NewGormCartRepo(db))
	ctx := context.Background()
	products := seedProducts(t, db, "2.50", "10.00")

	c, err := svc.CreateCart(ctx)
	require.NoError(t, err)

	first, err := svc.AddItem(ctx, c.ID, products[0].ID, 2)
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, c.ID, products[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	_, err = svc.AddItem(ctx, c.ID, products[1].ID, 1)
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	got, err := svc.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	// 5 * 2.50 + 1 * 10.00
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("22.5")), got.TotalPrice.String())
}

func TestAddItemValidation(t *testing.T) {
	db := testdb.New(t)
	svc := NewCartService(repository.NewGormCartRepo(db))
	ctx := context.Background()
	products := seedProducts(t, db, "1.00")
	c, err := svc.CreateCart(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, c.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, cartpkg.ErrUnknownProduct)

	_, err = svc.AddItem(ctx, c.ID, products[0].ID, 0)
	assert.ErrorIs(t, err, cartpkg.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, uuid.New(), products[0].ID, 1)
	assert.ErrorIs(t, err, cartpkg.ErrCartNotFound)

	_, err = svc.ListItems(ctx, uuid.New())
	assert.ErrorIs(t, err, cartpkg.ErrCartNotFound)
}

func TestItemUpdateAndDelete(t *testing.T) {
	db := testdb.New(t)
	svc := NewCartService(repository.NewGormCartRepo(db))
	ctx := context.Background()
	products := seedProducts(t, db, "1.00")
	c, err := svc.CreateCart(ctx)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, c.ID, products[0].ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(ctx, c.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = svc.UpdateItemQuantity(ctx, c.ID, item.ID, 0)
	assert.ErrorIs(t, err, cartpkg.ErrInvalidQuantity)

	// items are only reachable through their own cart
	other, err := svc.CreateCart(ctx)
	require.NoError(t, err)
	_, err = svc.GetItem(ctx, other.ID, item.ID)
	assert.ErrorIs(t, err, cartpkg.ErrItemNotFound)

	require.NoError(t, svc.DeleteItem(ctx, c.ID, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, c.ID, item.ID), cartpkg.ErrItemNotFound)
}

func TestDeleteCartRemovesItems(t *testing.T) {
	db := testdb.New(t)
	svc := NewCartService(repository.NewGormCartRepo(db))
	ctx := context.Background()
	products := seedProducts(t, db, "1.00")
	c, err := svc.CreateCart(ctx)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, c.ID, products[0].ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCart(ctx, c.ID))
	var n int64
	db.Model(&entity.CartItem{}).Where("cart_id = ?", c.ID).Count(&n)
	assert.Zero(t, n)

	_, err = svc.GetCart(ctx, c.ID)
	assert.ErrorIs(t, err, cartpkg.ErrCartNotFound)
	assert.ErrorIs(t, svc.DeleteCart(ctx, c.ID), cartpkg.ErrCartNotFound)
}
