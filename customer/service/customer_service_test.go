package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	customerpkg "github.com/mikios34/storefront-backend/customer"
	"github.com/mikios34/storefront-backend/customer/repository"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/testdb"
)

func newCustomer(t *testing.T, db *gorm.DB, name string) (*entity.User, *entity.Customer) {
	t.Helper()
	u := &entity.User{Username: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	c := &entity.Customer{UserID: u.ID}
	require.NoError(t, db.Create(c).Error)
	return u, c
}

func TestProfileUpdateKeepsMembership(t *testing.T) {
	db := testdb.New(t)
	svc := NewCustomerService(repository.NewGormCustomerRepo(db))
	ctx := context.Background()
	u, _ := newCustomer(t, db, "alice")

	birth := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	c, err := svc.UpdateProfile(ctx, u.ID, customerpkg.UpdateCustomerRequest{
		Phone:      "+251911000000",
		BirthDate:  &birth,
		Membership: entity.MembershipGold,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipBronze, c.Membership)

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "+251911000000", got.Phone)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "1990-04-02", got.BirthDate.Format("2006-01-02"))
	require.NotNil(t, got.User)
	assert.Equal(t, "alice", got.User.Username)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, customerpkg.ErrCustomerNotFound)
}

func TestAdminUpdateAndList(t *testing.T) {
	db := testdb.New(t)
	svc := NewCustomerService(repository.NewGormCustomerRepo(db))
	ctx := context.Background()
	_, c := newCustomer(t, db, "alice")
	newCustomer(t, db, "bob")

	_, err := svc.UpdateCustomer(ctx, c.ID, customerpkg.UpdateCustomerRequest{Membership: "Z"})
	assert.ErrorIs(t, err, customerpkg.ErrInvalidMembership)

	updated, err := svc.UpdateCustomer(ctx, c.ID, customerpkg.UpdateCustomerRequest{Membership: entity.MembershipSilver})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipSilver, updated.Membership)

	list, total, err := svc.ListCustomers(ctx, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 1)
}

func TestDeleteCustomerWithOrdersIsBlocked(t *testing.T) {
	db := testdb.New(t)
	svc := NewCustomerService(repository.NewGormCustomerRepo(db))
	ctx := context.Background()
	_, buyer := newCustomer(t, db, "alice")
	_, idle := newCustomer(t, db, "bob")

	require.NoError(t, db.Omit("Items").Create(&entity.Order{CustomerID: buyer.ID}).Error)
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, buyer.ID), customerpkg.ErrCustomerHasOrders)

	require.NoError(t, svc.DeleteCustomer(ctx, idle.ID))
	_, err := svc.GetCustomer(ctx, idle.ID)
	assert.ErrorIs(t, err, customerpkg.ErrCustomerNotFound)
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, idle.ID), customerpkg.ErrCustomerNotFound)
}
