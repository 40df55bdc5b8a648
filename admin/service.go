package admin

import (
	"context"
	"errors"

	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrUsernameTaken = errors.New("user with this username already exists")
	ErrEmailTaken    = errors.New("user with this email already exists")
)

// RegisterAdminRequest carries the data required to register an admin.
type RegisterAdminRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AdminService exposes admin-related business operations.
type AdminService interface {
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*entity.Admin, error)
	// EnsureAdmin registers the admin unless the username is already taken. It reports whether
	// an account was created.
	EnsureAdmin(ctx context.Context, req RegisterAdminRequest) (bool, error)
}
