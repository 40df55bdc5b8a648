package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// Repository exposes user storage used by registration, login and profile management.
type Repository interface {
	// CreateUserWithCustomer stores the user and its customer profile atomically.
	CreateUserWithCustomer(ctx context.Context, u *entity.User, c *entity.Customer) error
	// UpdateUser saves username, email, names and password hash together.
	UpdateUser(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	LinkFirebaseUID(ctx context.Context, id uuid.UUID, uid string) error

	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*entity.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// UsernameTaken and EmailTaken ignore the user identified by exclude (uuid.Nil to check everyone).
	UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)

	GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*entity.Customer, error)
	GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*entity.Admin, error)
}
