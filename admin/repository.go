package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// AdminRepository specifies admin related database operations.
type AdminRepository interface {
	// StoreAdminUser creates the user together with its admin and customer profiles.
	StoreAdminUser(ctx context.Context, u *entity.User, a *entity.Admin, c *entity.Customer) error
	GetAdminByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
