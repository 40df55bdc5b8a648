package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

var (
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrUsernameTaken            = errors.New("user with this username already exists")
	ErrEmailTaken               = errors.New("user with this email already exists")
	ErrPasswordMismatch         = errors.New("passwords do not match")
	ErrIncompletePasswordChange = errors.New("old_password, new_password and confirm_password are all required to change the password")
	ErrWrongOldPassword         = errors.New("old password is incorrect")
	ErrEmailNotFound            = errors.New("no user found with given email")
	ErrInvalidResetLink         = errors.New("invalid reset URL")
	ErrUserNotFound             = errors.New("user not found")
)

// RegisterRequest carries the data required to create an account.
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginRequest identifies the user by username or email. One must be provided.
type LoginRequest struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileRequest changes only the non-nil fields. The password changes only when all three
// password fields are set.
type UpdateProfileRequest struct {
	Username        *string
	Email           *string
	FirstName       *string
	LastName        *string
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// Principal is the authenticated identity returned by login, registration and refresh.
type Principal struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	CustomerID   string `json:"customer_id,omitempty"`
	AdminID      string `json:"admin_id,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	Token        string `json:"access,omitempty"`
	RefreshToken string `json:"refresh,omitempty"`
}

// Service provides account and authentication operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Principal, error)
	Login(ctx context.Context, req LoginRequest) (*Principal, error)
	Refresh(ctx context.Context, refreshToken string) (*Principal, error)
	LoginWithFirebase(ctx context.Context, firebaseUID, email string) (*Principal, error)

	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int64, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*entity.User, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uidb64, token, password, confirm string) error
}
