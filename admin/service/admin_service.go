package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	adminpkg "github.com/mikios34/storefront-backend/admin"
	"github.com/mikios34/storefront-backend/auth"
	"github.com/mikios34/storefront-backend/entity"
)

// adminService implements AdminService.
type adminService struct {
	repo       adminpkg.AdminRepository
	bcryptCost int
}

// NewAdminService constructs an AdminService backed by the provided repository.
func NewAdminService(repo adminpkg.AdminRepository, bcryptCost int) adminpkg.AdminService {
	return &adminService{repo: repo, bcryptCost: bcryptCost}
}

// RegisterAdmin creates a base User with role "admin", an Admin profile and a Customer profile
// so admins can also shop.
func (s *adminService) RegisterAdmin(ctx context.Context, req adminpkg.RegisterAdminRequest) (*entity.Admin, error) {
	email := strings.ToLower(req.Email)
	exists, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, adminpkg.ErrUsernameTaken
	}
	exists, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, adminpkg.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:  req.Username,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Role:      entity.RoleAdmin,
	}
	a := &entity.Admin{Active: true}
	c := &entity.Customer{Membership: entity.MembershipBronze}
	if err := s.repo.StoreAdminUser(ctx, u, a, c); err != nil {
		return nil, err
	}
	slog.Info("admin registered", "user_id", u.ID, "admin_id", a.ID)
	return a, nil
}

func (s *adminService) EnsureAdmin(ctx context.Context, req adminpkg.RegisterAdminRequest) (bool, error) {
	_, err := s.RegisterAdmin(ctx, req)
	if errors.Is(err, adminpkg.ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
