package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	authpkg "github.com/mikios34/storefront-backend/auth"
	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/mailer"
	"gorm.io/gorm"
)

// Options holds token and hashing settings.
type Options struct {
	Secret           string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	PasswordResetTTL time.Duration
	// PasswordResetURL is the base of the link mailed to users; uid and token are appended as path segments.
	PasswordResetURL string
	BcryptCost       int
}

type authService struct {
	repo authpkg.Repository
	mail mailer.Sender
	opts Options
}

func NewAuthService(repo authpkg.Repository, mail mailer.Sender, opts Options) authpkg.Service {
	return &authService{repo: repo, mail: mail, opts: opts}
}

// Register creates a base User with role "customer" plus its Customer profile and signs a token pair.
func (s *authService) Register(ctx context.Context, req authpkg.RegisterRequest) (*authpkg.Principal, error) {
	if err := s.ensureUnique(ctx, req.Username, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := authpkg.HashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:  req.Username,
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Role:      entity.RoleCustomer,
	}
	c := &entity.Customer{Membership: entity.MembershipBronze}
	if err := s.repo.CreateUserWithCustomer(ctx, u, c); err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", u.ID, "customer_id", c.ID)

	p := &authpkg.Principal{
		UserID:     u.ID.String(),
		Role:       u.Role,
		CustomerID: c.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
	}
	if err := authpkg.IssuePair(s.opts.Secret, p, s.opts.AccessTTL, s.opts.RefreshTTL); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *authService) Login(ctx context.Context, req authpkg.LoginRequest) (*authpkg.Principal, error) {
	if req.Username == "" && req.Email == "" {
		return nil, errors.New("either username or email is required")
	}

	var user *entity.User
	var err error
	if req.Username != "" {
		user, err = s.repo.GetUserByUsername(ctx, req.Username)
	} else {
		user, err = s.repo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authpkg.ErrInvalidCredentials
		}
		return nil, err
	}
	if !authpkg.CheckPassword(user.Password, req.Password) {
		return nil, authpkg.ErrInvalidCredentials
	}
	return s.principalFor(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*authpkg.Principal, error) {
	claims, err := authpkg.ParseExpecting(s.opts.Secret, refreshToken, authpkg.TokenRefresh)
	if err != nil {
		return nil, authpkg.ErrInvalidToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, authpkg.ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authpkg.ErrInvalidToken
		}
		return nil, err
	}
	return s.principalFor(ctx, user)
}

// LoginWithFirebase signs in a user whose Firebase ID token was already verified by middleware.
// The first sign-in links the Firebase uid to the account with the matching email.
func (s *authService) LoginWithFirebase(ctx context.Context, firebaseUID, email string) (*authpkg.Principal, error) {
	user, err := s.repo.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return s.principalFor(ctx, user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if email == "" {
		return nil, authpkg.ErrInvalidCredentials
	}
	user, err = s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authpkg.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.repo.LinkFirebaseUID(ctx, user.ID, firebaseUID); err != nil {
		return nil, err
	}
	slog.Info("linked firebase account", "user_id", user.ID)
	return s.principalFor(ctx, user)
}

func (s *authService) principalFor(ctx context.Context, user *entity.User) (*authpkg.Principal, error) {
	p := &authpkg.Principal{
		UserID:   user.ID.String(),
		Role:     user.Role,
		Username: user.Username,
		Email:    user.Email,
	}
	if c, err := s.repo.GetCustomerByUserID(ctx, user.ID); err == nil {
		p.CustomerID = c.ID.String()
	}
	if user.IsAdmin() {
		if a, err := s.repo.GetAdminByUserID(ctx, user.ID); err == nil {
			p.AdminID = a.ID.String()
		}
	}
	if err := authpkg.IssuePair(s.opts.Secret, p, s.opts.AccessTTL, s.opts.RefreshTTL); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authpkg.ErrUserNotFound
	}
	return u, err
}

func (s *authService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int64, error) {
	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateProfile edits the caller's user record. See UpdateProfileRequest for the password rules.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req authpkg.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	newHash, err := s.passwordChange(user, req)
	if err != nil {
		return nil, err
	}

	username, email := "", ""
	if req.Username != nil && *req.Username != user.Username {
		username = *req.Username
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		email = strings.ToLower(*req.Email)
	}
	if err := s.ensureUnique(ctx, username, email, user.ID); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if newHash != "" {
		user.Password = newHash
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if newHash != "" {
		slog.Info("password changed", "user_id", user.ID)
	}
	return user, nil
}

// passwordChange validates the password fields and returns the new hash, or "" when no change was requested.
func (s *authService) passwordChange(user *entity.User, req authpkg.UpdateProfileRequest) (string, error) {
	set := 0
	for _, v := range []string{req.OldPassword, req.NewPassword, req.ConfirmPassword} {
		if v != "" {
			set++
		}
	}
	switch set {
	case 0:
		return "", nil
	case 3:
	default:
		return "", authpkg.ErrIncompletePasswordChange
	}
	if req.NewPassword != req.ConfirmPassword {
		return "", authpkg.ErrPasswordMismatch
	}
	if !authpkg.CheckPassword(user.Password, req.OldPassword) {
		return "", authpkg.ErrWrongOldPassword
	}
	return authpkg.HashPassword(req.NewPassword, s.opts.BcryptCost)
}

func (s *authService) ensureUnique(ctx context.Context, username, email string, exclude uuid.UUID) error {
	if username != "" {
		taken, err := s.repo.UsernameTaken(ctx, username, exclude)
		if err != nil {
			return err
		}
		if taken {
			return authpkg.ErrUsernameTaken
		}
	}
	if email != "" {
		taken, err := s.repo.EmailTaken(ctx, strings.ToLower(email), exclude)
		if err != nil {
			return err
		}
		if taken {
			return authpkg.ErrEmailTaken
		}
	}
	return nil
}

// RequestPasswordReset mails a reset link containing the base64 user id and a signed token.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authpkg.ErrEmailNotFound
		}
		return err
	}
	token, err := authpkg.MakeResetToken(s.opts.Secret, user, s.opts.PasswordResetTTL)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.opts.PasswordResetURL, "/"), authpkg.EncodeUID(user.ID), token)
	body := "Please click on this link to reset your password: " + link
	if err := s.mail.Send(ctx, user.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	slog.Info("password reset email sent", "user_id", user.ID)
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, uidb64, token, password, confirm string) error {
	if password != confirm {
		return authpkg.ErrPasswordMismatch
	}
	id, err := authpkg.DecodeUID(uidb64)
	if err != nil {
		return authpkg.ErrInvalidResetLink
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authpkg.ErrInvalidResetLink
		}
		return err
	}
	if !authpkg.CheckResetToken(s.opts.Secret, user, token) {
		return authpkg.ErrInvalidResetLink
	}
	hash, err := authpkg.HashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	slog.Info("password reset", "user_id", user.ID)
	return nil
}
