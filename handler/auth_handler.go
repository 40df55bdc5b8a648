package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authpkg "github.com/mikios34/storefront-backend/auth"
)

type AuthHandler struct {
	service authpkg.Service
}

func NewAuthHandler(svc authpkg.Service) *AuthHandler { return &AuthHandler{service: svc} }

type registerPayload struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a user with its customer profile and returns a token pair.
func (h *AuthHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p registerPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		principal, err := h.service.Register(ctx, authpkg.RegisterRequest{
			Username:  p.Username,
			Email:     p.Email,
			Password:  p.Password,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		})
		if err != nil {
			respondError(c, err, "failed to register user")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"principal": principal})
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p loginPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		if p.Username == "" && p.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "either username or email is required"})
			return
		}
		req := authpkg.LoginRequest{Username: p.Username, Email: p.Email, Password: p.Password}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		principal, err := h.service.Login(ctx, req)
		if err != nil {
			respondError(c, err, "login failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": principal})
	}
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p refreshPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		if p.RefreshToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		principal, err := h.service.Refresh(ctx, p.RefreshToken)
		if err != nil {
			respondError(c, err, "refresh failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": principal})
	}
}

// FirebaseLogin exchanges a verified Firebase ID token for our own token pair.
// RequireFirebaseAuth must run first.
func (h *AuthHandler) FirebaseLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "firebase_uid missing in context"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		principal, err := h.service.LoginWithFirebase(ctx, uid, c.GetString("firebase_email"))
		if err != nil {
			respondError(c, err, "firebase login failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": principal})
	}
}

type passwordResetPayload struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) RequestPasswordReset() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p passwordResetPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.RequestPasswordReset(ctx, p.Email); err != nil {
			respondError(c, err, "failed to send password reset email")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "Password reset email sent to the specified email address"})
	}
}

type passwordResetConfirmPayload struct {
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *AuthHandler) ConfirmPasswordReset() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p passwordResetConfirmPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		err := h.service.ConfirmPasswordReset(ctx, c.Param("uidb64"), c.Param("token"), p.Password, p.ConfirmPassword)
		if err != nil {
			respondError(c, err, "failed to reset password")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "Password has been reset."})
	}
}

// ListUsers is admin only.
func (h *AuthHandler) ListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		pg, ok := parsePage(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		users, total, err := h.service.ListUsers(ctx, pg.limit(), pg.offset())
		if err != nil {
			respondError(c, err, "failed to list users")
			return
		}
		c.JSON(http.StatusOK, paginated(c, pg, total, users))
	}
}

func (h *AuthHandler) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		user, err := h.service.GetUser(ctx, uid)
		if err != nil {
			respondError(c, err, "failed to load profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type updateProfilePayload struct {
	Username        *string `json:"username" binding:"omitempty,max=150"`
	Email           *string `json:"email" binding:"omitempty,email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	OldPassword     string  `json:"old_password"`
	NewPassword     string  `json:"new_password"`
	ConfirmPassword string  `json:"confirm_password"`
}

// UpdateProfile edits the caller's account. The password changes only when old, new and
// confirmation are all given.
func (h *AuthHandler) UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		var p updateProfilePayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		user, err := h.service.UpdateProfile(ctx, uid, authpkg.UpdateProfileRequest{
			Username:        p.Username,
			Email:           p.Email,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			OldPassword:     p.OldPassword,
			NewPassword:     p.NewPassword,
			ConfirmPassword: p.ConfirmPassword,
		})
		if err != nil {
			respondError(c, err, "failed to update profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
