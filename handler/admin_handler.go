package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	adminpkg "github.com/mikios34/storefront-backend/admin"
)

// AdminHandler bundles dependencies for admin-related HTTP handlers.
type AdminHandler struct {
	service adminpkg.AdminService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc adminpkg.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

type registerAdminPayload struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterAdmin registers an admin (creates user, admin and customer profiles). The new admin
// signs in through the regular login endpoint.
func (h *AdminHandler) RegisterAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p registerAdminPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}

		req := adminpkg.RegisterAdminRequest{
			Username:  p.Username,
			Email:     p.Email,
			Password:  p.Password,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		createdAdmin, err := h.service.RegisterAdmin(ctx, req)
		if err != nil {
			respondError(c, err, "failed to register admin")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"admin": gin.H{
				"id":       createdAdmin.ID,
				"user_id":  createdAdmin.UserID,
				"username": p.Username,
			},
		})
	}
}
