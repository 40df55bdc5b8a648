package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authpkg "github.com/mikios34/storefront-backend/auth"
)

// Context keys set by RequireAuth.
const (
	CtxUserID     = "user_id"
	CtxRole       = "role"
	CtxCustomerID = "customer_id"
	CtxAdminID    = "admin_id"
)

// bearerToken reads the Authorization header. Browsers cannot set headers on websocket
// upgrades, so ?access_token= is accepted there as well.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" && websocketUpgrade(c) {
		if t := c.Query("access_token"); t != "" {
			return t, true
		}
	}
	if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return authHeader[7:], true
}

func websocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

// RequireAuth validates a Bearer access token, places claims into context and continues.
// Refresh and password reset tokens are rejected.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		claims, err := authpkg.ParseExpecting(secret, tokenString, authpkg.TokenAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		if claims.CustomerID != "" {
			c.Set(CtxCustomerID, claims.CustomerID)
		}
		if claims.AdminID != "" {
			c.Set(CtxAdminID, claims.AdminID)
		}
		c.Next()
	}
}

// RequireRoles ensures the authenticated principal has one of the allowed roles.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	roleSet := map[string]struct{}{}
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if _, ok := roleSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}
