package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mikios34/storefront-backend/entity"
	"github.com/mikios34/storefront-backend/middleware"
)

// pathUUID parses a path parameter. A malformed id cannot match anything, so it is a 404.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "detail": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user id set by RequireAuth.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetString(middleware.CtxRole) == entity.RoleAdmin
}
