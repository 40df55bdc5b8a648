package middleware

import (
	"context"
	"net/http"

	fbAuth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
)

// IDTokenVerifier is the part of the Firebase auth client used to check ID tokens.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbAuth.Token, error)
}

// RequireFirebaseAuth validates a Firebase ID token (Bearer) and sets
// `firebase_uid` and, when the token carries one, `firebase_email` in context.
func RequireFirebaseAuth(client IDTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "firebase auth not configured"})
			return
		}

		idToken, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired firebase token"})
			return
		}

		c.Set("firebase_uid", token.UID)
		if email, ok := token.Claims["email"].(string); ok && email != "" {
			c.Set("firebase_email", email)
		}
		c.Next()
	}
}
