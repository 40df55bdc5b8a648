package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	fbAuth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authpkg "github.com/mikios34/storefront-backend/auth"
	"github.com/mikios34/storefront-backend/entity"
)

const secret = "mw-secret"

func init() { gin.SetMode(gin.TestMode) }

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserID), "role": c.GetString(CtxRole), "uid": c.GetString("firebase_uid")})
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	p := &authpkg.Principal{UserID: "u-1", Role: entity.RoleCustomer}
	require.NoError(t, authpkg.IssuePair(secret, p, time.Minute, time.Hour))
	r := newRouter(RequireAuth(secret))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+p.RefreshToken).Code)

	w := do(r, "Bearer "+p.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
}

func TestRequireRoles(t *testing.T) {
	customer := &authpkg.Principal{UserID: "u-1", Role: entity.RoleCustomer}
	admin := &authpkg.Principal{UserID: "u-2", Role: entity.RoleAdmin}
	require.NoError(t, authpkg.IssuePair(secret, customer, time.Minute, time.Hour))
	require.NoError(t, authpkg.IssuePair(secret, admin, time.Minute, time.Hour))
	r := newRouter(RequireAuth(secret), RequireRoles(entity.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+customer.Token).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin.Token).Code)
}

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbAuth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad token")
	}
	return &fbAuth.Token{UID: "fb-1", Claims: map[string]interface{}{"email": "a@example.com"}}, nil
}

func TestRequireFirebaseAuth(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, do(newRouter(RequireFirebaseAuth(nil)), "Bearer good").Code)

	r := newRouter(RequireFirebaseAuth(stubVerifier{}))
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer bad").Code)
	w := do(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"fb-1"`)
}
