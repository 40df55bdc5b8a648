package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in Claims.TokenType.
const (
	TokenAccess        = "access"
	TokenRefresh       = "refresh"
	TokenPasswordReset = "password_reset"
)

const issuer = "storefront-backend"

// ErrWrongTokenType is returned when a valid token is presented where another type is expected.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims carries standard and custom claims for our tokens.
type Claims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	AdminID    string `json:"admin_id,omitempty"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// SignJWT creates a signed JWT containing the role and profile identifiers.
func SignJWT(secret string, principal *Principal, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     principal.UserID,
		Role:       principal.Role,
		CustomerID: principal.CustomerID,
		AdminID:    principal.AdminID,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{tokenType},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidate parses a token and validates signature and expiry.
func ParseAndValidate(secret string, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ParseExpecting is ParseAndValidate plus a token type check.
func ParseExpecting(secret, tokenString, tokenType string) (*Claims, error) {
	claims, err := ParseAndValidate(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// IssuePair signs an access and a refresh token for the principal and stores them on it.
func IssuePair(secret string, p *Principal, accessTTL, refreshTTL time.Duration) error {
	access, err := SignJWT(secret, p, accessTTL, TokenAccess)
	if err != nil {
		return err
	}
	refresh, err := SignJWT(secret, p, refreshTTL, TokenRefresh)
	if err != nil {
		return err
	}
	p.Token = access
	p.RefreshToken = refresh
	return nil
}
