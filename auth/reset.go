package auth

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/mikios34/storefront-backend/entity"
)

// Reset tokens are signed with the server secret plus the user's current password hash,
// so they stop validating as soon as the password changes.
func resetKey(secret string, u *entity.User) string {
	return secret + ":" + u.Password
}

// MakeResetToken returns a signed, time-limited password reset token for u.
func MakeResetToken(secret string, u *entity.User, ttl time.Duration) (string, error) {
	return SignJWT(resetKey(secret, u), &Principal{UserID: u.ID.String()}, ttl, TokenPasswordReset)
}

// CheckResetToken reports whether token was issued for u and is still valid.
func CheckResetToken(secret string, u *entity.User, token string) bool {
	claims, err := ParseExpecting(resetKey(secret, u), token, TokenPasswordReset)
	if err != nil {
		return false
	}
	return claims.UserID == u.ID.String()
}

// EncodeUID encodes a user id for use in a reset URL.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(s string) (uuid.UUID, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(string(b))
}
