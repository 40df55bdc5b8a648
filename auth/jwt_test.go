package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikios34/storefront-backend/entity"
)

func TestSignAndParse(t *testing.T) {
	p := &Principal{UserID: uuid.NewString(), Role: entity.RoleCustomer, CustomerID: uuid.NewString()}
	require.NoError(t, IssuePair("s3cret", p, time.Minute, time.Hour))

	claims, err := ParseExpecting("s3cret", p.Token, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, claims.UserID)
	assert.Equal(t, p.CustomerID, claims.CustomerID)

	_, err = ParseExpecting("s3cret", p.RefreshToken, TokenAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ParseAndValidate("other", p.Token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := SignJWT("s3cret", &Principal{UserID: "u"}, -time.Minute, TokenAccess)
	require.NoError(t, err)
	_, err = ParseAndValidate("s3cret", tok)
	assert.Error(t, err)
}

func TestResetTokenInvalidatedByPasswordChange(t *testing.T) {
	u := &entity.User{ID: uuid.New(), Password: "hash-1"}
	tok, err := MakeResetToken("s3cret", u, time.Hour)
	require.NoError(t, err)
	assert.True(t, CheckResetToken("s3cret", u, tok))

	other := &entity.User{ID: uuid.New(), Password: "hash-1"}
	assert.False(t, CheckResetToken("s3cret", other, tok))

	u.Password = "hash-2"
	assert.False(t, CheckResetToken("s3cret", u, tok))
}

func TestUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	got, err := DecodeUID(EncodeUID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = DecodeUID("%%%")
	assert.Error(t, err)
}
