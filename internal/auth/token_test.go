package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_IssueDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	principal := Principal{ID: AdminUserID, Email: "admin@example.com", FullName: "Admin", IsAdmin: true}
	token, err := codec.Issue(principal, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "0", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestCodec_DecodeMalformed(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, token := range []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	} {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrMalformedCredential, "token %q", token)
	}
}

func TestCodec_DecodeWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-one")
	verifier := NewCodec("secret-two")

	token, err := issuer.Issue(Principal{ID: 0, Email: "admin@example.com", IsAdmin: true}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrMalformedCredential)
}

// An expired token still decodes: expiry is the authenticator's concern, and
// conflating it with signature failure would hide the distinction from
// clients.
func TestCodec_DecodeExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret")
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := codec.Issue(Principal{ID: 0, Email: "admin@example.com", IsAdmin: true}, time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Before(time.Now()))
}
