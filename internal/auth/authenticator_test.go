package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *Codec) {
	t.Helper()
	codec := NewCodec("test-secret")
	authenticator := NewAuthenticator(codec, AdminIdentity{
		Email:    "admin@example.com",
		Password: "letmein",
	})
	return authenticator, codec
}

func TestAuthenticator_FailureKinds(t *testing.T) {
	authenticator, codec := newTestAuthenticator(t)

	validToken, err := codec.Issue(authenticator.AdminPrincipal(), time.Hour)
	require.NoError(t, err)

	nonAdminToken, err := codec.Issue(Principal{ID: 7, Email: "student@example.com", IsAdmin: false}, time.Hour)
	require.NoError(t, err)

	otherCodec := NewCodec("other-secret")
	forgedToken, err := otherCodec.Issue(authenticator.AdminPrincipal(), time.Hour)
	require.NoError(t, err)

	expiredCodec := NewCodec("test-secret")
	expiredCodec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expiredCodec.Issue(authenticator.AdminPrincipal(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"no header", "", ErrMissingCredential},
		{"no bearer prefix", validToken, ErrMissingCredential},
		{"wrong scheme", "Basic " + validToken, ErrMissingCredential},
		{"garbage token", "Bearer not.a.token", ErrMalformedCredential},
		{"wrong signature", "Bearer " + forgedToken, ErrMalformedCredential},
		{"expired", "Bearer " + expiredToken, ErrExpiredCredential},
		{"not admin", "Bearer " + nonAdminToken, ErrInsufficientPrivilege},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := authenticator.Authenticate(tt.header)
			assert.Nil(t, principal)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticator_Success(t *testing.T) {
	authenticator, codec := newTestAuthenticator(t)

	token, err := codec.Issue(authenticator.AdminPrincipal(), time.Hour)
	require.NoError(t, err)

	principal, err := authenticator.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, AdminUserID, principal.ID)
	assert.Equal(t, "admin@example.com", principal.Email)
	assert.Equal(t, "Admin", principal.FullName)
	assert.True(t, principal.IsAdmin)
}

// A token is valid through its final second and rejected exactly at expiry.
func TestAuthenticator_ExpiryBoundary(t *testing.T) {
	authenticator, codec := newTestAuthenticator(t)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issuedAt }

	token, err := codec.Issue(authenticator.AdminPrincipal(), 60*time.Minute)
	require.NoError(t, err)

	authenticator.now = func() time.Time { return issuedAt.Add(59*time.Minute + 59*time.Second) }
	_, err = authenticator.Authenticate("Bearer " + token)
	assert.NoError(t, err)

	authenticator.now = func() time.Time { return issuedAt.Add(60 * time.Minute) }
	_, err = authenticator.Authenticate("Bearer " + token)
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestAuthenticator_VerifyAdminCredentials(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t)

	assert.True(t, authenticator.VerifyAdminCredentials("admin@example.com", "letmein"))
	assert.False(t, authenticator.VerifyAdminCredentials("admin@example.com", "wrong"))
	assert.False(t, authenticator.VerifyAdminCredentials("other@example.com", "letmein"))
}

func TestAuthenticator_VerifyAdminCredentialsBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	codec := NewCodec("test-secret")
	authenticator := NewAuthenticator(codec, AdminIdentity{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
	})

	assert.True(t, authenticator.VerifyAdminCredentials("admin@example.com", "letmein"))
	assert.False(t, authenticator.VerifyAdminCredentials("admin@example.com", "wrong"))
}
