package auth

import (
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredential     = errors.New("missing credential")
	ErrExpiredCredential     = errors.New("expired credential")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)

// AdminIdentity is the single fixed admin account this service recognizes.
// PasswordHash (bcrypt) takes precedence over the plaintext Password when set.
type AdminIdentity struct {
	Email        string
	FullName     string
	Password     string
	PasswordHash string
}

// Authenticator validates inbound bearer credentials. Validation is stateless:
// privilege is carried entirely inside the credential, never looked up, so a
// credential issued once stays valid for its full lifetime.
type Authenticator struct {
	codec *Codec
	admin AdminIdentity
	now   func() time.Time
}

func NewAuthenticator(codec *Codec, admin AdminIdentity) *Authenticator {
	if admin.FullName == "" {
		admin.FullName = "Admin"
	}
	return &Authenticator{
		codec: codec,
		admin: admin,
		now:   time.Now,
	}
}

// Authenticate resolves the Authorization header value into a Principal.
// The check order is fixed so callers can distinguish "not authenticated at
// all" from "authenticated but expired" from "authenticated but not
// privileged":
//  1. no bearer value            -> ErrMissingCredential
//  2. parse or signature failure -> ErrMalformedCredential
//  3. now >= expiry              -> ErrExpiredCredential
//  4. admin flag false           -> ErrInsufficientPrivilege
func (a *Authenticator) Authenticate(headerValue string) (*Principal, error) {
	tokenString := extractBearerToken(headerValue)
	if tokenString == "" {
		return nil, ErrMissingCredential
	}

	claims, err := a.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if !a.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpiredCredential
	}

	if !claims.IsAdmin {
		return nil, ErrInsufficientPrivilege
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, ErrMalformedCredential
	}

	return &Principal{
		ID:       uint(id),
		Email:    claims.Email,
		FullName: a.admin.FullName,
		IsAdmin:  true,
	}, nil
}

// AdminPrincipal is the constant principal issued at login.
func (a *Authenticator) AdminPrincipal() Principal {
	return Principal{
		ID:       AdminUserID,
		Email:    a.admin.Email,
		FullName: a.admin.FullName,
		IsAdmin:  true,
	}
}

// VerifyAdminCredentials checks a login attempt against the fixed admin
// identity.
func (a *Authenticator) VerifyAdminCredentials(email, password string) bool {
	if subtle.ConstantTimeCompare([]byte(email), []byte(a.admin.Email)) != 1 {
		return false
	}
	if a.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password)) == 1
}

func extractBearerToken(headerValue string) string {
	if len(headerValue) > 7 && strings.EqualFold(headerValue[:7], "Bearer ") {
		return strings.TrimSpace(headerValue[7:])
	}
	return ""
}
