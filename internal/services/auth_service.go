package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ielts-prep/admin-service/internal/auth"
)

type authService struct {
	authenticator *auth.Authenticator
	codec         *auth.Codec
	tokenTTL      time.Duration
	logger        *slog.Logger
}

func NewAuthService(authenticator *auth.Authenticator, codec *auth.Codec, tokenTTL time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		authenticator: authenticator,
		codec:         codec,
		tokenTTL:      tokenTTL,
		logger:        logger,
	}
}

// Login verifies the fixed admin credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, req *AdminLoginRequest) (*LoginResponse, error) {
	if !s.authenticator.VerifyAdminCredentials(req.Email, req.Password) {
		s.logger.WarnContext(ctx, "Admin login rejected", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	principal := s.authenticator.AdminPrincipal()
	token, err := s.codec.Issue(principal, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "Admin logged in", "email", principal.Email)
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      principal.ID,
		Email:       principal.Email,
		FullName:    principal.FullName,
		IsAdmin:     principal.IsAdmin,
	}, nil
}
