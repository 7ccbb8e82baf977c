package service

import (
	"jianstory-server/internal/domain"
)

type authService struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.AuthService {
	return &authService{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Debug("Token validation failed", "error", err)
		return nil, domain.ErrInvalidToken
	}

	return user, nil
}
