package supabase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/supabase-community/supabase-go"

	"jianstory-server/internal/domain"
)

// Client implements the domain.SupabaseClient interface
type Client struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewClient creates a new Supabase client instance
func NewClient(config domain.Config, logger domain.Logger) domain.SupabaseClient {
	return &Client{
		config: config,
		logger: logger,
	}
}

// DB returns the anon-key client used for public reads.
func (s *Client) DB() *supabase.Client {
	return s.client
}

// Initialize establishes a connection to Supabase
func (s *Client) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized", "url", supabaseURL)
	return nil
}

// GetClientWithToken returns a client that forwards the user's access token
// so row-level security policies apply to every query it issues.
func (s *Client) GetClientWithToken(token string) (*supabase.Client, error) {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client with token: %w", err)
	}
	return client, nil
}

// supabaseClaims are the access-token claims we care about.
type supabaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ValidateToken resolves a Supabase access token to the user it belongs to.
// When the project's JWT secret is configured the HS256 signature is checked
// locally; otherwise the token is validated with a round trip to the Auth
// endpoint.
func (s *Client) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if secret := s.config.GetSupabaseJWTSecret(); secret != "" {
		return s.validateLocally(token, secret)
	}

	if s.client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	user, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		s.logger.Error("Failed to validate token with Supabase", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *Client) validateLocally(token, secret string) (*domain.SupabaseUser, error) {
	parsed, err := jwt.ParseWithClaims(token, &supabaseClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*supabaseClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.SupabaseUser{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}
