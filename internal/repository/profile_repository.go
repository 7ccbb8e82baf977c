package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"jianstory-server/internal/domain"
)

// SupabaseProfileRepository implements the domain.ProfileRepository interface
type SupabaseProfileRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseProfileRepository creates a new Supabase profile repository
func NewSupabaseProfileRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.ProfileRepository {
	return &SupabaseProfileRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// GetByID retrieves a profile row by user id.
func (r *SupabaseProfileRepository) GetByID(userID string, token string) (*domain.Profile, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("profiles").
		Select("*", "", false).
		Eq("id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return mapToProfile(rows[0]), nil
}

// Update writes the non-nil fields of update onto the user's profile row
// and returns the updated profile.
func (r *SupabaseProfileRepository) Update(userID string, update domain.ProfileUpdate, token string) (*domain.Profile, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if update.Username != nil {
		row["username"] = *update.Username
	}
	if update.DisplayName != nil {
		row["display_name"] = *update.DisplayName
	}
	if update.AvatarURL != nil {
		row["avatar_url"] = *update.AvatarURL
	}
	if update.Bio != nil {
		row["bio"] = *update.Bio
	}

	data, _, err := client.From("profiles").
		Update(row, "representation", "").
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProfileNotFound
	}

	r.logger.Info("Profile updated", "user_id", userID)
	return mapToProfile(rows[0]), nil
}

// mapToProfile converts a row map to a Profile struct
func mapToProfile(data map[string]interface{}) *domain.Profile {
	return &domain.Profile{
		ID:          getString(data, "id"),
		Username:    getString(data, "username"),
		DisplayName: getString(data, "display_name"),
		AvatarURL:   getString(data, "avatar_url"),
		Bio:         getString(data, "bio"),
		UpdatedAt:   getTime(data, "updated_at"),
	}
}
