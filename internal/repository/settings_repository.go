package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/supabase-go"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
)

// SupabaseSettingsRepository persists reading-settings records in the
// user_settings table, one row per user. It implements
// reading.SettingsRepository, so the settings store treats the hosted
// database and the local file store interchangeably. The repository is
// request-scoped: it is bound to one user's access token so row-level
// security applies.
type SupabaseSettingsRepository struct {
	supabaseClient domain.SupabaseClient
	token          string
	logger         domain.Logger
}

// NewSupabaseSettingsRepository creates a settings repository bound to one
// user's access token.
func NewSupabaseSettingsRepository(supabaseClient domain.SupabaseClient, token string, logger domain.Logger) reading.SettingsRepository {
	return &SupabaseSettingsRepository{
		supabaseClient: supabaseClient,
		token:          token,
		logger:         logger,
	}
}

func (r *SupabaseSettingsRepository) client() (*supabase.Client, error) {
	return r.supabaseClient.GetClientWithToken(r.token)
}

// Load returns the serialized settings record for the user, or (nil, nil)
// when none has been saved yet.
func (r *SupabaseSettingsRepository) Load(_ context.Context, key string) ([]byte, error) {
	client, err := r.client()
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("user_settings").
		Select("font_size, font_family, line_height, theme, background, text_color", "", false).
		Eq("user_id", key).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Re-serialize the row so the store sees the same record shape the
	// file repository produces.
	return json.Marshal(rows[0])
}

// Save upserts the settings record for the user, keyed user_id.
func (r *SupabaseSettingsRepository) Save(_ context.Context, key string, record []byte) error {
	client, err := r.client()
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(record, &fields); err != nil {
		return fmt.Errorf("invalid settings record: %w", err)
	}
	fields["user_id"] = key
	fields["updated_at"] = time.Now().Format(time.RFC3339)

	_, _, err = client.From("user_settings").
		Upsert(fields, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
