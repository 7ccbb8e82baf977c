package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"jianstory-server/internal/domain"
)

// SupabaseProgressRepository implements the domain.ProgressRepository interface
type SupabaseProgressRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseProgressRepository creates a new Supabase reading-progress repository
func NewSupabaseProgressRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.ProgressRepository {
	return &SupabaseProgressRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Upsert writes a progress row, keyed (user_id, story_id, chapter_id).
func (r *SupabaseProgressRepository) Upsert(progress *domain.ReadingProgress, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"user_id":         progress.UserID,
		"story_id":        progress.StoryID,
		"chapter_id":      progress.ChapterID,
		"scroll_position": progress.ScrollPercent,
		"last_read_at":    progress.LastReadAt.Format(time.RFC3339),
	}

	_, _, err = client.From("reading_progress").
		Upsert(row, "user_id,story_id,chapter_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert reading progress: %w", err)
	}
	return nil
}

// GetLatest returns the most recently read chapter of a story, or
// ErrProgressNotFound when the user has not started it.
func (r *SupabaseProgressRepository) GetLatest(userID, storyID string, token string) (*domain.ProgressEntry, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("reading_progress").
		Select("*, chapter:chapters(id, story_id, chapter_number, title, slug, word_count, created_at)", "", false).
		Eq("user_id", userID).
		Eq("story_id", storyID).
		Order("last_read_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get reading progress: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProgressNotFound
	}

	return mapToProgressEntry(rows[0]), nil
}

// History returns every progress row for the user, most recent first,
// with story and chapter context joined in.
func (r *SupabaseProgressRepository) History(userID string, token string) ([]*domain.ProgressEntry, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("reading_progress").
		Select("*, story:stories(*), chapter:chapters(id, story_id, chapter_number, title, slug, word_count, created_at)", "", false).
		Eq("user_id", userID).
		Order("last_read_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get reading history: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	entries := make([]*domain.ProgressEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapToProgressEntry(row))
	}
	return entries, nil
}

// mapToProgressEntry converts a row map (with optional joined story and
// chapter) to a ProgressEntry struct
func mapToProgressEntry(data map[string]interface{}) *domain.ProgressEntry {
	entry := &domain.ProgressEntry{
		ReadingProgress: domain.ReadingProgress{
			UserID:        getString(data, "user_id"),
			StoryID:       getString(data, "story_id"),
			ChapterID:     getString(data, "chapter_id"),
			ScrollPercent: getFloat64(data, "scroll_position"),
			LastReadAt:    getTime(data, "last_read_at"),
		},
	}
	if story := getMap(data, "story"); story != nil {
		entry.Story = mapToStory(story)
	}
	if chapter := getMap(data, "chapter"); chapter != nil {
		entry.Chapter = mapToChapterSummary(chapter)
	}
	return entry
}
