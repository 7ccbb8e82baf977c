package repository

import (
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"jianstory-server/internal/domain"
)

// SupabaseBookmarkRepository implements the domain.BookmarkRepository interface
type SupabaseBookmarkRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseBookmarkRepository creates a new Supabase bookmark repository
func NewSupabaseBookmarkRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.BookmarkRepository {
	return &SupabaseBookmarkRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Add inserts a bookmark. A unique violation on (user_id, story_id) maps
// to ErrAlreadyBookmarked.
func (r *SupabaseBookmarkRepository) Add(userID, storyID string, token string) (*domain.Bookmark, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"user_id":  userID,
		"story_id": storyID,
	}

	data, _, err := client.From("bookmarks").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		// 23505 = unique violation.
		if errorHasCode(err, "23505") {
			return nil, domain.ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no bookmark row")
	}
	return mapToBookmark(rows[0]), nil
}

// Remove deletes a bookmark by (user_id, story_id).
func (r *SupabaseBookmarkRepository) Remove(userID, storyID string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	_, _, err = client.From("bookmarks").
		Delete("", "").
		Eq("user_id", userID).
		Eq("story_id", storyID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

// ListByUser returns the user's bookmarks, newest first, stories joined in.
func (r *SupabaseBookmarkRepository) ListByUser(userID string, token string) ([]*domain.Bookmark, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("bookmarks").
		Select("*, story:stories(*)", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	bookmarks := make([]*domain.Bookmark, 0, len(rows))
	for _, row := range rows {
		bookmarks = append(bookmarks, mapToBookmark(row))
	}
	return bookmarks, nil
}

// mapToBookmark converts a row map to a Bookmark struct
func mapToBookmark(data map[string]interface{}) *domain.Bookmark {
	bookmark := &domain.Bookmark{
		ID:        getString(data, "id"),
		UserID:    getString(data, "user_id"),
		StoryID:   getString(data, "story_id"),
		CreatedAt: getTime(data, "created_at"),
	}
	if story := getMap(data, "story"); story != nil {
		bookmark.Story = mapToStory(story)
	}
	return bookmark
}
