package repository

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/postgrest-go"

	"jianstory-server/internal/domain"
)

// SupabaseChapterRepository implements the domain.ChapterRepository interface
type SupabaseChapterRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseChapterRepository creates a new Supabase chapter repository
func NewSupabaseChapterRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.ChapterRepository {
	return &SupabaseChapterRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

const chapterSummaryColumns = "id, story_id, chapter_number, title, slug, word_count, created_at"

// ListByStory retrieves a story's chapter listing in reading order.
func (r *SupabaseChapterRepository) ListByStory(storyID string) ([]*domain.ChapterSummary, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("chapters").
		Select(chapterSummaryColumns, "", false).
		Eq("story_id", storyID).
		Order("chapter_number", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	chapters := make([]*domain.ChapterSummary, 0, len(rows))
	for _, row := range rows {
		chapters = append(chapters, mapToChapterSummary(row))
	}
	return chapters, nil
}

// GetBySlug retrieves a full chapter, content included.
func (r *SupabaseChapterRepository) GetBySlug(storyID, chapterSlug string) (*domain.Chapter, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("chapters").
		Select("*", "", false).
		Eq("story_id", storyID).
		Eq("slug", chapterSlug).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrChapterNotFound
	}

	row := rows[0]
	return &domain.Chapter{
		ID:            getString(row, "id"),
		StoryID:       getString(row, "story_id"),
		ChapterNumber: getInt(row, "chapter_number"),
		Title:         getString(row, "title"),
		Slug:          getString(row, "slug"),
		Content:       getString(row, "content"),
		WordCount:     getInt(row, "word_count"),
		CreatedAt:     getTime(row, "created_at"),
	}, nil
}

// Neighbors returns the chapters immediately before and after the given
// chapter number; either can be nil at the story's edges.
func (r *SupabaseChapterRepository) Neighbors(storyID string, chapterNumber int) (*domain.ChapterSummary, *domain.ChapterSummary, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, nil, fmt.Errorf("supabase client not initialized")
	}

	prev, err := r.neighbor(storyID, "lt", chapterNumber, false)
	if err != nil {
		return nil, nil, err
	}
	next, err := r.neighbor(storyID, "gt", chapterNumber, true)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func (r *SupabaseChapterRepository) neighbor(storyID, op string, chapterNumber int, ascending bool) (*domain.ChapterSummary, error) {
	client := r.supabaseClient.DB()

	data, _, err := client.From("chapters").
		Select(chapterSummaryColumns, "", false).
		Eq("story_id", storyID).
		Filter("chapter_number", op, strconv.Itoa(chapterNumber)).
		Order("chapter_number", &postgrest.OrderOpts{Ascending: ascending}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get neighbor chapter: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToChapterSummary(rows[0]), nil
}

// Upsert inserts or updates a chapter keyed by (story_id, slug). Used by
// the import and seed CLIs.
func (r *SupabaseChapterRepository) Upsert(chapter *domain.Chapter) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"story_id":       chapter.StoryID,
		"chapter_number": chapter.ChapterNumber,
		"title":          chapter.Title,
		"slug":           chapter.Slug,
		"content":        chapter.Content,
		"word_count":     chapter.WordCount,
	}

	_, _, err := client.From("chapters").
		Upsert(row, "story_id,slug", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert chapter: %w", err)
	}
	return nil
}

// CountByStory counts a story's chapters.
func (r *SupabaseChapterRepository) CountByStory(storyID string) (int, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return 0, fmt.Errorf("supabase client not initialized")
	}

	_, count, err := client.From("chapters").
		Select("id", "exact", false).
		Eq("story_id", storyID).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return int(count), nil
}

// mapToChapterSummary converts a row map to a ChapterSummary struct
func mapToChapterSummary(data map[string]interface{}) *domain.ChapterSummary {
	return &domain.ChapterSummary{
		ID:            getString(data, "id"),
		StoryID:       getString(data, "story_id"),
		ChapterNumber: getInt(data, "chapter_number"),
		Title:         getString(data, "title"),
		Slug:          getString(data, "slug"),
		WordCount:     getInt(data, "word_count"),
		CreatedAt:     getTime(data, "created_at"),
	}
}
