package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"jianstory-server/internal/domain"
)

const defaultPageSize = 12

// SupabaseStoryRepository implements the domain.StoryRepository interface
type SupabaseStoryRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseStoryRepository creates a new Supabase story repository
func NewSupabaseStoryRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.StoryRepository {
	return &SupabaseStoryRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// List retrieves one page of stories with optional search and ordering.
func (r *SupabaseStoryRepository) List(params domain.StoryListParams) (*domain.StoryList, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}

	query := client.From("stories").Select("*", "exact", false)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Or(fmt.Sprintf("title.ilike.%s,author.ilike.%s", pattern, pattern), "")
	}

	switch params.Sort {
	case domain.StorySortPopular:
		query = query.Order("view_count", &postgrest.OrderOpts{Ascending: false})
	case domain.StorySortChapters:
		query = query.Order("total_chapters", &postgrest.OrderOpts{Ascending: false})
	default:
		query = query.Order("created_at", &postgrest.OrderOpts{Ascending: false})
	}

	from := (params.Page - 1) * params.PageSize
	to := from + params.PageSize - 1
	query = query.Range(from, to, "")

	data, count, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	stories := make([]*domain.Story, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, mapToStory(row))
	}

	total := int(count)
	totalPages := (total + params.PageSize - 1) / params.PageSize

	return &domain.StoryList{
		Stories:    stories,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetBySlug retrieves a single story by its URL slug.
func (r *SupabaseStoryRepository) GetBySlug(slug string) (*domain.Story, error) {
	return r.getOne("slug", slug)
}

// GetByID retrieves a single story by id.
func (r *SupabaseStoryRepository) GetByID(id string) (*domain.Story, error) {
	return r.getOne("id", id)
}

func (r *SupabaseStoryRepository) getOne(column, value string) (*domain.Story, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("stories").
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrStoryNotFound
	}

	return mapToStory(rows[0]), nil
}

// IncrementViewCount bumps a story's view counter. Read-then-write, not
// atomic; a lost update under concurrent readers is tolerated for a view
// counter.
func (r *SupabaseStoryRepository) IncrementViewCount(id string) error {
	story, err := r.GetByID(id)
	if err != nil {
		return err
	}

	client := r.supabaseClient.DB()
	_, _, err = client.From("stories").
		Update(map[string]interface{}{"view_count": story.ViewCount + 1}, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// Upsert inserts or updates a story keyed by slug. Used by the import and
// seed CLIs running with the service-role key.
func (r *SupabaseStoryRepository) Upsert(story *domain.Story) (*domain.Story, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"title":                story.Title,
		"slug":                 story.Slug,
		"author":               story.Author,
		"description":          story.Description,
		"status":               string(story.Status),
		"total_chapters":       story.TotalChapters,
		"cover_image":          story.CoverImage,
		"cloudinary_public_id": story.CloudinaryPublicID,
		"source_url":           story.SourceURL,
		"updated_at":           time.Now().Format(time.RFC3339),
	}

	data, _, err := client.From("stories").
		Upsert(row, "slug", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert story: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert returned no story row")
	}

	r.logger.Info("Story upserted", "slug", story.Slug)
	return mapToStory(rows[0]), nil
}

// mapToStory converts a row map to a Story struct
func mapToStory(data map[string]interface{}) *domain.Story {
	return &domain.Story{
		ID:                 getString(data, "id"),
		Title:              getString(data, "title"),
		Slug:               getString(data, "slug"),
		Author:             getString(data, "author"),
		Description:        getString(data, "description"),
		Status:             domain.StoryStatus(getString(data, "status")),
		TotalChapters:      getInt(data, "total_chapters"),
		ViewCount:          getInt(data, "view_count"),
		CoverImage:         getString(data, "cover_image"),
		CloudinaryPublicID: getString(data, "cloudinary_public_id"),
		SourceURL:          getString(data, "source_url"),
		CreatedAt:          getTime(data, "created_at"),
		UpdatedAt:          getTime(data, "updated_at"),
	}
}
