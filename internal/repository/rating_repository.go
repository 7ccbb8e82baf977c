package repository

import (
	"encoding/json"
	"fmt"

	"jianstory-server/internal/domain"
	apperrors "jianstory-server/pkg/errors"
)

// SupabaseRatingRepository implements the domain.RatingRepository interface
type SupabaseRatingRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseRatingRepository creates a new Supabase rating repository
func NewSupabaseRatingRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.RatingRepository {
	return &SupabaseRatingRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Upsert writes a rating row keyed (user_id, story_id). Foreign-key and
// row-level-security violations surface as ErrConflict so callers can show
// a distinct message; anything else maps to ErrRemoteWrite.
func (r *SupabaseRatingRepository) Upsert(rating *domain.Rating, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"user_id":  rating.UserID,
		"story_id": rating.StoryID,
		"rating":   rating.Rating,
	}

	_, _, err = client.From("story_ratings").
		Upsert(row, "user_id,story_id", "", "").
		Execute()
	if err != nil {
		// 23503 = foreign key violation, 42501 = insufficient privilege.
		if errorHasCode(err, "23503") || errorHasCode(err, "42501") {
			appErr := apperrors.NewConflictError("story not found or rating not allowed", domain.ErrConflict)
			appErr.Details = err.Error()
			return appErr
		}
		appErr := apperrors.NewRemoteWriteError("failed to save rating", domain.ErrRemoteWrite)
		appErr.Details = err.Error()
		return appErr
	}

	r.logger.Info("Rating upserted", "user_id", rating.UserID, "story_id", rating.StoryID, "rating", rating.Rating)
	return nil
}

// GetUserRating returns the user's rating for a story, 0 if none exists.
func (r *SupabaseRatingRepository) GetUserRating(userID, storyID string, token string) (int, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return 0, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("story_ratings").
		Select("rating", "", false).
		Eq("user_id", userID).
		Eq("story_id", storyID).
		Limit(1, "").
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to get rating: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return getInt(rows[0], "rating"), nil
}

// Aggregate computes the (average, count) pair for a story's ratings. The
// remote query surface has no aggregate pushdown, so the rows are folded
// here; rating sets are small enough for that.
func (r *SupabaseRatingRepository) Aggregate(storyID string) (domain.RatingAggregate, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return domain.RatingAggregate{}, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("story_ratings").
		Select("rating", "", false).
		Eq("story_id", storyID).
		Execute()
	if err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("failed to get rating aggregate: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return domain.RatingAggregate{}, nil
	}

	sum := 0
	for _, row := range rows {
		sum += getInt(row, "rating")
	}
	return domain.RatingAggregate{
		Average: float64(sum) / float64(len(rows)),
		Count:   len(rows),
	}, nil
}
