package reading

import (
	"context"

	"github.com/google/uuid"

	"jianstory-server/internal/domain"
)

// RatingStore is the remote upsert endpoint a rating submission goes to,
// keyed (user, story).
type RatingStore interface {
	Upsert(ctx context.Context, userID, storyID string, value int) error
}

// RatingSubmitter validates and submits a single user's 1-5 star rating
// and keeps an optimistic running aggregate. The recomputed aggregate is
// display-only: it assumes the upsert landed and is never reconciled
// against the authoritative count, so concurrent raters can drift it.
type RatingSubmitter struct {
	store  RatingStore
	logger domain.Logger
}

func NewRatingSubmitter(store RatingStore, logger domain.Logger) *RatingSubmitter {
	return &RatingSubmitter{store: store, logger: logger}
}

// Submit upserts the rating and returns the optimistic aggregate. prior is
// the aggregate the caller is displaying; previous is the user's earlier
// rating for this story, 0 if none.
//
// Submissions without an identity fail with ErrUnauthenticated before any
// remote call. A story identifier that is not a well-formed UUID fails with
// ErrInvalidTarget.
func (s *RatingSubmitter) Submit(ctx context.Context, userID, storyID string, value int, prior domain.RatingAggregate, previous int) (domain.RatingAggregate, error) {
	if userID == "" {
		return prior, domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(storyID); err != nil {
		return prior, domain.ErrInvalidTarget
	}
	if value < 1 || value > 5 {
		return prior, domain.ErrInvalidRating
	}

	if err := s.store.Upsert(ctx, userID, storyID, value); err != nil {
		s.logger.Error("Failed to submit rating", err, "user_id", userID, "story_id", storyID)
		return prior, err
	}

	return NextAggregate(prior, previous, value), nil
}

// NextAggregate recomputes the running (average, count) after one user's
// rating changes from previous (0 = none) to next.
func NextAggregate(prior domain.RatingAggregate, previous, next int) domain.RatingAggregate {
	if previous == 0 {
		count := prior.Count + 1
		return domain.RatingAggregate{
			Average: (prior.Average*float64(prior.Count) + float64(next)) / float64(count),
			Count:   count,
		}
	}
	if prior.Count == 0 {
		// Inconsistent input: a previous rating implies a nonzero count.
		return domain.RatingAggregate{Average: float64(next), Count: 1}
	}
	return domain.RatingAggregate{
		Average: (prior.Average*float64(prior.Count) - float64(previous) + float64(next)) / float64(prior.Count),
		Count:   prior.Count,
	}
}
