package service

import (
	"context"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
)

type ratingService struct {
	ratingRepo domain.RatingRepository
	logger     domain.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(ratingRepo domain.RatingRepository, logger domain.Logger) domain.RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// tokenRatingStore binds the repository to one request's auth token so the
// submitter can stay credential-agnostic.
type tokenRatingStore struct {
	repo  domain.RatingRepository
	token string
}

func (s tokenRatingStore) Upsert(ctx context.Context, userID, storyID string, value int) error {
	return s.repo.Upsert(&domain.Rating{
		UserID:  userID,
		StoryID: storyID,
		Rating:  value,
	}, s.token)
}

func (s *ratingService) SubmitRating(userID, storyID string, value int, token string) (domain.RatingAggregate, error) {
	prior, err := s.ratingRepo.Aggregate(storyID)
	if err != nil {
		s.logger.Warn("Failed to load rating aggregate", "story_id", storyID, "error", err)
		prior = domain.RatingAggregate{}
	}

	previous := 0
	if userID != "" {
		previous, err = s.ratingRepo.GetUserRating(userID, storyID, token)
		if err != nil {
			s.logger.Warn("Failed to load prior user rating", "story_id", storyID, "error", err)
			previous = 0
		}
	}

	submitter := reading.NewRatingSubmitter(tokenRatingStore{repo: s.ratingRepo, token: token}, s.logger)
	return submitter.Submit(context.Background(), userID, storyID, value, prior, previous)
}

func (s *ratingService) GetRating(userID, storyID string, token string) (int, domain.RatingAggregate, error) {
	aggregate, err := s.ratingRepo.Aggregate(storyID)
	if err != nil {
		return 0, domain.RatingAggregate{}, err
	}

	userRating := 0
	if userID != "" {
		userRating, err = s.ratingRepo.GetUserRating(userID, storyID, token)
		if err != nil {
			s.logger.Warn("Failed to load user rating", "story_id", storyID, "error", err)
			userRating = 0
		}
	}

	return userRating, aggregate, nil
}
