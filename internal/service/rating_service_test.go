package service

import (
	"errors"
	"testing"

	"jianstory-server/internal/domain"
)

func TestSubmitRatingFirstTime(t *testing.T) {
	repo := &mockRatingRepository{
		userRatings: map[string]int{},
		aggregate:   domain.RatingAggregate{Average: 4.0, Count: 3},
	}
	svc := NewRatingService(repo, &mockLogger{})

	aggregate, err := svc.SubmitRating(testUserID, testStoryID, 5, "token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if aggregate.Count != 4 {
		t.Fatalf("expected count 4, got %d", aggregate.Count)
	}
	if aggregate.Average != 4.25 {
		t.Fatalf("expected average 4.25, got %v", aggregate.Average)
	}
	if len(repo.upserts) != 1 || repo.upserts[0].Rating != 5 {
		t.Fatalf("expected one upsert with rating 5, got %+v", repo.upserts)
	}
}

func TestSubmitRatingReplacesPrevious(t *testing.T) {
	repo := &mockRatingRepository{
		userRatings: map[string]int{testUserID + "|" + testStoryID: 2},
		aggregate:   domain.RatingAggregate{Average: 3.0, Count: 4},
	}
	svc := NewRatingService(repo, &mockLogger{})

	aggregate, err := svc.SubmitRating(testUserID, testStoryID, 5, "token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if aggregate.Count != 4 {
		t.Fatalf("expected count unchanged at 4, got %d", aggregate.Count)
	}
	if aggregate.Average != 3.75 {
		t.Fatalf("expected average 3.75, got %v", aggregate.Average)
	}
}

func TestSubmitRatingUnauthenticated(t *testing.T) {
	repo := &mockRatingRepository{userRatings: map[string]int{}}
	svc := NewRatingService(repo, &mockLogger{})

	_, err := svc.SubmitRating("", testStoryID, 4, "")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("expected no upserts, got %d", len(repo.upserts))
	}
}

func TestSubmitRatingRemoteFailureKeepsPrior(t *testing.T) {
	repo := &mockRatingRepository{
		userRatings: map[string]int{},
		aggregate:   domain.RatingAggregate{Average: 4.2, Count: 10},
		upsertErr:   domain.ErrRemoteWrite,
	}
	svc := NewRatingService(repo, &mockLogger{})

	aggregate, err := svc.SubmitRating(testUserID, testStoryID, 1, "token")
	if !errors.Is(err, domain.ErrRemoteWrite) {
		t.Fatalf("expected ErrRemoteWrite, got %v", err)
	}
	if aggregate.Average != 4.2 || aggregate.Count != 10 {
		t.Fatalf("expected prior aggregate preserved, got %+v", aggregate)
	}
}

func TestGetRatingAnonymous(t *testing.T) {
	repo := &mockRatingRepository{
		userRatings: map[string]int{},
		aggregate:   domain.RatingAggregate{Average: 3.5, Count: 2},
	}
	svc := NewRatingService(repo, &mockLogger{})

	userRating, aggregate, err := svc.GetRating("", testStoryID, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if userRating != 0 {
		t.Fatalf("expected no user rating, got %d", userRating)
	}
	if aggregate.Count != 2 {
		t.Fatalf("expected count 2, got %d", aggregate.Count)
	}
}
