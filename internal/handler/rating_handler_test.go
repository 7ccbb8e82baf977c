package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

func TestRatingHandler_SubmitRating_OK(t *testing.T) {
	svc := &mockRatingService{aggregate: domain.RatingAggregate{Average: 4.25, Count: 4}}
	container := &config.Container{RatingService: svc}
	handler := NewRatingHandler(container, NewMockHandlerLogger())

	body := strings.NewReader(`{"rating":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/s1/rating", body)
	req = mux.SetURLVars(req, map[string]string{"id": "s1"})
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "user-1"})
	req = createContextWithToken(req, "token")
	rr := httptest.NewRecorder()
	handler.SubmitRating(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Rating     domain.RatingAggregate `json:"rating"`
		UserRating int                    `json:"user_rating"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Rating.Count != 4 || resp.UserRating != 5 {
		t.Fatalf("expected aggregate and user rating, got %+v", resp)
	}
	if len(svc.submitted) != 1 || svc.submitted[0] != 5 {
		t.Fatalf("expected one submission of 5, got %v", svc.submitted)
	}
}

func TestRatingHandler_SubmitRating_OutOfRange(t *testing.T) {
	svc := &mockRatingService{submitErr: domain.ErrInvalidRating}
	container := &config.Container{RatingService: svc}
	handler := NewRatingHandler(container, NewMockHandlerLogger())

	body := strings.NewReader(`{"rating":9}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/s1/rating", body)
	req = mux.SetURLVars(req, map[string]string{"id": "s1"})
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "user-1"})
	rr := httptest.NewRecorder()
	handler.SubmitRating(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestRatingHandler_SubmitRating_Conflict(t *testing.T) {
	svc := &mockRatingService{submitErr: domain.ErrConflict}
	container := &config.Container{RatingService: svc}
	handler := NewRatingHandler(container, NewMockHandlerLogger())

	body := strings.NewReader(`{"rating":4}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/s1/rating", body)
	req = mux.SetURLVars(req, map[string]string{"id": "s1"})
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "user-1"})
	rr := httptest.NewRecorder()
	handler.SubmitRating(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestRatingHandler_GetRating_Anonymous(t *testing.T) {
	svc := &mockRatingService{aggregate: domain.RatingAggregate{Average: 3.5, Count: 2}}
	container := &config.Container{RatingService: svc}
	handler := NewRatingHandler(container, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stories/s1/rating", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "s1"})
	rr := httptest.NewRecorder()
	handler.GetRating(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Rating     domain.RatingAggregate `json:"rating"`
		UserRating int                    `json:"user_rating"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserRating != 0 || resp.Rating.Count != 2 {
		t.Fatalf("expected anonymous rating view, got %+v", resp)
	}
}
