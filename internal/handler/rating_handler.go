package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

// RatingHandler handles story rating HTTP requests
type RatingHandler struct {
	logger        domain.Logger
	ratingService domain.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(container *config.Container, logger domain.Logger) *RatingHandler {
	return &RatingHandler{
		logger:        logger,
		ratingService: container.RatingService,
	}
}

// SubmitRating handles submitting or changing a 1-5 star rating
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	storyID := mux.Vars(r)["id"]

	var body struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	aggregate, err := h.ratingService.SubmitRating(user.ID, storyID, body.Rating, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rating":      aggregate,
		"user_rating": body.Rating,
	})
}

// GetRating handles fetching the aggregate plus the caller's own rating
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	storyID := mux.Vars(r)["id"]

	userRating, aggregate, err := h.ratingService.GetRating(userID(r), storyID, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rating":      aggregate,
		"user_rating": userRating,
	})
}
