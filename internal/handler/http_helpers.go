package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"jianstory-server/internal/domain"
	apperrors "jianstory-server/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// userID returns the authenticated user's id, or "" for anonymous requests.
func userID(r *http.Request) string {
	if user, ok := GetUserFromContext(r); ok {
		return user.ID
	}
	return ""
}

// token returns the request's bearer token, or "" for anonymous requests.
func token(r *http.Request) string {
	if t, ok := GetTokenFromContext(r); ok {
		return t
	}
	return ""
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps service errors onto HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.StatusCode, appErr.Message)
		return
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Please sign in to continue")
	case errors.Is(err, domain.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "Invalid story or chapter id")
	case errors.Is(err, domain.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
	case errors.Is(err, domain.ErrStoryNotFound):
		writeError(w, http.StatusNotFound, "Story not found")
	case errors.Is(err, domain.ErrChapterNotFound):
		writeError(w, http.StatusNotFound, "Chapter not found")
	case errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, domain.ErrProgressNotFound):
		writeError(w, http.StatusNotFound, "No reading progress yet")
	case errors.Is(err, domain.ErrAlreadyBookmarked):
		writeError(w, http.StatusConflict, "Story is already bookmarked")
	case errors.Is(err, domain.ErrBookmarkNotFound):
		writeError(w, http.StatusNotFound, "Bookmark not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Story not found or rating not allowed")
	case errors.Is(err, domain.ErrRemoteWrite):
		writeError(w, http.StatusBadGateway, "Storage is temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
