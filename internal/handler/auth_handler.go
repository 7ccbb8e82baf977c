package handler

import (
	"encoding/json"
	"net/http"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

// AuthHandler handles auth and profile HTTP requests
type AuthHandler struct {
	logger         domain.Logger
	profileService domain.ProfileService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *config.Container, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		profileService: container.ProfileService,
	}
}

// ValidateToken confirms the bearer token is valid and echoes the user
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// GetProfile handles fetching the caller's profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	profile, err := h.profileService.GetProfile(user.ID, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles a partial profile update
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(user.ID, update, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
