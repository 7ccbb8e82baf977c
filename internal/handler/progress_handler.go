package handler

import (
	"encoding/json"
	"net/http"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

// ProgressHandler handles reading-progress HTTP requests
type ProgressHandler struct {
	logger          domain.Logger
	progressService domain.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(container *config.Container, logger domain.Logger) *ProgressHandler {
	return &ProgressHandler{
		logger:          logger,
		progressService: container.ProgressService,
	}
}

// Observe handles one scroll observation. The write behind it is
// throttled, so most observations return without touching storage.
func (h *ProgressHandler) Observe(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var obs domain.ScrollObservation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.progressService.Observe(user.ID, obs, token(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// EndSession tears down the reader session for one chapter
func (h *ProgressHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		StoryID   string `json:"story_id"`
		ChapterID string `json:"chapter_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.progressService.EndSession(user.ID, body.StoryID, body.ChapterID)
	w.WriteHeader(http.StatusNoContent)
}

// GetLatest handles fetching the newest progress row for one story
func (h *ProgressHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	storyID := r.URL.Query().Get("story_id")
	if storyID == "" {
		writeError(w, http.StatusBadRequest, "story_id is required")
		return
	}

	entry, err := h.progressService.GetLatest(user.ID, storyID, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// History handles the reading-history listing
func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	entries, err := h.progressService.History(user.ID, token(r))
	if err != nil {
		h.logger.Error("Failed to load reading history", err, "user_id", user.ID)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}
