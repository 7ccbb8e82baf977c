package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	logger          domain.Logger
	bookmarkService domain.BookmarkService
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(container *config.Container, logger domain.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		logger:          logger,
		bookmarkService: container.BookmarkService,
	}
}

// AddBookmark handles adding a story to the reader's library
func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		StoryID string `json:"story_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bookmark, err := h.bookmarkService.AddBookmark(user.ID, body.StoryID, token(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookmark)
}

// RemoveBookmark handles removing a story from the reader's library
func (h *BookmarkHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	storyID := mux.Vars(r)["storyId"]
	if err := h.bookmarkService.RemoveBookmark(user.ID, storyID, token(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBookmarks handles listing the reader's library
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	bookmarks, err := h.bookmarkService.ListBookmarks(user.ID, token(r))
	if err != nil {
		h.logger.Error("Failed to list bookmarks", err, "user_id", user.ID)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": bookmarks})
}
