package handler

import (
	"encoding/json"
	"net/http"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
	"jianstory-server/internal/service"
)

// SettingsHandler handles reading-settings HTTP requests
type SettingsHandler struct {
	logger          domain.Logger
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(container *config.Container, logger domain.Logger) *SettingsHandler {
	return &SettingsHandler{
		logger:          logger,
		settingsService: container.SettingsService,
	}
}

// GetSettings handles getting the reader's typography settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	settings := h.settingsService.GetSettings(r.Context(), user.ID, token(r))
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles a partial settings patch
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var changes map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), user.ID, token(r), changes)
	if err != nil {
		// The patch was applied in memory; only the write failed. The
		// reader keeps the new settings for this session.
		h.logger.Warn("Failed to persist reading settings", "user_id", user.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, settings)
}

// ListThemes handles listing the theme catalog
func (h *SettingsHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"themes": reading.Themes})
}

// ListFonts handles listing the font catalog
func (h *SettingsHandler) ListFonts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"fonts": reading.Fonts})
}
