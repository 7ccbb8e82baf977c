package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
	"jianstory-server/internal/service"
	"jianstory-server/pkg/format"
)

// StoryHandler handles story browsing HTTP requests
type StoryHandler struct {
	container     *config.Container
	logger        domain.Logger
	storyService  domain.StoryService
	ratingService domain.RatingService
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(container *config.Container, logger domain.Logger) *StoryHandler {
	return &StoryHandler{
		container:     container,
		logger:        logger,
		storyService:  container.StoryService,
		ratingService: container.RatingService,
	}
}

// storyResponse decorates a story with its CDN cover URL and the display
// strings the reading pages render directly.
type storyResponse struct {
	*domain.Story
	CoverURL         string `json:"cover_url"`
	ViewCountDisplay string `json:"view_count_display"`
	UpdatedDisplay   string `json:"updated_display"`
}

func (h *StoryHandler) decorate(story *domain.Story) storyResponse {
	cloudName := h.container.GetConfig().GetCloudinaryCloudName()
	url := service.CoverURL(cloudName, story.CloudinaryPublicID)
	if story.CloudinaryPublicID == "" && story.CoverImage != "" {
		url = story.CoverImage
	}
	return storyResponse{
		Story:            story,
		CoverURL:         url,
		ViewCountDisplay: format.ViewCount(story.ViewCount),
		UpdatedDisplay:   format.Date(story.UpdatedAt),
	}
}

// ListStories handles listing, searching and sorting stories
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := domain.StoryListParams{
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
	}
	if page := query.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid page number")
			return
		}
		params.Page = n
	}
	if pageSize := query.Get("page_size"); pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "Invalid page size")
			return
		}
		params.PageSize = n
	}

	list, err := h.storyService.ListStories(params)
	if err != nil {
		h.logger.Error("Failed to list stories", err, "search", params.Search)
		writeDomainError(w, err)
		return
	}

	stories := make([]storyResponse, 0, len(list.Stories))
	for _, story := range list.Stories {
		stories = append(stories, h.decorate(story))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stories":     stories,
		"total_count": list.TotalCount,
		"page":        list.Page,
		"page_size":   list.PageSize,
		"total_pages": list.TotalPages,
	})
}

// GetStory handles fetching one story with its rating aggregate
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	story, err := h.storyService.GetStory(slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	userRating, aggregate, err := h.ratingService.GetRating(userID(r), story.ID, token(r))
	if err != nil {
		h.logger.Warn("Failed to load rating aggregate", "story", slug, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"story":       h.decorate(story),
		"rating":      aggregate,
		"user_rating": userRating,
	})
}

// ListChapters handles listing a story's chapters
func (h *StoryHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	story, chapters, err := h.storyService.ListChapters(slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"story":    h.decorate(story),
		"chapters": chapters,
	})
}

// ReadChapter handles fetching chapter content with reader navigation
func (h *StoryHandler) ReadChapter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	story, view, err := h.storyService.ReadChapter(vars["slug"], vars["chapterSlug"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"story":        h.decorate(story),
		"chapter":      view.Chapter,
		"prev_chapter": view.Prev,
		"next_chapter": view.Next,
		"reading_time": format.ReadingTime(view.Chapter.WordCount),
	})
}
