package handler

import (
	"context"
	"net/http"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
)

func createContextWithUser(r *http.Request, user *domain.SupabaseUser) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func createContextWithToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), tokenContextKey, token)
	return r.WithContext(ctx)
}

type mockAuthService struct {
	users map[string]*domain.SupabaseUser
}

func (m *mockAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	return nil, domain.ErrInvalidToken
}

type mockStoryService struct {
	list     *domain.StoryList
	stories  map[string]*domain.Story
	chapters []*domain.ChapterSummary
	view     *domain.ChapterView
	listErr  error
}

func (m *mockStoryService) ListStories(params domain.StoryListParams) (*domain.StoryList, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockStoryService) GetStory(slug string) (*domain.Story, error) {
	if story, ok := m.stories[slug]; ok {
		return story, nil
	}
	return nil, domain.ErrStoryNotFound
}

func (m *mockStoryService) ListChapters(storySlug string) (*domain.Story, []*domain.ChapterSummary, error) {
	story, err := m.GetStory(storySlug)
	if err != nil {
		return nil, nil, err
	}
	return story, m.chapters, nil
}

func (m *mockStoryService) ReadChapter(storySlug, chapterSlug string) (*domain.Story, *domain.ChapterView, error) {
	story, err := m.GetStory(storySlug)
	if err != nil {
		return nil, nil, err
	}
	if m.view == nil {
		return nil, nil, domain.ErrChapterNotFound
	}
	return story, m.view, nil
}

type mockRatingService struct {
	aggregate  domain.RatingAggregate
	userRating int
	submitErr  error
	submitted  []int
}

func (m *mockRatingService) SubmitRating(userID, storyID string, value int, token string) (domain.RatingAggregate, error) {
	if m.submitErr != nil {
		return m.aggregate, m.submitErr
	}
	m.submitted = append(m.submitted, value)
	return m.aggregate, nil
}

func (m *mockRatingService) GetRating(userID, storyID string, token string) (int, domain.RatingAggregate, error) {
	return m.userRating, m.aggregate, nil
}

type mockProgressService struct {
	observations []domain.ScrollObservation
	ended        []string
	latest       *domain.ProgressEntry
	history      []*domain.ProgressEntry
	observeErr   error
}

func (m *mockProgressService) Observe(userID string, obs domain.ScrollObservation, token string) error {
	if m.observeErr != nil {
		return m.observeErr
	}
	m.observations = append(m.observations, obs)
	return nil
}

func (m *mockProgressService) EndSession(userID, storyID, chapterID string) {
	m.ended = append(m.ended, storyID+"|"+chapterID)
}

func (m *mockProgressService) GetLatest(userID, storyID string, token string) (*domain.ProgressEntry, error) {
	if m.latest == nil {
		return nil, domain.ErrProgressNotFound
	}
	return m.latest, nil
}

func (m *mockProgressService) History(userID string, token string) ([]*domain.ProgressEntry, error) {
	return m.history, nil
}

func (m *mockProgressService) Stop() {}

type mockSettingsService struct {
	settings reading.Settings
	patches  []map[string]interface{}
}

func (m *mockSettingsService) GetSettings(ctx context.Context, userID string, token string) reading.Settings {
	return m.settings
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, userID string, token string, changes map[string]interface{}) (reading.Settings, error) {
	m.patches = append(m.patches, changes)
	for _, field := range []string{
		reading.FieldFontSize,
		reading.FieldFontFamily,
		reading.FieldLineHeight,
		reading.FieldTheme,
		reading.FieldBackground,
		reading.FieldTextColor,
	} {
		if value, ok := changes[field]; ok {
			m.settings = reading.Update(m.settings, field, value)
		}
	}
	return m.settings, nil
}

type mockBookmarkService struct {
	bookmarks []*domain.Bookmark
	addErr    error
}

func (m *mockBookmarkService) AddBookmark(userID, storyID string, token string) (*domain.Bookmark, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	b := &domain.Bookmark{ID: "bm-1", UserID: userID, StoryID: storyID}
	m.bookmarks = append(m.bookmarks, b)
	return b, nil
}

func (m *mockBookmarkService) RemoveBookmark(userID, storyID string, token string) error {
	return nil
}

func (m *mockBookmarkService) ListBookmarks(userID string, token string) ([]*domain.Bookmark, error) {
	return m.bookmarks, nil
}
