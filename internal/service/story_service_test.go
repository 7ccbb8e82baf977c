package service

import (
	"errors"
	"testing"

	"jianstory-server/internal/domain"
)

func TestListStoriesAppliesDefaults(t *testing.T) {
	storyRepo := &mockStoryRepository{listResult: &domain.StoryList{}}
	svc := NewStoryService(storyRepo, &mockChapterRepository{}, &mockLogger{})

	if _, err := svc.ListStories(domain.StoryListParams{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if storyRepo.listParams.Page != 1 {
		t.Fatalf("expected page 1, got %d", storyRepo.listParams.Page)
	}
	if storyRepo.listParams.PageSize != domain.DefaultPageSize {
		t.Fatalf("expected page size %d, got %d", domain.DefaultPageSize, storyRepo.listParams.PageSize)
	}
	if storyRepo.listParams.Sort != domain.StorySortLatest {
		t.Fatalf("expected sort latest, got %q", storyRepo.listParams.Sort)
	}
}

func TestListStoriesRejectsUnknownSort(t *testing.T) {
	svc := NewStoryService(&mockStoryRepository{}, &mockChapterRepository{}, &mockLogger{})

	_, err := svc.ListStories(domain.StoryListParams{Sort: "alphabetical"})
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadChapterIncrementsViewCount(t *testing.T) {
	story := &domain.Story{ID: "story-1", Slug: "iron-sky"}
	chapter := &domain.Chapter{ID: "ch-3", StoryID: "story-1", Slug: "chapter-3", ChapterNumber: 3}
	storyRepo := &mockStoryRepository{stories: map[string]*domain.Story{"iron-sky": story}}
	chapterRepo := &mockChapterRepository{
		chapters: map[string]*domain.Chapter{"chapter-3": chapter},
		prev:     &domain.ChapterSummary{Slug: "chapter-2", ChapterNumber: 2},
		next:     &domain.ChapterSummary{Slug: "chapter-4", ChapterNumber: 4},
	}
	svc := NewStoryService(storyRepo, chapterRepo, &mockLogger{})

	gotStory, view, err := svc.ReadChapter("iron-sky", "chapter-3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotStory.ID != "story-1" {
		t.Fatalf("expected story story-1, got %s", gotStory.ID)
	}
	if view.Chapter.Slug != "chapter-3" {
		t.Fatalf("expected chapter-3, got %s", view.Chapter.Slug)
	}
	if view.Prev == nil || view.Prev.ChapterNumber != 2 {
		t.Fatalf("expected prev chapter 2, got %+v", view.Prev)
	}
	if view.Next == nil || view.Next.ChapterNumber != 4 {
		t.Fatalf("expected next chapter 4, got %+v", view.Next)
	}
	if len(storyRepo.incrementIDs) != 1 || storyRepo.incrementIDs[0] != "story-1" {
		t.Fatalf("expected one view count increment for story-1, got %v", storyRepo.incrementIDs)
	}
}

func TestReadChapterToleratesIncrementFailure(t *testing.T) {
	story := &domain.Story{ID: "story-1", Slug: "iron-sky"}
	chapter := &domain.Chapter{ID: "ch-1", StoryID: "story-1", Slug: "chapter-1", ChapterNumber: 1}
	storyRepo := &mockStoryRepository{
		stories:      map[string]*domain.Story{"iron-sky": story},
		incrementErr: errors.New("connection reset"),
	}
	chapterRepo := &mockChapterRepository{chapters: map[string]*domain.Chapter{"chapter-1": chapter}}
	svc := NewStoryService(storyRepo, chapterRepo, &mockLogger{})

	_, view, err := svc.ReadChapter("iron-sky", "chapter-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view.Chapter.ID != "ch-1" {
		t.Fatalf("expected chapter ch-1, got %s", view.Chapter.ID)
	}
}

func TestReadChapterUnknownStory(t *testing.T) {
	svc := NewStoryService(&mockStoryRepository{}, &mockChapterRepository{}, &mockLogger{})

	_, _, err := svc.ReadChapter("missing", "chapter-1")
	if !errors.Is(err, domain.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}
