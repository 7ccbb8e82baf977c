package service

import (
	"jianstory-server/internal/domain"
)

type storyService struct {
	storyRepo   domain.StoryRepository
	chapterRepo domain.ChapterRepository
	logger      domain.Logger
}

// NewStoryService creates a new story service
func NewStoryService(storyRepo domain.StoryRepository, chapterRepo domain.ChapterRepository, logger domain.Logger) domain.StoryService {
	return &storyService{
		storyRepo:   storyRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

func (s *storyService) ListStories(params domain.StoryListParams) (*domain.StoryList, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = domain.DefaultPageSize
	}
	switch params.Sort {
	case domain.StorySortLatest, domain.StorySortPopular, domain.StorySortChapters:
	case "":
		params.Sort = domain.StorySortLatest
	default:
		return nil, &domain.ValidationError{Field: "sort", Message: "unknown sort order: " + params.Sort}
	}

	return s.storyRepo.List(params)
}

func (s *storyService) GetStory(slug string) (*domain.Story, error) {
	if slug == "" {
		return nil, &domain.ValidationError{Field: "slug", Message: "slug is required"}
	}
	return s.storyRepo.GetBySlug(slug)
}

func (s *storyService) ListChapters(storySlug string) (*domain.Story, []*domain.ChapterSummary, error) {
	story, err := s.storyRepo.GetBySlug(storySlug)
	if err != nil {
		return nil, nil, err
	}

	chapters, err := s.chapterRepo.ListByStory(story.ID)
	if err != nil {
		return nil, nil, err
	}
	return story, chapters, nil
}

func (s *storyService) ReadChapter(storySlug, chapterSlug string) (*domain.Story, *domain.ChapterView, error) {
	story, err := s.storyRepo.GetBySlug(storySlug)
	if err != nil {
		return nil, nil, err
	}

	chapter, err := s.chapterRepo.GetBySlug(story.ID, chapterSlug)
	if err != nil {
		return nil, nil, err
	}

	prev, next, err := s.chapterRepo.Neighbors(story.ID, chapter.ChapterNumber)
	if err != nil {
		s.logger.Warn("Failed to load neighbor chapters", "story", storySlug, "chapter", chapterSlug, "error", err)
	}

	// A read counts as a view. Losing one increment to a failure is
	// acceptable, the counter stays approximate either way.
	if err := s.storyRepo.IncrementViewCount(story.ID); err != nil {
		s.logger.Warn("Failed to increment view count", "story", storySlug, "error", err)
	}

	return story, &domain.ChapterView{
		Chapter: chapter,
		Prev:    prev,
		Next:    next,
	}, nil
}
