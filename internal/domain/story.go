package domain

import "time"

// StoryStatus enumerates the publication states a story can be in.
type StoryStatus string

const (
	StoryStatusOngoing   StoryStatus = "ongoing"
	StoryStatusCompleted StoryStatus = "completed"
	StoryStatusHiatus    StoryStatus = "hiatus"
)

// Story represents a serialized work composed of ordered chapters.
type Story struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Slug               string      `json:"slug"`
	Author             string      `json:"author"`
	Description        string      `json:"description,omitempty"`
	Status             StoryStatus `json:"status"`
	TotalChapters      int         `json:"total_chapters"`
	ViewCount          int         `json:"view_count"`
	CoverImage         string      `json:"cover_image,omitempty"`
	CloudinaryPublicID string      `json:"cloudinary_public_id,omitempty"`
	SourceURL          string      `json:"source_url,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// Chapter is one sequential unit of a story's content.
type Chapter struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"story_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChapterSummary is the listing view of a chapter, without its content.
type ChapterSummary struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"story_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Story list sort keys.
const (
	StorySortLatest   = "latest"
	StorySortPopular  = "popular"
	StorySortChapters = "chapters"
)

// DefaultPageSize is the number of stories per listing page.
const DefaultPageSize = 12

// StoryListParams controls listing, search and pagination of stories.
type StoryListParams struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
}

// StoryList is one page of stories plus pagination metadata.
type StoryList struct {
	Stories    []*Story `json:"stories"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// ChapterView is a chapter together with its reader navigation neighbors.
type ChapterView struct {
	Chapter *Chapter        `json:"chapter"`
	Prev    *ChapterSummary `json:"prev_chapter,omitempty"`
	Next    *ChapterSummary `json:"next_chapter,omitempty"`
}

// StoryRepository defines persistence operations for stories.
type StoryRepository interface {
	List(params StoryListParams) (*StoryList, error)
	GetBySlug(slug string) (*Story, error)
	GetByID(id string) (*Story, error)
	IncrementViewCount(id string) error
	Upsert(story *Story) (*Story, error)
}

// ChapterRepository defines persistence operations for chapters.
type ChapterRepository interface {
	ListByStory(storyID string) ([]*ChapterSummary, error)
	GetBySlug(storyID, chapterSlug string) (*Chapter, error)
	Neighbors(storyID string, chapterNumber int) (prev, next *ChapterSummary, err error)
	Upsert(chapter *Chapter) error
	CountByStory(storyID string) (int, error)
}

// StoryService defines the use-case operations for browsing stories.
type StoryService interface {
	ListStories(params StoryListParams) (*StoryList, error)
	GetStory(slug string) (*Story, error)
	ListChapters(storySlug string) (*Story, []*ChapterSummary, error)
	ReadChapter(storySlug, chapterSlug string) (*Story, *ChapterView, error)
}
