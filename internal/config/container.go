package config

import (
	"time"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/infra/supabase"
	"jianstory-server/internal/reading"
	"jianstory-server/internal/repository"
	"jianstory-server/internal/service"
	"jianstory-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient

	StoryRepository    domain.StoryRepository
	ChapterRepository  domain.ChapterRepository
	ProgressRepository domain.ProgressRepository
	RatingRepository   domain.RatingRepository
	BookmarkRepository domain.BookmarkRepository
	ProfileRepository  domain.ProfileRepository

	AuthService     domain.AuthService
	StoryService    domain.StoryService
	ProgressService domain.ProgressService
	RatingService   domain.RatingService
	BookmarkService domain.BookmarkService
	ProfileService  domain.ProfileService
	SettingsService service.SettingsService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	supabaseClient := supabase.NewClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase not configured, story data is unavailable and settings fall back to local files", "error", err)
	}

	storyRepo := repository.NewSupabaseStoryRepository(supabaseClient, appLogger)
	chapterRepo := repository.NewSupabaseChapterRepository(supabaseClient, appLogger)
	progressRepo := repository.NewSupabaseProgressRepository(supabaseClient, appLogger)
	ratingRepo := repository.NewSupabaseRatingRepository(supabaseClient, appLogger)
	bookmarkRepo := repository.NewSupabaseBookmarkRepository(supabaseClient, appLogger)
	profileRepo := repository.NewSupabaseProfileRepository(supabaseClient, appLogger)

	window := time.Duration(config.GetProgressWindowMillis()) * time.Millisecond

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SupabaseClient: supabaseClient,

		StoryRepository:    storyRepo,
		ChapterRepository:  chapterRepo,
		ProgressRepository: progressRepo,
		RatingRepository:   ratingRepo,
		BookmarkRepository: bookmarkRepo,
		ProfileRepository:  profileRepo,

		AuthService:     service.NewAuthService(supabaseClient, appLogger),
		StoryService:    service.NewStoryService(storyRepo, chapterRepo, appLogger),
		ProgressService: service.NewProgressService(progressRepo, appLogger, reading.SystemClock(), window),
		RatingService:   service.NewRatingService(ratingRepo, appLogger),
		BookmarkService: service.NewBookmarkService(bookmarkRepo, appLogger),
		ProfileService:  service.NewProfileService(profileRepo, appLogger),
		SettingsService: service.NewSettingsService(supabaseClient, config, appLogger),
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}

// Shutdown stops background work owned by the container.
func (c *Container) Shutdown() {
	if c.ProgressService != nil {
		c.ProgressService.Stop()
	}
}
