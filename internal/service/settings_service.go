package service

import (
	"context"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
	"jianstory-server/internal/repository"
)

// updateOrder fixes the order patch fields are applied in, so a patch that
// sets both a theme and an explicit color pair resolves the same way every
// time: the theme rewrites the colors first, explicit colors win after.
var updateOrder = []string{
	reading.FieldFontSize,
	reading.FieldFontFamily,
	reading.FieldLineHeight,
	reading.FieldTheme,
	reading.FieldBackground,
	reading.FieldTextColor,
}

// SettingsService loads and updates a reader's typography settings.
type SettingsService interface {
	GetSettings(ctx context.Context, userID string, token string) reading.Settings
	UpdateSettings(ctx context.Context, userID string, token string, changes map[string]interface{}) (reading.Settings, error)
}

type settingsService struct {
	supabaseClient domain.SupabaseClient
	fileRepo       *reading.FileSettingsRepository
	useFile        bool
	logger         domain.Logger
}

// NewSettingsService creates a new settings service. When no hosted
// database is configured, settings fall back to per-user files under the
// data directory.
func NewSettingsService(supabaseClient domain.SupabaseClient, cfg domain.Config, logger domain.Logger) SettingsService {
	return &settingsService{
		supabaseClient: supabaseClient,
		fileRepo:       reading.NewFileSettingsRepository(cfg.GetDataDir()),
		useFile:        cfg.GetSupabaseURL() == "",
		logger:         logger,
	}
}

// storeFor builds a settings store scoped to one request's credentials.
func (s *settingsService) storeFor(token string) *reading.SettingsStore {
	if s.useFile {
		return reading.NewSettingsStore(s.fileRepo, s.logger)
	}
	repo := repository.NewSupabaseSettingsRepository(s.supabaseClient, token, s.logger)
	return reading.NewSettingsStore(repo, s.logger)
}

func (s *settingsService) GetSettings(ctx context.Context, userID string, token string) reading.Settings {
	if userID == "" {
		return reading.DefaultSettings()
	}
	return s.storeFor(token).Load(ctx, userID)
}

// UpdateSettings applies a partial patch over the stored settings and
// persists the result. The updated settings are returned even when the
// write fails; persistence is best effort.
func (s *settingsService) UpdateSettings(ctx context.Context, userID string, token string, changes map[string]interface{}) (reading.Settings, error) {
	if userID == "" {
		return reading.DefaultSettings(), domain.ErrUnauthenticated
	}

	store := s.storeFor(token)
	settings := store.Load(ctx, userID)
	for _, field := range updateOrder {
		if value, ok := changes[field]; ok {
			settings = reading.Update(settings, field, value)
		}
	}

	if err := store.Persist(ctx, userID, settings); err != nil {
		return settings, err
	}
	return settings, nil
}
