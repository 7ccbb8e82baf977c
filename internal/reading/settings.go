package reading

import (
	"context"
	"encoding/json"
	"math"

	"jianstory-server/internal/domain"
)

// Bounds of the user-adjustable typography settings.
const (
	MinFontSize   = 12
	MaxFontSize   = 24
	MinLineHeight = 1.2
	MaxLineHeight = 2.0
)

// Field keys accepted by Update.
const (
	FieldFontSize   = "font_size"
	FieldFontFamily = "font_family"
	FieldLineHeight = "line_height"
	FieldTheme      = "theme"
	FieldBackground = "background"
	FieldTextColor  = "text_color"
)

// Settings are a reader's typography preferences. Background and TextColor
// are derived from Theme whenever the theme changes; a stale pair can sit at
// rest if a record was written with custom colors, and nothing re-validates
// it against the catalog.
type Settings struct {
	FontSize   int     `json:"font_size"`
	FontFamily string  `json:"font_family"`
	LineHeight float64 `json:"line_height"`
	Theme      string  `json:"theme"`
	Background string  `json:"background"`
	TextColor  string  `json:"text_color"`
}

// DefaultSettings returns the settings used before a reader has saved any.
func DefaultSettings() Settings {
	return Settings{
		FontSize:   18,
		FontFamily: "Georgia, serif",
		LineHeight: 1.8,
		Theme:      "dark",
		Background: "#111827",
		TextColor:  "#f9fafb",
	}
}

// SettingsRepository is the durable key-value record store behind the
// settings. Load returns (nil, nil) when no record exists for the key.
type SettingsRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, record []byte) error
}

// SettingsStore loads and persists reader settings through an injected
// repository. Load never fails: missing, corrupt or partial records
// degrade to the defaults field by field.
type SettingsStore struct {
	repo   SettingsRepository
	logger domain.Logger
}

func NewSettingsStore(repo SettingsRepository, logger domain.Logger) *SettingsStore {
	return &SettingsStore{repo: repo, logger: logger}
}

// partialSettings distinguishes absent fields from zero values when merging
// a saved record over the defaults.
type partialSettings struct {
	FontSize   *int     `json:"font_size"`
	FontFamily *string  `json:"font_family"`
	LineHeight *float64 `json:"line_height"`
	Theme      *string  `json:"theme"`
	Background *string  `json:"background"`
	TextColor  *string  `json:"text_color"`
}

// Load reads the saved record for key and merges it over the defaults.
// Parse failures are swallowed and treated as "no saved settings".
func (s *SettingsStore) Load(ctx context.Context, key string) Settings {
	settings := DefaultSettings()

	raw, err := s.repo.Load(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to load reading settings, using defaults", "key", key, "error", err)
		return settings
	}
	if len(raw) == 0 {
		return settings
	}

	var saved partialSettings
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.Warn("Corrupt reading settings record, using defaults", "key", key, "error", err)
		return settings
	}

	if saved.FontSize != nil && *saved.FontSize >= MinFontSize && *saved.FontSize <= MaxFontSize {
		settings.FontSize = *saved.FontSize
	}
	if saved.FontFamily != nil && KnownFont(*saved.FontFamily) {
		settings.FontFamily = *saved.FontFamily
	}
	if saved.LineHeight != nil && *saved.LineHeight >= MinLineHeight && *saved.LineHeight <= MaxLineHeight {
		settings.LineHeight = *saved.LineHeight
	}
	if saved.Theme != nil {
		if _, ok := ResolveTheme(*saved.Theme); ok {
			settings.Theme = *saved.Theme
		}
	}
	if saved.Background != nil && *saved.Background != "" {
		settings.Background = *saved.Background
	}
	if saved.TextColor != nil && *saved.TextColor != "" {
		settings.TextColor = *saved.TextColor
	}

	return settings
}

// Persist writes the full record for key, overwriting any prior value.
func (s *SettingsStore) Persist(ctx context.Context, key string, settings Settings) error {
	record, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, key, record); err != nil {
		s.logger.Error("Failed to persist reading settings", err, "key", key)
		return err
	}
	return nil
}

// Update returns a copy of current with field set to value. Changing the
// theme also rewrites Background and TextColor from the theme catalog; an
// unknown theme key keeps the previous colors. Values out of range are
// clamped, line heights snapped to the 0.1 step. Unrecognized fields and
// uncoercible values leave the settings unchanged.
func Update(current Settings, field string, value interface{}) Settings {
	next := current

	switch field {
	case FieldFontSize:
		if n, ok := toInt(value); ok {
			next.FontSize = clampInt(n, MinFontSize, MaxFontSize)
		}
	case FieldFontFamily:
		if s, ok := value.(string); ok && s != "" {
			next.FontFamily = s
		}
	case FieldLineHeight:
		if f, ok := toFloat(value); ok {
			f = math.Round(f*10) / 10
			next.LineHeight = clampFloat(f, MinLineHeight, MaxLineHeight)
		}
	case FieldTheme:
		if key, ok := value.(string); ok && key != "" {
			next.Theme = key
			if theme, found := ResolveTheme(key); found {
				next.Background = theme.Background
				next.TextColor = theme.TextColor
			}
		}
	case FieldBackground:
		if s, ok := value.(string); ok && s != "" {
			next.Background = s
		}
	case FieldTextColor:
		if s, ok := value.(string); ok && s != "" {
			next.TextColor = s
		}
	}

	return next
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func clampFloat(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
