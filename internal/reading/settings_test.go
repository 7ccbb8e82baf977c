package reading

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSettingsStore_Load_EmptyStorageReturnsDefaults(t *testing.T) {
	store := NewSettingsStore(newMemorySettingsRepo(), &mockLogger{})

	got := store.Load(context.Background(), "user-1")

	if got != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSettingsStore_Load_RepositoryErrorReturnsDefaults(t *testing.T) {
	repo := newMemorySettingsRepo()
	repo.loadErr = errRemote
	store := NewSettingsStore(repo, &mockLogger{})

	got := store.Load(context.Background(), "user-1")

	if got != DefaultSettings() {
		t.Fatalf("expected defaults on load error, got %+v", got)
	}
}

func TestSettingsStore_Load_CorruptRecordReturnsDefaults(t *testing.T) {
	repo := newMemorySettingsRepo()
	repo.records["user-1"] = []byte(`{"font_size": 22, "the`)
	store := NewSettingsStore(repo, &mockLogger{})

	got := store.Load(context.Background(), "user-1")

	if got != DefaultSettings() {
		t.Fatalf("expected defaults on corrupt record, got %+v", got)
	}
}

func TestSettingsStore_Load_PartialRecordMergesOverDefaults(t *testing.T) {
	repo := newMemorySettingsRepo()
	repo.records["user-1"] = []byte(`{"font_size": 22, "theme": "sepia", "background": "#f7f3e9", "text_color": "#8b4513"}`)
	store := NewSettingsStore(repo, &mockLogger{})

	got := store.Load(context.Background(), "user-1")

	if got.FontSize != 22 {
		t.Fatalf("expected font size 22, got %d", got.FontSize)
	}
	if got.Theme != "sepia" {
		t.Fatalf("expected theme sepia, got %s", got.Theme)
	}
	defaults := DefaultSettings()
	if got.FontFamily != defaults.FontFamily {
		t.Fatalf("expected default font family %s, got %s", defaults.FontFamily, got.FontFamily)
	}
	if got.LineHeight != defaults.LineHeight {
		t.Fatalf("expected default line height %v, got %v", defaults.LineHeight, got.LineHeight)
	}
}

func TestSettingsStore_Load_UnknownValuesFallBackSilently(t *testing.T) {
	repo := newMemorySettingsRepo()
	repo.records["user-1"] = []byte(`{"font_size": 99, "font_family": "Comic Sans", "line_height": 9.9, "theme": "no-such-theme"}`)
	store := NewSettingsStore(repo, &mockLogger{})

	got := store.Load(context.Background(), "user-1")

	if got != DefaultSettings() {
		t.Fatalf("expected defaults for out-of-catalog values, got %+v", got)
	}
}

func TestUpdate_ThemeChangeRewritesColors(t *testing.T) {
	for _, theme := range Themes {
		next := Update(DefaultSettings(), FieldTheme, theme.Key)
		if next.Theme != theme.Key {
			t.Fatalf("expected theme %s, got %s", theme.Key, next.Theme)
		}
		resolved, ok := ResolveTheme(theme.Key)
		if !ok {
			t.Fatalf("catalog theme %s did not resolve", theme.Key)
		}
		if next.Background != resolved.Background || next.TextColor != resolved.TextColor {
			t.Fatalf("theme %s: expected colors (%s, %s), got (%s, %s)",
				theme.Key, resolved.Background, resolved.TextColor, next.Background, next.TextColor)
		}
	}
}

func TestUpdate_UnknownThemeKeepsPreviousColors(t *testing.T) {
	current := Update(DefaultSettings(), FieldTheme, "sepia")

	next := Update(current, FieldTheme, "no-such-theme")

	if next.Theme != "no-such-theme" {
		t.Fatalf("expected theme key to be set, got %s", next.Theme)
	}
	if next.Background != current.Background || next.TextColor != current.TextColor {
		t.Fatalf("expected stale colors (%s, %s), got (%s, %s)",
			current.Background, current.TextColor, next.Background, next.TextColor)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	cases := []struct {
		field string
		value interface{}
	}{
		{FieldFontSize, 20},
		{FieldFontFamily, "Lora, serif"},
		{FieldLineHeight, 1.6},
		{FieldTheme, "night"},
		{FieldBackground, "#123456"},
	}
	for _, c := range cases {
		once := Update(DefaultSettings(), c.field, c.value)
		twice := Update(once, c.field, c.value)
		if once != twice {
			t.Fatalf("update %s=%v not idempotent: %+v vs %+v", c.field, c.value, once, twice)
		}
	}
}

func TestUpdate_ClampsOutOfRangeValues(t *testing.T) {
	if got := Update(DefaultSettings(), FieldFontSize, 99).FontSize; got != MaxFontSize {
		t.Fatalf("expected font size clamped to %d, got %d", MaxFontSize, got)
	}
	if got := Update(DefaultSettings(), FieldFontSize, 3).FontSize; got != MinFontSize {
		t.Fatalf("expected font size clamped to %d, got %d", MinFontSize, got)
	}
	if got := Update(DefaultSettings(), FieldLineHeight, 5.0).LineHeight; got != MaxLineHeight {
		t.Fatalf("expected line height clamped to %v, got %v", MaxLineHeight, got)
	}
}

func TestUpdate_CoercesJSONNumbers(t *testing.T) {
	// JSON decoding hands numbers over as float64.
	if got := Update(DefaultSettings(), FieldFontSize, float64(21)).FontSize; got != 21 {
		t.Fatalf("expected font size 21 from float64, got %d", got)
	}
	if got := Update(DefaultSettings(), FieldLineHeight, 2).LineHeight; got != 2.0 {
		t.Fatalf("expected line height 2.0 from int, got %v", got)
	}
}

func TestSettingsStore_PersistThenFreshLoadRestores(t *testing.T) {
	repo := newMemorySettingsRepo()
	store := NewSettingsStore(repo, &mockLogger{})
	ctx := context.Background()

	settings := store.Load(ctx, "user-1")
	settings = Update(settings, FieldFontSize, 22)
	settings = Update(settings, FieldTheme, "sepia")
	if err := store.Persist(ctx, "user-1", settings); err != nil {
		t.Fatalf("expected persist to succeed, got %v", err)
	}

	// Fresh store over the same storage, as a new session would see it.
	fresh := NewSettingsStore(repo, &mockLogger{})
	got := fresh.Load(ctx, "user-1")

	if got.FontSize != 22 {
		t.Fatalf("expected restored font size 22, got %d", got.FontSize)
	}
	if got.Background != "#f7f3e9" {
		t.Fatalf("expected restored background #f7f3e9, got %s", got.Background)
	}
	if got.TextColor != "#8b4513" {
		t.Fatalf("expected restored text color #8b4513, got %s", got.TextColor)
	}
}

func TestFileSettingsRepository_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileSettingsRepository(dir)
	ctx := context.Background()

	if record, err := repo.Load(ctx, "device-1"); err != nil || record != nil {
		t.Fatalf("expected no record for fresh key, got %v / %v", record, err)
	}

	if err := repo.Save(ctx, "device-1", []byte(`{"font_size":14}`)); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	record, err := repo.Load(ctx, "device-1")
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if string(record) != `{"font_size":14}` {
		t.Fatalf("unexpected record %s", record)
	}
}

func TestFileSettingsRepository_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileSettingsRepository(dir)
	ctx := context.Background()

	if err := repo.Save(ctx, "../escape/attempt", []byte(`{}`)); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	if repo.path("../escape/attempt") != filepath.Join(dir, "---escape-attempt.json") {
		t.Fatalf("unexpected sanitized path %s", repo.path("../escape/attempt"))
	}
}
