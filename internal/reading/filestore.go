package reading

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileSettingsRepository keeps one JSON record per key in a local
// directory. It is the storage used when no hosted database is configured:
// best-effort, no atomicity beyond "last complete write wins", and readers
// must tolerate a partially written record.
type FileSettingsRepository struct {
	dir string
}

func NewFileSettingsRepository(dir string) *FileSettingsRepository {
	return &FileSettingsRepository{dir: dir}
}

func (r *FileSettingsRepository) path(key string) string {
	return filepath.Join(r.dir, unsafeKeyChars.ReplaceAllString(key, "-")+".json")
}

// Load returns the raw record for key, or (nil, nil) when none exists.
func (r *FileSettingsRepository) Load(_ context.Context, key string) ([]byte, error) {
	record, err := os.ReadFile(r.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// Save overwrites the record for key.
func (r *FileSettingsRepository) Save(_ context.Context, key string, record []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.path(key), record, 0o644)
}
