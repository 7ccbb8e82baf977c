package repository

import (
	"strings"
	"time"
)

// Helper functions for converting postgrest row maps into typed fields.

func getString(data map[string]interface{}, key string) string {
	if val, ok := data[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(data map[string]interface{}, key string) int {
	if val, ok := data[key]; ok && val != nil {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getFloat64(data map[string]interface{}, key string) float64 {
	if val, ok := data[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return 0.0
}

func getTime(data map[string]interface{}, key string) time.Time {
	raw := getString(data, key)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func getMap(data map[string]interface{}, key string) map[string]interface{} {
	if val, ok := data[key]; ok && val != nil {
		if m, ok := val.(map[string]interface{}); ok {
			return m
		}
	}
	return nil
}

// errorHasCode reports whether a postgrest error mentions the given
// PostgreSQL error code. The client surfaces remote errors as flattened
// strings, so this is a substring check.
func errorHasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), code)
}
