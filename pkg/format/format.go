package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Average reading speed used for the "x min read" label.
const wordsPerMinute = 200

var (
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
	slugTrim       = regexp.MustCompile(`^-+|-+$`)
)

// Slugify converts a title into a URL-safe slug: lowercased, punctuation
// stripped, whitespace and underscores collapsed into single hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}

// ViewCount renders a view counter compactly: 950 -> "950",
// 1200 -> "1.2K", 3400000 -> "3.4M".
func ViewCount(count int) string {
	switch {
	case count >= 1000000:
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	case count >= 1000:
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	default:
		return fmt.Sprintf("%d", count)
	}
}

// ReadingTime estimates how long a chapter takes to read from its word count.
func ReadingTime(wordCount int) string {
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return "< 1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Date renders a timestamp for story and chapter listings.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
