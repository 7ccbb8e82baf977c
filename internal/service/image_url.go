package service

import "fmt"

// Cover image rendition served to story listings.
const (
	coverWidth  = 400
	coverHeight = 600
)

// PlaceholderCover is returned when a story has no uploaded cover or no
// image CDN is configured.
const PlaceholderCover = "/images/cover-placeholder.svg"

// CoverURL builds the CDN delivery URL for a story cover: a fixed 400x600
// fill crop with automatic quality and format negotiation. Falls back to
// the bundled placeholder when either side is unconfigured.
func CoverURL(cloudName, publicID string) string {
	if cloudName == "" || publicID == "" {
		return PlaceholderCover
	}
	return fmt.Sprintf(
		"https://res.cloudinary.com/%s/image/upload/w_%d,h_%d,c_fill,q_auto,f_auto/%s",
		cloudName, coverWidth, coverHeight, publicID,
	)
}
