package pipeline

import (
	"strings"
	"unicode/utf8"

	"reddit-psych-pipeline/internal/model"
)

// deletedMarkers flag bodies left behind when a post was deleted or
// removed. Matching is by containment: moderation tooling often appends
// a note around the marker instead of replacing the body outright.
var deletedMarkers = []string{
	"[deleted]",
	"[removed]",
	"[removed by reddit]",
	"[deleted by user]",
	"**removed**",
	"**deleted**",
}

// QualityFilter drops posts that fail the minimum-content policy before
// they reach deduplication, so duplicate counts stay meaningful.
type QualityFilter struct {
	// MinBodyLength is the minimum body length in runes.
	MinBodyLength int
	// KeepLinkOnly exempts posts with an empty body from the body-length
	// rule; their value lies in the title/link.
	KeepLinkOnly bool
}

// Keep reports whether a normalized post passes the content policy.
func (f QualityFilter) Keep(p model.Post) bool {
	body := strings.ToLower(p.Body)
	for _, marker := range deletedMarkers {
		if strings.Contains(body, marker) {
			return false
		}
	}
	if utf8.RuneCountInString(p.Body) >= f.MinBodyLength {
		return true
	}
	if f.KeepLinkOnly && p.Body == "" {
		return true
	}
	return false
}
