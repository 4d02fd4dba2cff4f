package pipeline

import (
	"fmt"
	"strings"
	"time"

	"reddit-psych-pipeline/internal/model"
)

// MalformedRecordError reports a raw record missing a required field.
// Malformed records are expected input, not failures: callers count them
// and move on.
type MalformedRecordError struct {
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: missing %s", e.Field)
}

// Normalize maps one raw captured record into the canonical Post shape.
// It validates shape only: title and body are whitespace-trimmed, an
// absent body becomes the empty string (link-only posts are legitimate),
// and HTML entities or markdown in the body pass through untouched.
func Normalize(raw model.RawRecord) (model.Post, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return model.Post{}, &MalformedRecordError{Field: "title"}
	}
	if raw.PostID == "" {
		return model.Post{}, &MalformedRecordError{Field: "post_id"}
	}
	if raw.Subreddit == "" {
		return model.Post{}, &MalformedRecordError{Field: "subreddit"}
	}

	var createdAt time.Time
	if raw.CreatedUTC > 0 {
		createdAt = time.Unix(int64(raw.CreatedUTC), 0).UTC()
	}

	return model.Post{
		Subreddit: raw.Subreddit,
		SourceID:  raw.PostID,
		Title:     title,
		Body:      strings.TrimSpace(raw.Body),
		CreatedAt: createdAt,
		Score:     raw.Score,
		Permalink: raw.URL,
	}, nil
}
