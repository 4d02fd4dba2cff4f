package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit-psych-pipeline/internal/model"
)

func TestNormalizeValidRecord(t *testing.T) {
	raw := model.RawRecord{
		Subreddit:  "psychology",
		PostID:     "t3_abc",
		Title:      "  Why do we dream?  ",
		Body:       "\nSome thoughts.\n",
		Score:      42,
		CreatedUTC: 1700000000,
		URL:        "https://reddit.com/r/psychology/comments/abc",
	}

	post, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "psychology", post.Subreddit)
	assert.Equal(t, "t3_abc", post.SourceID)
	assert.Equal(t, "Why do we dream?", post.Title)
	assert.Equal(t, "Some thoughts.", post.Body)
	assert.Equal(t, 42, post.Score)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), post.CreatedAt)
	assert.Equal(t, raw.URL, post.Permalink)
}

func TestNormalizeAbsentBodyIsEmptyString(t *testing.T) {
	raw := model.RawRecord{Subreddit: "cogsci", PostID: "t3_x", Title: "Link post"}

	post, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "", post.Body)
}

func TestNormalizeRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		raw   model.RawRecord
		field string
	}{
		{"missing title", model.RawRecord{Subreddit: "a", PostID: "t3_1"}, "title"},
		{"whitespace title", model.RawRecord{Subreddit: "a", PostID: "t3_1", Title: "   "}, "title"},
		{"missing post id", model.RawRecord{Subreddit: "a", Title: "Hi"}, "post_id"},
		{"missing subreddit", model.RawRecord{PostID: "t3_1", Title: "Hi"}, "subreddit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw)
			require.Error(t, err)
			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.field, malformed.Field)
		})
	}
}

func TestNormalizePassesMarkdownThrough(t *testing.T) {
	raw := model.RawRecord{
		Subreddit: "mentalhealth",
		PostID:    "t3_md",
		Title:     "Title",
		Body:      "**bold** and &amp; entities stay as-is",
	}

	post, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "**bold** and &amp; entities stay as-is", post.Body)
}
