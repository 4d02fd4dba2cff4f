package model

import "time"

// RawRecord is one entry exactly as a capture file stores it. Field names
// mirror the collector's JSON output; anything may be missing or empty.
type RawRecord struct {
	Subreddit   string  `json:"subreddit"`
	PostID      string  `json:"post_id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Author      string  `json:"author"`
	Flair       string  `json:"flair,omitempty"`
}

// CaptureMetadata describes one collector run.
type CaptureMetadata struct {
	ScrapeDate      string   `json:"scrape_date"`
	TotalPosts      int      `json:"total_posts"`
	Subreddits      []string `json:"subreddits"`
	PostLimitPerSub int      `json:"post_limit_per_subreddit"`
}

// CaptureFile is the on-disk shape of a single collector run: a metadata
// header plus the batch of raw records gathered in that run.
type CaptureFile struct {
	Metadata CaptureMetadata `json:"metadata"`
	Posts    []RawRecord     `json:"posts"`
}

// Post is the canonical, pipeline-internal representation of one logical
// post. Field declaration order fixes the JSONL field order, so the
// compiled dataset stays byte-stable across runs.
type Post struct {
	Subreddit string    `json:"subreddit"`
	SourceID  string    `json:"source_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	Permalink string    `json:"permalink"`
}
