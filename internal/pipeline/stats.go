package pipeline

import (
	"unicode/utf8"

	"reddit-psych-pipeline/internal/model"
)

// SubredditStats is the per-subreddit slice of dataset statistics.
type SubredditStats struct {
	Count     int     `json:"count"`
	AvgLength float64 `json:"avg_length"`
}

// DatasetStats summarizes a compiled dataset for the run report.
type DatasetStats struct {
	TotalPosts    int                       `json:"total_posts"`
	AvgBodyLength float64                   `json:"avg_body_length"`
	Subreddits    map[string]SubredditStats `json:"subreddit_stats"`
}

// ComputeStats calculates dataset statistics over the final posts.
func ComputeStats(posts []model.Post) DatasetStats {
	stats := DatasetStats{Subreddits: make(map[string]SubredditStats)}
	if len(posts) == 0 {
		return stats
	}

	totals := make(map[string]int)
	lengths := make(map[string]int)
	totalLength := 0

	for _, p := range posts {
		n := utf8.RuneCountInString(p.Body)
		totalLength += n
		totals[p.Subreddit]++
		lengths[p.Subreddit] += n
	}

	stats.TotalPosts = len(posts)
	stats.AvgBodyLength = float64(totalLength) / float64(len(posts))
	for sub, count := range totals {
		stats.Subreddits[sub] = SubredditStats{
			Count:     count,
			AvgLength: float64(lengths[sub]) / float64(count),
		}
	}
	return stats
}
