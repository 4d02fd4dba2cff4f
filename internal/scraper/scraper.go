package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/pkg/logger"
	"reddit-psych-pipeline/pkg/utils"
)

// Scraper collects top posts from the configured subreddits and writes
// one capture file per run into the capture directory. A subreddit that
// fails is logged and skipped; the run keeps going.
type Scraper struct {
	cfg    config.ScraperConfig
	client *Client
	log    logger.Logger
}

// New builds a scraper from config and environment credentials.
func New(cfg config.ScraperConfig, creds config.Creds) (*Scraper, error) {
	if cfg.UserAgent != "" && creds.UserAgent == "" {
		creds.UserAgent = cfg.UserAgent
	}
	client, err := NewClient(creds)
	if err != nil {
		return nil, err
	}
	return &Scraper{cfg: cfg, client: client, log: logger.Log}, nil
}

// Run scrapes all configured subreddits and writes the capture file.
// It returns the capture file path and the number of records collected.
func (s *Scraper) Run() (string, int, error) {
	delay := utils.ParseDuration(s.cfg.RequestDelay, 2*time.Second)

	var records []model.RawRecord
	for i, subreddit := range s.cfg.Subreddits {
		if i > 0 {
			time.Sleep(delay)
		}
		s.log.Infof("scraping r/%s", subreddit)
		posts, err := s.client.TopPosts(subreddit, s.cfg.PostLimit)
		if err != nil {
			s.log.Warnf("r/%s failed after %d posts: %v", subreddit, len(posts), err)
		}
		records = append(records, posts...)
		s.log.Infof("r/%s: %d posts collected", subreddit, len(posts))
	}

	path, err := s.writeCapture(records)
	if err != nil {
		return "", len(records), err
	}
	return path, len(records), nil
}

// writeCapture stores one self-contained capture file named after the
// collection time, so successive runs accumulate instead of overwriting.
func (s *Scraper) writeCapture(records []model.RawRecord) (string, error) {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create capture directory: %w", err)
	}

	now := time.Now().UTC()
	name := fmt.Sprintf("reddit_psych_posts_%s.json", now.Format("20060102_150405"))
	path := filepath.Join(s.cfg.OutputDir, name)

	capture := model.CaptureFile{
		Metadata: model.CaptureMetadata{
			ScrapeDate:      now.Format(time.RFC3339),
			TotalPosts:      len(records),
			Subreddits:      s.cfg.Subreddits,
			PostLimitPerSub: s.cfg.PostLimit,
		},
		Posts: records,
	}

	err := utils.AtomicWriteFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(capture)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
