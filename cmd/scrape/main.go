package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/scraper"
	"reddit-psych-pipeline/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	outDir := flag.String("out", "", "capture directory (overrides config)")
	limit := flag.Int("limit", 0, "max posts per subreddit (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	logger.Log = logger.New(cfg.Logging.Level)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Scraper.OutputDir = *outDir
		case "limit":
			cfg.Scraper.PostLimit = *limit
		}
	})

	s, err := scraper.New(cfg.Scraper, config.LoadCreds())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		if errors.Is(err, scraper.ErrMissingCredentials) {
			fmt.Fprintln(os.Stderr, "   Put REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET in .env")
			fmt.Fprintln(os.Stderr, "   (create a script app at https://www.reddit.com/prefs/apps)")
		}
		os.Exit(1)
	}

	path, count, err := s.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Scrape failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Capture written: %s (%d posts)\n", path, count)
}
