package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/internal/pipeline"
	"reddit-psych-pipeline/internal/store"
	"reddit-psych-pipeline/pkg/logger"
	"reddit-psych-pipeline/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	input := flag.String("input", "", "capture directory (overrides config)")
	output := flag.String("output", "", "compiled dataset path (overrides config)")
	minBody := flag.Int("min-body-length", 0, "minimum body length in characters (overrides config)")
	keepLinkOnly := flag.Bool("keep-link-only", false, "keep link-only posts with empty body (overrides config)")
	noDedup := flag.Bool("no-dedup", false, "disable deduplication (debugging)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	logger.Log = logger.New(cfg.Logging.Level)

	opts := cfg.CompileOptions()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			opts.InputDir = *input
		case "output":
			opts.OutputPath = *output
		case "min-body-length":
			opts.MinBodyLength = *minBody
		case "keep-link-only":
			opts.KeepLinkOnly = *keepLinkOnly
		case "no-dedup":
			opts.Dedup = !*noDedup
		}
	})

	runID := uuid.New().String()
	tracked := store.InitDB(cfg.Store.Path) == nil
	if tracked {
		defer store.CloseDB()
		store.SaveRun(runID, opts)
		store.UpdateRunStatus(runID, model.RunStatusRunning)
	} else {
		logger.Log.Warnf("run history unavailable at %s", cfg.Store.Path)
	}

	summary, err := pipeline.NewCompiler(opts).Run()
	if tracked {
		store.SaveRunSummary(runID, summary)
	}
	if err != nil {
		if tracked {
			store.SaveRunError(runID, err)
			store.UpdateRunStatus(runID, model.RunStatusFailed)
		}
		fmt.Fprintf(os.Stderr, "❌ Compile failed: %v\n", err)
		if errors.Is(err, pipeline.ErrNoInputFiles) {
			fmt.Fprintf(os.Stderr, "   Add capture files to %s or run the scraper first.\n", opts.InputDir)
		}
		os.Exit(1)
	}
	if tracked {
		store.UpdateRunStatus(runID, model.RunStatusCompleted)
	}

	printSummary(opts, summary)
}

func printSummary(opts model.CompileOptions, summary model.RunSummary) {
	fmt.Println("✅ PROCESSING COMPLETE")
	fmt.Printf("   Input files read:     %d (%d skipped)\n", summary.FilesRead, summary.FilesSkipped)
	fmt.Printf("   Records seen:         %d\n", summary.RecordsSeen)
	fmt.Printf("   Malformed rejected:   %d\n", summary.Malformed)
	fmt.Printf("   Filtered rejected:    %d\n", summary.Filtered)
	fmt.Printf("   Duplicates dropped:   %d\n", summary.Duplicates)
	fmt.Printf("   Final clean dataset:  %d posts\n", summary.Kept)
	fmt.Printf("   Output: %s\n", opts.OutputPath)
	if size, err := utils.FileSize(opts.OutputPath); err == nil {
		fmt.Printf("   File size: %.1f KB\n", float64(size)/1024)
	}

	posts, err := pipeline.LoadDataset(opts.OutputPath)
	if err != nil {
		logger.Log.Warnf("stats unavailable: %v", err)
		return
	}
	stats := pipeline.ComputeStats(posts)
	if stats.TotalPosts == 0 {
		return
	}

	fmt.Println()
	fmt.Println("📊 DATASET STATISTICS")
	fmt.Printf("   Average body length: %.1f characters\n", stats.AvgBodyLength)

	subs := make([]string, 0, len(stats.Subreddits))
	for sub := range stats.Subreddits {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		si, sj := stats.Subreddits[subs[i]], stats.Subreddits[subs[j]]
		if si.Count != sj.Count {
			return si.Count > sj.Count
		}
		return subs[i] < subs[j]
	})
	for _, sub := range subs {
		s := stats.Subreddits[sub]
		fmt.Printf("      • %-30s %4d posts  (avg: %.0f chars)\n", sub, s.Count, s.AvgLength)
	}
}
