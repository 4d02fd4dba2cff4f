package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/pkg/logger"
	"reddit-psych-pipeline/pkg/utils"
)

var (
	// ErrNoInputFiles means the input directory is missing or holds no
	// capture files. Surfaced instead of writing an empty dataset, so a
	// configuration mistake is not masked.
	ErrNoInputFiles = errors.New("no capture files in input directory")

	// ErrNoReadableFiles means capture files exist but none could be
	// parsed.
	ErrNoReadableFiles = errors.New("no capture file could be read")
)

// Compiler orchestrates Normalizer -> Quality Filter -> Deduplicator over
// all capture files and writes the canonical dataset, one post per line.
type Compiler struct {
	opts model.CompileOptions
	log  logger.Logger
}

// NewCompiler builds a compiler for one run. Options are explicit; there
// is no ambient configuration.
func NewCompiler(opts model.CompileOptions) *Compiler {
	return &Compiler{opts: opts, log: logger.Log}
}

// Run executes one full compile pass. Record- and file-level problems are
// counted and skipped; only structural failures (no readable input, output
// write failure) are returned as errors. The summary is valid either way.
func (c *Compiler) Run() (model.RunSummary, error) {
	var summary model.RunSummary

	files, err := listCaptureFiles(c.opts.InputDir)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("%w: %s", ErrNoInputFiles, c.opts.InputDir)
	}

	filter := QualityFilter{
		MinBodyLength: c.opts.MinBodyLength,
		KeepLinkOnly:  c.opts.KeepLinkOnly,
	}
	dedup := NewDeduplicator(c.opts.Dedup)

	for _, path := range files {
		records, err := readCaptureFile(path)
		if err != nil {
			summary.FilesSkipped++
			c.log.Warnf("skipping unreadable capture file %s: %v", filepath.Base(path), err)
			continue
		}
		summary.FilesRead++

		for _, raw := range records {
			summary.RecordsSeen++

			post, err := Normalize(raw)
			if err != nil {
				summary.Malformed++
				continue
			}
			if !filter.Keep(post) {
				summary.Filtered++
				continue
			}
			if dedup.Accept(post) == DuplicateDropped {
				summary.Duplicates++
			}
		}
	}

	if summary.FilesRead == 0 {
		return summary, fmt.Errorf("%w (%d skipped)", ErrNoReadableFiles, summary.FilesSkipped)
	}

	posts := dedup.Finalize()
	summary.Kept = len(posts)

	if err := writeDataset(c.opts.OutputPath, posts); err != nil {
		return summary, fmt.Errorf("write dataset %s: %w", c.opts.OutputPath, err)
	}

	return summary, nil
}

// listCaptureFiles returns the capture files under dir in lexicographic
// filename order. Sorting is part of the reproducibility contract: output
// order must not depend on filesystem enumeration order.
func listCaptureFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, dir)
		}
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// readCaptureFile parses one capture file. The collector writes a single
// JSON document with a metadata header and a posts list; a bare top-level
// array of records is accepted too.
func readCaptureFile(path string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// A capture document with zero posts marshals "posts" as null; that
	// is still a readable file with zero records, not a parse failure.
	var capture model.CaptureFile
	if err := json.Unmarshal(data, &capture); err == nil {
		return capture.Posts, nil
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("not a capture document: %w", err)
	}
	return records, nil
}

// writeDataset serializes posts as JSONL through a temp file and rename,
// so a crash mid-write never corrupts a previously valid dataset.
func writeDataset(path string, posts []model.Post) error {
	return utils.AtomicWriteFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, p := range posts {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
		return nil
	})
}
