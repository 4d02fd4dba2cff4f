package utils

import (
	"os"
	"time"
)

// ParseDuration safely parses duration strings like "2s"; falls back to
// the given default on empty or invalid input.
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// FileSize returns the size of a file in bytes.
func FileSize(path string) (int64, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
