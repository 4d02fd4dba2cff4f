package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"reddit-psych-pipeline/internal/model"
)

// maxLineBytes bounds one dataset line when reading it back.
const maxLineBytes = 4 * 1024 * 1024

// LoadDataset reads a compiled JSONL dataset back into memory, in file
// order. Each line must parse independently.
func LoadDataset(path string) ([]model.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var posts []model.Post
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var post model.Post
		if err := json.Unmarshal([]byte(line), &post); err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", len(posts)+1, err)
		}
		posts = append(posts, post)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
