package pipeline

import (
	"crypto/sha256"
	"encoding/hex"

	"reddit-psych-pipeline/internal/model"
)

// Outcome is the three-way result of offering a post to the deduplicator.
type Outcome int

const (
	Inserted Outcome = iota
	DuplicateDropped
)

// Deduplicator collapses duplicates across all capture files, keeping the
// first-seen candidate per identity key as canonical. Later sightings are
// counted and discarded; their metadata is never merged in.
type Deduplicator struct {
	enabled bool
	seen    map[string]bool
	posts   []model.Post
	dropped int
	frozen  bool
}

// NewDeduplicator creates a deduplicator. When enabled is false every
// post is accepted, which exists purely for debugging compile runs.
func NewDeduplicator(enabled bool) *Deduplicator {
	return &Deduplicator{
		enabled: enabled,
		seen:    make(map[string]bool),
	}
}

// Accept offers a normalized, filter-passed post. Duplication is expected
// traffic, so the outcome is a value, never an error.
func (d *Deduplicator) Accept(p model.Post) Outcome {
	if d.frozen {
		return DuplicateDropped
	}
	if !d.enabled {
		d.posts = append(d.posts, p)
		return Inserted
	}

	key := identityKey(p)
	if d.seen[key] {
		d.dropped++
		return DuplicateDropped
	}
	d.seen[key] = true
	d.posts = append(d.posts, p)
	return Inserted
}

// Finalize freezes and returns the canonical posts in first-seen order.
// Calling it again returns the same frozen sequence.
func (d *Deduplicator) Finalize() []model.Post {
	d.frozen = true
	return d.posts
}

// Dropped returns how many duplicates were discarded so far.
func (d *Deduplicator) Dropped() int {
	return d.dropped
}

// identityKey decides whether two records represent the same logical
// post: (subreddit, source_id) when the source id exists, falling back to
// (subreddit, permalink), falling back to a content hash of
// (subreddit, title, body). The hash fallback treats an edited repost as
// a new entity; that trade-off is accepted.
func identityKey(p model.Post) string {
	if p.SourceID != "" {
		return "id\x00" + p.Subreddit + "\x00" + p.SourceID
	}
	if p.Permalink != "" {
		return "link\x00" + p.Subreddit + "\x00" + p.Permalink
	}
	h := sha256.New()
	h.Write([]byte(p.Subreddit))
	h.Write([]byte{0})
	h.Write([]byte(p.Title))
	h.Write([]byte{0})
	h.Write([]byte(p.Body))
	return "hash\x00" + hex.EncodeToString(h.Sum(nil))
}
