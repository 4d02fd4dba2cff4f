package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reddit-psych-pipeline/internal/model"
)

func TestFilterBodyLength(t *testing.T) {
	f := QualityFilter{MinBodyLength: 5}

	assert.True(t, f.Keep(model.Post{Title: "t", Body: "I feel low"}))
	assert.False(t, f.Keep(model.Post{Title: "t", Body: "meh"}))
	assert.True(t, f.Keep(model.Post{Title: "t", Body: "12345"}))
}

func TestFilterLinkOnlyExemption(t *testing.T) {
	linkOnly := model.Post{Title: "Interesting study", Body: ""}

	exempt := QualityFilter{MinBodyLength: 5, KeepLinkOnly: true}
	strict := QualityFilter{MinBodyLength: 5, KeepLinkOnly: false}

	assert.True(t, exempt.Keep(linkOnly))
	assert.False(t, strict.Keep(linkOnly))

	// The exemption covers empty bodies only; short bodies still drop.
	short := model.Post{Title: "t", Body: "hm"}
	assert.False(t, exempt.Keep(short))
}

func TestFilterDropsDeletedMarkers(t *testing.T) {
	f := QualityFilter{MinBodyLength: 5}

	for _, body := range []string{"[deleted]", "[removed]", "[Removed by Reddit]", "**deleted**"} {
		assert.False(t, f.Keep(model.Post{Title: "t", Body: body}), body)
	}

	// Markers count even when wrapped in a moderation note.
	assert.False(t, f.Keep(model.Post{Title: "t", Body: "mod note: [removed] by admins"}))
	assert.True(t, f.Keep(model.Post{Title: "t", Body: "I removed all caffeine from my diet"}))
}
