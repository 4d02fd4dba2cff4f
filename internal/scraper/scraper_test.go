package scraper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/pkg/logger"
)

func listingJSON(after string, posts ...listingPost) string {
	type child struct {
		Data listingPost `json:"data"`
	}
	children := make([]child, len(posts))
	for i, p := range posts {
		children[i] = child{Data: p}
	}
	env := map[string]any{
		"data": map[string]any{
			"after":    after,
			"children": children,
		},
	}
	data, _ := json.Marshal(env)
	return string(data)
}

func testClient(t *testing.T, apiHandler http.HandlerFunc) *Client {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-id", user)
		fmt.Fprint(w, `{"access_token":"test-token"}`)
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		creds: config.Creds{
			ClientID:     "client-id",
			ClientSecret: "secret",
			UserAgent:    "test-agent",
		},
		tokenURL: tokenSrv.URL,
		apiBase:  apiSrv.URL,
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.Creds{})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(config.Creds{ClientID: "id", ClientSecret: "secret"})
	assert.NoError(t, err)
}

func TestTopPostsPaginates(t *testing.T) {
	requests := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		if r.URL.Query().Get("after") == "" {
			fmt.Fprint(w, listingJSON("t3_2",
				listingPost{ID: "t3_1", Subreddit: "psychology", Title: "One", Selftext: "body one", Permalink: "/r/psychology/comments/1"},
				listingPost{ID: "t3_2", Subreddit: "psychology", Title: "Two", Permalink: "/r/psychology/comments/2"},
			))
			return
		}
		fmt.Fprint(w, listingJSON("",
			listingPost{ID: "t3_3", Subreddit: "psychology", Title: "Three", Selftext: "body three", Permalink: "/r/psychology/comments/3"},
		))
	})

	records, err := client.TopPosts("psychology", 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2, requests)
	assert.Equal(t, "t3_1", records[0].PostID)
	assert.Equal(t, "https://reddit.com/r/psychology/comments/3", records[2].URL)
	// Link-only post carries an empty body, not a rejection.
	assert.Equal(t, "", records[1].Body)
}

func TestTopPostsHonorsLimit(t *testing.T) {
	requests := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, listingJSON("more",
			listingPost{ID: "t3_1", Subreddit: "cogsci", Title: "One"},
			listingPost{ID: "t3_2", Subreddit: "cogsci", Title: "Two"},
		))
	})

	records, err := client.TopPosts("cogsci", 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, requests)
}

func TestTopPostsListingError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := client.TopPosts("psychology", 0)
	assert.Error(t, err)
}

func TestToRawRecordDeletedAuthor(t *testing.T) {
	record := toRawRecord(listingPost{ID: "t3_1", Subreddit: "a", Title: " Title ", Selftext: " body "})

	assert.Equal(t, "[deleted]", record.Author)
	assert.Equal(t, "Title", record.Title)
	assert.Equal(t, "body", record.Body)
}

func TestWriteCaptureShape(t *testing.T) {
	dir := t.TempDir()
	s := &Scraper{
		cfg: config.ScraperConfig{
			Subreddits: []string{"psychology"},
			PostLimit:  10,
			OutputDir:  dir,
		},
		log: logger.Log,
	}

	records := []model.RawRecord{{Subreddit: "psychology", PostID: "t3_1", Title: "Title"}}
	path, err := s.writeCapture(records)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var capture model.CaptureFile
	require.NoError(t, json.Unmarshal(data, &capture))
	assert.Equal(t, 1, capture.Metadata.TotalPosts)
	assert.Equal(t, []string{"psychology"}, capture.Metadata.Subreddits)
	require.Len(t, capture.Posts, 1)
	assert.Equal(t, "t3_1", capture.Posts[0].PostID)
}
