package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/model"
)

const (
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIBase  = "https://oauth.reddit.com"

	// Reddit caps listing pages at 100 items.
	pageSize = 100
)

// ErrMissingCredentials means REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET are
// not set in the environment or .env file.
var ErrMissingCredentials = errors.New("reddit api credentials not set")

// Client is a read-only Reddit API client using the application-only
// OAuth2 flow.
type Client struct {
	httpClient *http.Client
	creds      config.Creds
	tokenURL   string
	apiBase    string
	token      string
}

// NewClient builds a Reddit client from environment credentials.
func NewClient(creds config.Creds) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if creds.UserAgent == "" {
		creds.UserAgent = "psych_ai_scraper_v1"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		tokenURL:   defaultTokenURL,
		apiBase:    defaultAPIBase,
	}, nil
}

// authenticate obtains an application-only access token.
func (c *Client) authenticate() error {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest(http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return errors.New("token endpoint returned no access_token")
	}
	c.token = tok.AccessToken
	return nil
}

// listingEnvelope is the shape of a Reddit listing response.
type listingEnvelope struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data listingPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingPost struct {
	ID            string  `json:"id"`
	Subreddit     string  `json:"subreddit"`
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	Permalink     string  `json:"permalink"`
	Author        string  `json:"author"`
	LinkFlairText string  `json:"link_flair_text"`
}

// TopPosts pages through the all-time top listing of one subreddit and
// returns raw records in listing order. limit <= 0 means all available.
func (c *Client) TopPosts(subreddit string, limit int) ([]model.RawRecord, error) {
	if c.token == "" {
		if err := c.authenticate(); err != nil {
			return nil, err
		}
	}

	var records []model.RawRecord
	after := ""
	for {
		page, next, err := c.topPage(subreddit, after)
		if err != nil {
			return records, err
		}
		for _, post := range page {
			records = append(records, toRawRecord(post))
			if limit > 0 && len(records) >= limit {
				return records, nil
			}
		}
		if next == "" {
			return records, nil
		}
		after = next
	}
}

func (c *Client) topPage(subreddit, after string) ([]listingPost, string, error) {
	q := url.Values{
		"t":        {"all"},
		"limit":    {fmt.Sprint(pageSize)},
		"raw_json": {"1"},
	}
	if after != "" {
		q.Set("after", after)
	}
	endpoint := fmt.Sprintf("%s/r/%s/top?%s", c.apiBase, url.PathEscape(subreddit), q.Encode())

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("r/%s listing returned %s", subreddit, resp.Status)
	}

	var envelope listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, "", fmt.Errorf("decode r/%s listing: %w", subreddit, err)
	}

	posts := make([]listingPost, 0, len(envelope.Data.Children))
	for _, child := range envelope.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, envelope.Data.After, nil
}

func toRawRecord(p listingPost) model.RawRecord {
	author := p.Author
	if author == "" {
		author = "[deleted]"
	}
	return model.RawRecord{
		Subreddit:   p.Subreddit,
		PostID:      p.ID,
		Title:       strings.TrimSpace(p.Title),
		Body:        strings.TrimSpace(p.Selftext),
		Score:       p.Score,
		NumComments: p.NumComments,
		CreatedUTC:  p.CreatedUTC,
		URL:         "https://reddit.com" + p.Permalink,
		Author:      author,
		Flair:       p.LinkFlairText,
	}
}
