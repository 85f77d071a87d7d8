package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a newsapi.org-compatible news service. Responses are
// normalized into the canonical Article shape before they leave this
// package: empty tag/highlight/note lists, all flags false, id = URL.
type Client struct {
	baseURL string
	apiKey  string
	country string
	http    *http.Client
}

func NewClient(baseURL, apiKey, country string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if country == "" {
		country = "us"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		country: country,
		http:    httpClient,
	}
}

type rawArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

type articlesResponse struct {
	Status   string       `json:"status"`
	Articles []rawArticle `json:"articles"`
}

// FetchTop returns the current top headlines.
func (c *Client) FetchTop(ctx context.Context) ([]Article, error) {
	q := make(url.Values)
	q.Set("country", c.country)
	return c.fetch(ctx, "/top-headlines?"+q.Encode(), "top headlines")
}

// FetchSearch returns articles matching the query.
func (c *Client) FetchSearch(ctx context.Context, query string) ([]Article, error) {
	q := make(url.Values)
	q.Set("q", query)
	return c.fetch(ctx, "/everything?"+q.Encode(), "search")
}

// FetchPopular returns the general popular feed.
func (c *Client) FetchPopular(ctx context.Context) ([]Article, error) {
	q := make(url.Values)
	q.Set("country", c.country)
	q.Set("category", "general")
	return c.fetch(ctx, "/top-headlines?"+q.Encode(), "popular")
}

func (c *Client) fetch(ctx context.Context, path, resource string) ([]Article, error) {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resource, err)
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		if raw.URL == "" {
			// No URL means no identity; the article cannot participate
			// in dedup or annotation, so it is dropped here.
			continue
		}
		articles = append(articles, normalize(raw))
	}
	return articles, nil
}

func normalize(raw rawArticle) Article {
	return Article{
		ID:          raw.URL,
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		URL:         raw.URL,
		Image:       raw.URLToImage,
		PublishedAt: raw.PublishedAt,
		Source: Source{
			Name: raw.Source.Name,
			URL:  raw.URL,
		},
		Tags:       []Tag{},
		Highlights: []string{},
		Notes:      []string{},
	}
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
