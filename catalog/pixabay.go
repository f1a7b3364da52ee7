// Package catalog fetches the photo catalog from the Pixabay search API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/constants"
)

// DefaultEndpoint is the Pixabay image search endpoint
const DefaultEndpoint = "https://pixabay.com/api/"

var (
	ErrNoAPIKey = errors.New("catalog: pixabay api key is not set")
	ErrStatus   = errors.New("catalog: unexpected status")
)

// Hit is one search result record
type Hit struct {
	ID            int    `json:"id"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	PreviewURL    string `json:"previewURL"`
	Tags          string `json:"tags"`
	User          string `json:"user"`
}

// searchResponse mirrors the Pixabay JSON envelope
type searchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Query holds the search parameters
type Query struct {
	Q             string `yaml:"q"`
	Lang          string `yaml:"lang"`
	Category      string `yaml:"category"`
	Colors        string `yaml:"colors"`
	Order         string `yaml:"order"`
	SafeSearch    bool   `yaml:"safesearch"`
	EditorsChoice bool   `yaml:"editors_choice"`
	MinWidth      int    `yaml:"min_width"`
	MinHeight     int    `yaml:"min_height"`
	Page          int    `yaml:"page"`
	PerPage       int    `yaml:"per_page"`
}

// DefaultQuery returns the wall's standard city photo query
func DefaultQuery() Query {
	return Query{
		Q:             "city",
		Lang:          "en",
		Order:         "popular",
		EditorsChoice: true,
		MinWidth:      constants.TileWidth,
		MinHeight:     constants.TileHeight,
		Page:          1,
		PerPage:       25,
	}
}

// Key returns a stable cache key for the query
func (q Query) Key() string {
	return q.values("").Encode()
}

// values encodes the query; empty fields are omitted
func (q Query) values(apiKey string) url.Values {
	v := url.Values{}
	if apiKey != "" {
		v.Set("key", apiKey)
	}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("q", q.Q)
	set("lang", q.Lang)
	set("category", q.Category)
	set("colors", q.Colors)
	set("order", q.Order)
	if q.SafeSearch {
		v.Set("safesearch", "true")
	}
	if q.EditorsChoice {
		v.Set("editors_choice", "true")
	}
	if q.MinWidth > 0 {
		v.Set("min_width", strconv.Itoa(q.MinWidth))
	}
	if q.MinHeight > 0 {
		v.Set("min_height", strconv.Itoa(q.MinHeight))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		// API accepts 3..200
		per := min(max(q.PerPage, 3), 200)
		v.Set("per_page", strconv.Itoa(per))
	}
	return v
}

// Client talks to the search API
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	cache    *ResultCache
	logger   *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the API endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache enables result caching
func WithCache(rc *ResultCache) Option {
	return func(c *Client) { c.cache = rc }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a search client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: constants.CatalogTimeout},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a query and returns its hits
func (c *Client) Search(ctx context.Context, q Query) ([]Hit, error) {
	if c.cache != nil {
		if hits, ok := c.cache.Get(q); ok {
			c.logger.Debug("catalog cache hit", zap.String("query", q.Key()), zap.Int("hits", len(hits)))
			return hits, nil
		}
	}

	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse endpoint: %w", err)
	}
	u.RawQuery = q.values(c.apiKey).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("User-Agent", "photowall/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	hits := make([]Hit, 0, len(raw.Hits))
	for _, h := range raw.Hits {
		if strings.TrimSpace(h.WebformatURL) == "" {
			continue
		}
		hits = append(hits, h)
	}

	c.logger.Info("catalog fetched",
		zap.String("q", q.Q),
		zap.Int("hits", len(hits)),
		zap.Int("total", raw.TotalHits))

	if c.cache != nil {
		c.cache.Set(q, hits)
	}
	return hits, nil
}

// URLs extracts the webformat URLs in result order
func URLs(hits []Hit) []string {
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.WebformatURL)
	}
	return out
}
