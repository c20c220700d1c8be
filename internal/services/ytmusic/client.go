package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tunepull/internal/matching"
	"tunepull/internal/services"
)

const (
	defaultBaseURL     = "https://music.youtube.com/youtubei/v1"
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	clientName         = "WEB_REMIX"
	clientVersion      = "1.20240101.01.00"

	songsFilterParams  = "EgWKAQIIAWoKEAkQBRAKEAMQBA%3D%3D"
	videosFilterParams = "EgWKAQIQAWoKEAkQChAFEAMQBA%3D%3D"
)

// Config captures the runtime settings for the search client.
type Config struct {
	BaseURL        string
	Language       string
	TimeoutSeconds int
}

// Client talks to the YouTube Music InnerTube search endpoint without
// authentication. It satisfies matching.SearchProvider.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a search client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Language:       strings.TrimSpace(cfg.Language),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Language == "" {
		client.cfg.Language = "en"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Search runs a music search for query, returning up to limit candidates.
// Songs results are preferred; when the songs shelf is empty the videos
// shelf is queried instead so obscure uploads still surface.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "ytmusic", "search", "query required", nil)
	}
	if limit <= 0 {
		limit = 12
	}

	candidates, err := c.searchFiltered(ctx, query, songsFilterParams, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	return c.searchFiltered(ctx, query, videosFilterParams, limit)
}

func (c *Client) searchFiltered(ctx context.Context, query, params string, limit int) ([]matching.Candidate, error) {
	payload := searchRequest{
		Context: innerTubeContext{
			Client: innerTubeClient{
				ClientName:    clientName,
				ClientVersion: clientVersion,
				HL:            c.cfg.Language,
			},
		},
		Query:  query,
		Params: params,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ytmusic", "search", "encode request", err)
	}

	endpoint := c.cfg.BaseURL + "/search?prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ytmusic", "search", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Origin", "https://music.youtube.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "ytmusic", "search", "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "ytmusic", "search", "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrExternalTool, "ytmusic", "search",
			fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytmusic", "search", "decode response", err)
	}
	return extractCandidates(parsed, limit), nil
}
