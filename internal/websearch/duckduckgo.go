// Package websearch answers general queries via the DuckDuckGo Instant
// Answer API.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// ErrDisabled is returned when web search is switched off in config.
var ErrDisabled = errors.New("websearch: disabled")

// NoResultText is returned when the instant-answer payload carries nothing
// usable.
const NoResultText = "No relevant information found."

// Result is one instant-answer lookup.
type Result struct {
	Query  string `json:"query"`
	Text   string `json:"result"`
	Source string `json:"source"`
}

// Client queries the DuckDuckGo Instant Answer API.
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a web search client. Lookups fail with ErrDisabled when
// enabled is false.
func NewClient(enabled bool, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL:    "https://api.duckduckgo.com/",
		enabled:    enabled,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// instantAnswer is the subset of the API payload we read.
type instantAnswer struct {
	Abstract     string `json:"Abstract"`
	AbstractText string `json:"AbstractText"`
	Answer       string `json:"Answer"`
	Definition   string `json:"Definition"`
}

// Search looks up query and returns the best available snippet: the direct
// answer, then the abstract text, the definition, and finally the raw
// abstract.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("websearch: status %d: %s", resp.StatusCode, string(body))
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("websearch: decode response: %w", err)
	}

	text := NoResultText
	switch {
	case answer.Answer != "":
		text = answer.Answer
	case answer.AbstractText != "":
		text = answer.AbstractText
	case answer.Definition != "":
		text = answer.Definition
	case answer.Abstract != "":
		text = answer.Abstract
	}

	c.logger.Debug("web search completed", "query", query, "found", text != NoResultText)
	return &Result{Query: query, Text: text, Source: "DuckDuckGo"}, nil
}
