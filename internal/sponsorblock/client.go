package sponsorblock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	// DefaultBaseURL is the public SponsorBlock instance.
	DefaultBaseURL = "https://sponsor.ajay.app"
	userAgent      = "flipplayer/1.0 (https://github.com/llehouerou/flipplayer)"
)

// RawSegment is one entry of the skipSegments response.
type RawSegment struct {
	Category   string     `json:"category"`
	ActionType string     `json:"actionType"`
	Segment    [2]float64 `json:"segment"`
	UUID       string     `json:"UUID"`
}

// Client is a SponsorBlock API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the instance at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SkipSegments fetches the segments of videoID restricted to categories. A
// video with no submissions yields no segments and no error.
func (c *Client) SkipSegments(ctx context.Context, videoID string, categories []Category) ([]RawSegment, error) {
	params := url.Values{}
	params.Set("videoID", videoID)
	if len(categories) > 0 {
		names, err := json.Marshal(lo.Map(categories, func(c Category, _ int) string { return string(c) }))
		if err != nil {
			return nil, fmt.Errorf("encode categories: %w", err)
		}
		params.Set("categories", string(names))
	}

	reqURL := fmt.Sprintf("%s/api/skipSegments?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var segments []RawSegment
	if err := json.NewDecoder(resp.Body).Decode(&segments); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return segments, nil
}
