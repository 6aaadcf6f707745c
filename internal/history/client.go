// Package history sends watch progress to the backend.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "flipplayer/1.0 (https://github.com/llehouerou/flipplayer)"

// TokenSource returns the bearer token of the signed-in user, "" when
// signed out.
type TokenSource interface {
	Token() string
}

// Client posts progress to <apiURL>user/history/<videoID>.
type Client struct {
	apiURL     string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at apiURL.
func NewClient(apiURL string, tokens TokenSource) *Client {
	if apiURL != "" && !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	return &Client{
		apiURL: apiURL,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type progressRequest struct {
	ProgressSeconds int `json:"progressSeconds"`
	LengthSeconds   int `json:"lengthSeconds"`
}

// SaveProgress posts the position of videoID. Any non-2xx answer is an
// error; callers are expected to ignore it.
func (c *Client) SaveProgress(ctx context.Context, videoID string, progress, length float64) error {
	body, err := json.Marshal(progressRequest{
		ProgressSeconds: int(math.Round(progress)),
		LengthSeconds:   int(math.Round(length)),
	})
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	reqURL := c.apiURL + "user/history/" + url.PathEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}
