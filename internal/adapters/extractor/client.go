// Package extractor is the HTTP client for the feature-extraction
// collaborator. It owns the retry policy; callers see a single Extract
// call per track.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/segue/internal/core/domain"
	"github.com/ewilliams-labs/segue/internal/core/ports"
)

// Client is an HTTP client for the analysis service.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	sensitivity float64

	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.FeatureExtractor = (*Client)(nil)

// NewClient constructs a Client. sensitivity in [0,1] tunes the service's
// onset filtering; 0 uses the service default.
func NewClient(httpClient *http.Client, baseURL string, sensitivity float64) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		sensitivity: sensitivity,
	}
}

// NewClientCredentials constructs a Client that authenticates with the
// analysis service via the OAuth2 client-credentials flow.
func NewClientCredentials(ctx context.Context, baseURL string, sensitivity float64, clientID, clientSecret, tokenURL string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return NewClient(cc.Client(ctx), baseURL, sensitivity)
}

// Extract fetches the analysis for one track and maps it to the domain.
// Failures are wrapped in *ports.ExtractionError so callers can report
// per-track outcomes without inspecting HTTP details.
func (c *Client) Extract(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	u := fmt.Sprintf("%s/v1/analysis/%s", c.baseURL, url.PathEscape(ref))
	if c.sensitivity > 0 {
		u = fmt.Sprintf("%s?sensitivity=%.2f", u, c.sensitivity)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.TrackFeatureSet{}, &ports.ExtractionError{Ref: ref, Err: err}
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.TrackFeatureSet{}, &ports.ExtractionError{Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.TrackFeatureSet{}, &ports.ExtractionError{Ref: ref, Err: domain.ErrNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		return domain.TrackFeatureSet{}, &ports.ExtractionError{Ref: ref, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var wa wireAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&wa); err != nil {
		return domain.TrackFeatureSet{}, &ports.ExtractionError{Ref: ref, Err: err}
	}

	track := wa.toDomain()
	if track.Ref == "" {
		track.Ref = ref
	}
	return track, nil
}
