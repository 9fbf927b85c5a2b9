// Package audd implements the recognition collaborator against the
// AudD.io music recognition API.
package audd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
)

const (
	// DefaultBaseURL is the AudD.io recognition endpoint.
	DefaultBaseURL = "https://api.audd.io/"

	// returnFields asks AudD to include streaming-platform metadata.
	returnFields = "apple_music,spotify"

	requestTimeout = 30 * time.Second
)

// Client talks to the AudD.io API. The zero value is not usable; construct
// with New.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an AudD client. An empty apiToken is allowed at construction
// time; Identify then fails with tunespotter.ErrMissingCredential, which is
// a configuration error distinct from a recognition failure.
func New(apiToken string, opts ...ClientOption) *Client {
	c := &Client{
		apiToken:   apiToken,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		// AudD allows bursts but throttles sustained traffic; pace
		// ourselves the way dab/musicbrainz clients do.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API token is present.
func (c *Client) Configured() bool {
	return c.apiToken != ""
}

// auddResponse is the wire shape of an AudD recognition reply. A null
// result with success status means no match.
type auddResponse struct {
	Status string `json:"status"`
	Result *struct {
		Title       string `json:"title"`
		Artist      string `json:"artist"`
		Album       string `json:"album"`
		ReleaseDate string `json:"release_date"`
	} `json:"result"`
	Error *struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"error"`
}

// Identify submits audio bytes for recognition and reports either an
// identification or an explicit no-match.
func (c *Client) Identify(ctx context.Context, audio []byte, filename string) (*tunespotter.Identification, error) {
	if !c.Configured() {
		return nil, tunespotter.ErrMissingCredential
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart request: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("building multipart request: %w", err)
	}
	if err := mw.WriteField("api_token", c.apiToken); err != nil {
		return nil, fmt.Errorf("building multipart request: %w", err)
	}
	if err := mw.WriteField("return", returnFields); err != nil {
		return nil, fmt.Errorf("building multipart request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audd request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("audd request failed with status %d", resp.StatusCode)
	}

	var parsed auddResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding audd response: %w", err)
	}

	if parsed.Status != "success" {
		if parsed.Error != nil {
			return nil, fmt.Errorf("audd error %d: %s", parsed.Error.ErrorCode, parsed.Error.ErrorMessage)
		}
		return nil, fmt.Errorf("audd returned status %q", parsed.Status)
	}

	if parsed.Result == nil {
		return &tunespotter.Identification{Matched: false}, nil
	}

	return &tunespotter.Identification{
		Matched:     true,
		Title:       orUnknown(parsed.Result.Title),
		Artist:      orUnknown(parsed.Result.Artist),
		Album:       orUnknown(parsed.Result.Album),
		ReleaseDate: orUnknown(parsed.Result.ReleaseDate),
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
