// Package api is the typed gateway to the Veepiac backend. One method per
// backend capability; every failure maps onto the structured error taxonomy
// so callers can react without string matching. The gateway never retries:
// a failed call surfaces immediately.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veepiac/quip/internal/errors"
	"github.com/veepiac/quip/internal/logger"
)

const (
	apiKeyHeader    = "X-API-Key"
	requestIDHeader = "X-Request-ID"
	httpTimeout     = 30 * time.Second
)

// Client is the typed HTTP client for the backend.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu     sync.RWMutex
	apiKey string
}

// New creates a client for the given base URL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		baseURL:    baseURL,
	}
}

// NewWithClient creates a client with a custom HTTP client (for testing).
func NewWithClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// SetAPIKey sets the credential attached to subsequent requests. The update
// is synchronous: once this returns, no future request goes out with the old
// key. An empty key clears the header entirely.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// ClearAPIKey removes the credential; subsequent requests are anonymous.
func (c *Client) ClearAPIKey() {
	c.SetAPIKey("")
}

// APIKey returns the currently configured credential.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Search queries the transcript corpus. The query must be non-empty; that
// precondition belongs to the caller, which must not issue a network call
// for a blank query.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	const op = errors.Op("api.Search")

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var result SearchResult
	if err := c.get(ctx, op, "/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSubtitle fetches a line with its symmetric frame and dialogue windows
// in a single round trip.
func (c *Client) GetSubtitle(ctx context.Context, id, framesBefore, framesAfter, subtitlesBefore, subtitlesAfter int) (*SubtitleContext, error) {
	const op = errors.Op("api.GetSubtitle")

	params := url.Values{}
	params.Set("frames_before", strconv.Itoa(framesBefore))
	params.Set("frames_after", strconv.Itoa(framesAfter))
	params.Set("subtitles_before", strconv.Itoa(subtitlesBefore))
	params.Set("subtitles_after", strconv.Itoa(subtitlesAfter))

	var result SubtitleContext
	if err := c.get(ctx, op, fmt.Sprintf("/subtitle/%d?%s", id, params.Encode()), &result); err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return nil, errors.SubtitleNotFound(id)
		}
		return nil, err
	}
	return &result, nil
}

// GetEpisode fetches an episode and one page of its dialogue lines.
func (c *Client) GetEpisode(ctx context.Context, episodeID string, page, limit int) (*EpisodeResult, error) {
	const op = errors.Op("api.GetEpisode")

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var result EpisodeResult
	if err := c.get(ctx, op, fmt.Sprintf("/episode/%s?%s", url.PathEscape(episodeID), params.Encode()), &result); err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return nil, errors.EpisodeNotFound(episodeID)
		}
		return nil, err
	}
	return &result, nil
}

// CreateMeme requests a meme still for a line and frame.
func (c *Client) CreateMeme(ctx context.Context, p MemeParams) (*CreationResult, error) {
	const op = errors.Op("api.CreateMeme")

	var resp memeResponse
	if err := c.post(ctx, op, "/create/meme", p, &resp); err != nil {
		return nil, err
	}
	return &CreationResult{AssetID: resp.MemeID, URL: resp.URL, ExpiresAt: resp.ExpiresAt}, nil
}

// CreateGif requests an animated clip for a frame range. The caller must
// have verified startFrame <= endFrame; the gateway does not reorder.
func (c *Client) CreateGif(ctx context.Context, p GifParams) (*CreationResult, error) {
	const op = errors.Op("api.CreateGif")

	var resp gifResponse
	if err := c.post(ctx, op, "/create/gif", p, &resp); err != nil {
		return nil, err
	}
	return &CreationResult{AssetID: resp.GifID, URL: resp.URL, ExpiresAt: resp.ExpiresAt}, nil
}

// CreateClip requests a video clip for a time range. Fails with
// errors.KindForbidden when the active credential lacks the premium
// entitlement.
func (c *Client) CreateClip(ctx context.Context, p ClipParams) (*CreationResult, error) {
	const op = errors.Op("api.CreateClip")

	var resp clipResponse
	if err := c.post(ctx, op, "/create/clip", p, &resp); err != nil {
		return nil, err
	}
	return &CreationResult{AssetID: resp.ClipID, URL: resp.URL, ExpiresAt: resp.ExpiresAt}, nil
}

func (c *Client) get(ctx context.Context, op errors.Op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.E(op, errors.KindUnknown, err)
	}
	return c.do(op, req, out)
}

func (c *Client) post(ctx context.Context, op errors.Op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.E(op, errors.KindUnknown, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.E(op, errors.KindUnknown, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

// do executes a request, maps failures onto error kinds and decodes a
// successful body into out.
func (c *Client) do(op errors.Op, req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.New().String())
	if key := c.APIKey(); key != "" {
		req.Header.Set(apiKeyHeader, key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log("API: %s %s failed: %v", req.Method, req.URL.Path, err)
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.E(op, kindForStatus(resp.StatusCode), resp.StatusCode, fmt.Errorf("%s", remoteMessage(resp)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindRemote, "failed to parse response", err)
	}
	return nil
}

// remoteMessage extracts the backend's {"error": "..."} message, falling
// back to the HTTP status text.
func remoteMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return e.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

func kindForStatus(status int) errors.Kind {
	switch status {
	case http.StatusForbidden:
		return errors.KindForbidden
	case http.StatusNotFound:
		return errors.KindNotFound
	default:
		return errors.KindRemote
	}
}
