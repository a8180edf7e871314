package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kabbandre/pit-assignment/internal/backend/database"
)

const defaultTimeout = 10 * time.Second

// HTTPError represents a non-2xx response returned by the image service.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Client calls the list, get and save routes of the image service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("frontend: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("frontend: invalid base URL: %w", err)
	}
	// resolve routes relative to the mount path
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) ListImages(ctx context.Context) ([]*database.Image, error) {
	var images []*database.Image
	if err := c.do(ctx, http.MethodGet, "", nil, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []*database.Image{}
	}
	return images, nil
}

// GetImage returns nil without error when the service has no image with id.
func (c *Client) GetImage(ctx context.Context, id string) (*database.Image, error) {
	var image *database.Image
	if err := c.do(ctx, http.MethodGet, "./"+url.PathEscape(id), nil, &image); err != nil {
		return nil, err
	}
	return image, nil
}

func (c *Client) SaveImage(ctx context.Context, fields map[string]any) (*database.Image, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("frontend: encode image: %w", err)
	}

	var image *database.Image
	if err := c.do(ctx, http.MethodPost, "save", body, &image); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, errors.New("frontend: save returned no image")
	}
	return image, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("frontend: invalid path %q: %w", path, err)
	}
	target := c.baseURL.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("frontend: read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("frontend: decode response: %w", err)
	}
	return nil
}
