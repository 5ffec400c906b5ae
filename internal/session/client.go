package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"
)

const (
	defaultRequestTimeout = 5 * time.Second
	snapshotTTL           = 5 * time.Minute
	versionTTL            = 5 * time.Minute
	maxResponseBytes      = 4 << 20

	cacheKeyTargets = "targets"
	cacheKeyVersion = "version"
)

// Client wraps the JSON HTTP surface of a remote-debugging endpoint.
// The last successful tab snapshot and the version handshake are cached
// so pollers can degrade to stale data when the browser is briefly
// unreachable.
type Client struct {
	endpoint string
	httpc    *http.Client
	cache    *gocache.Cache
}

// NewClient validates endpoint (a bare host:port gets an http scheme)
// and returns a client whose requests time out after timeout.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
		cache:    gocache.New(snapshotTTL, 2*snapshotTTL),
	}, nil
}

// Endpoint returns the normalized endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Targets enumerates the page tabs via /json/list. Non-page targets
// (service workers, extensions, devtools) are filtered out. A
// successful result refreshes the stale-snapshot cache.
func (c *Client) Targets(ctx context.Context) ([]Tab, error) {
	body, err := c.do(ctx, http.MethodGet, "/json/list")
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("listing tabs: unexpected response %s", snippet(body))
	}
	entries := parsed.Array()
	tabs := make([]Tab, 0, len(entries))
	for _, entry := range entries {
		if entry.Get("type").String() != "page" {
			continue
		}
		tabs = append(tabs, Tab{
			ID:       entry.Get("id").String(),
			Title:    entry.Get("title").String(),
			URL:      entry.Get("url").String(),
			Type:     "page",
			Attached: !entry.Get("webSocketDebuggerUrl").Exists(),
		})
	}
	c.cache.Set(cacheKeyTargets, tabs, gocache.DefaultExpiration)
	return tabs, nil
}

// LastTargets returns the most recent successful enumeration, if one is
// still cached.
func (c *Client) LastTargets() ([]Tab, bool) {
	v, ok := c.cache.Get(cacheKeyTargets)
	if !ok {
		return nil, false
	}
	tabs, ok := v.([]Tab)
	return tabs, ok
}

// Activate brings the tab to the foreground.
func (c *Client) Activate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("activate: empty tab id")
	}
	if _, err := c.do(ctx, http.MethodGet, "/json/activate/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("activating tab %s: %w", id, err)
	}
	return nil
}

// Close closes the tab. Closing an already-gone tab reports an error
// from the endpoint; callers decide whether that matters.
func (c *Client) Close(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("close: empty tab id")
	}
	if _, err := c.do(ctx, http.MethodGet, "/json/close/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("closing tab %s: %w", id, err)
	}
	return nil
}

// Open creates a new tab. An empty target opens the browser's default
// page. The endpoint requires PUT for tab creation.
func (c *Client) Open(ctx context.Context, target string) (Tab, error) {
	path := "/json/new"
	if strings.TrimSpace(target) != "" {
		path += "?" + url.Values{"url": {target}}.Encode()
	}
	body, err := c.do(ctx, http.MethodPut, path)
	if err != nil {
		return Tab{}, fmt.Errorf("opening tab: %w", err)
	}
	parsed := gjson.ParseBytes(body)
	return Tab{
		ID:    parsed.Get("id").String(),
		Title: parsed.Get("title").String(),
		URL:   parsed.Get("url").String(),
		Type:  parsed.Get("type").String(),
	}, nil
}

// Version fetches the endpoint handshake, serving a cached copy when
// fresh.
func (c *Client) Version(ctx context.Context) (Version, error) {
	if v, ok := c.cache.Get(cacheKeyVersion); ok {
		if ver, ok := v.(Version); ok {
			return ver, nil
		}
	}
	body, err := c.do(ctx, http.MethodGet, "/json/version")
	if err != nil {
		return Version{}, fmt.Errorf("fetching version: %w", err)
	}
	parsed := gjson.ParseBytes(body)
	ver := Version{
		Browser:              parsed.Get("Browser").String(),
		ProtocolVersion:      parsed.Get("Protocol-Version").String(),
		WebSocketDebuggerURL: parsed.Get("webSocketDebuggerUrl").String(),
	}
	c.cache.Set(cacheKeyVersion, ver, versionTTL)
	return ver, nil
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet(body))
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "<empty body>"
	}
	return s
}
