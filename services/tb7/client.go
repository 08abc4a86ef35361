// Package tb7 is the provider adapter for the tb7.pl file locker: login
// and session caching, account-scoped search, download-link extraction,
// and catalog page listing. All markup knowledge lives in parse.go so the
// scraping contract can be exercised in isolation.
package tb7

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tb7stream/store"
)

const (
	DefaultBaseURL = "https://tb7.pl"

	loginPath  = "/zaloguj"
	searchPath = "/mojekonto/szukaj"
	browsePath = "/mojekonto/nowosci"

	requestTimeout = 20 * time.Second

	// SessionTTL is how long a login cookie is reused before a fresh
	// login is forced.
	SessionTTL = 6 * time.Hour

	sessionKeyPrefix = "tb7:session:"
)

var (
	// ErrMissingCredentials means the account record is absent or
	// incomplete; no network call is made.
	ErrMissingCredentials = errors.New("tb7: missing login or password")

	// ErrNoSessionCookie means the login endpoint answered without any
	// usable session marker.
	ErrNoSessionCookie = errors.New("tb7: login returned no session cookie")
)

// Client talks to the provider. It holds no per-request state; the session
// cookie is cached in the injected store.
type Client struct {
	baseURL    string
	httpc      *http.Client
	loginHTTPC *http.Client
	store      store.Store
	sessionTTL time.Duration
}

// NewClient constructs a provider client. The login flow needs redirects
// left unfollowed (the session cookie rides on the 3xx answer), so a
// dedicated client is derived for it.
func NewClient(baseURL string, httpc *http.Client, st store.Store) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: requestTimeout}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	loginHTTPC := &http.Client{
		Transport: httpc.Transport,
		Timeout:   httpc.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Client{
		baseURL:    baseURL,
		httpc:      httpc,
		loginHTTPC: loginHTTPC,
		store:      st,
		sessionTTL: SessionTTL,
	}
}

// absoluteURL resolves provider-relative hrefs against the base origin.
func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return c.baseURL + href
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, rawURL, cookie string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	return c.doRead(req)
}

// postForm performs an authenticated form POST and returns the body.
func (c *Client) postForm(ctx context.Context, rawURL, cookie string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doRead(req)
}

func (c *Client) doRead(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tb7 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tb7 returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
