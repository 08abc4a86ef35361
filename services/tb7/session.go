package tb7

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"tb7stream/models"
)

// Authenticate returns a session cookie for the given account, reusing the
// cached one under the credential scope while it lives. A cache miss logs
// in against the provider and caches the result for SessionTTL.
//
// Safe to call repeatedly; callers never invalidate the cache themselves.
// Concurrent cold-cache calls may each log in, the last write wins.
func (c *Client) Authenticate(ctx context.Context, creds models.Credentials, scope string) (string, error) {
	if !creds.Configured() {
		return "", ErrMissingCredentials
	}

	cacheKey := sessionKeyPrefix + scope
	if cached, ok, err := c.store.Get(ctx, cacheKey); err == nil && ok && cached != "" {
		return cached, nil
	} else if err != nil {
		// A broken cache only costs an extra login.
		log.Printf("[tb7] session cache read failed: %v", err)
	}

	cookie, err := c.login(ctx, creds)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(ctx, cacheKey, cookie, c.sessionTTL); err != nil {
		log.Printf("[tb7] session cache write failed: %v", err)
	}
	return cookie, nil
}

// login submits the credentials and collects the session cookie. The
// provider answers a successful login with a redirect and spreads session
// state over several Set-Cookie directives that must all be replayed
// together, so they are concatenated into one Cookie header value.
func (c *Client) login(ctx context.Context, creds models.Credentials) (string, error) {
	form := url.Values{}
	form.Set("login", creds.Login)
	form.Set("haslo", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.loginHTTPC.Do(req)
	if err != nil {
		return "", fmt.Errorf("tb7 login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("tb7 login returned status %d", resp.StatusCode)
	}

	directives := resp.Header.Values("Set-Cookie")
	if len(directives) == 0 {
		return "", ErrNoSessionCookie
	}

	pairs := make([]string, 0, len(directives))
	for _, d := range directives {
		pair := strings.TrimSpace(strings.SplitN(d, ";", 2)[0])
		if pair != "" {
			pairs = append(pairs, pair)
		}
	}
	if len(pairs) == 0 {
		return "", ErrNoSessionCookie
	}

	log.Printf("[tb7] logged in as %s (%d cookie directives)", creds.Login, len(pairs))
	return strings.Join(pairs, "; "), nil
}
