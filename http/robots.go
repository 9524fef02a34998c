package http

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// robots caches one parsed robots.txt group per host.
type robots struct {
	mu     sync.Mutex
	groups map[string]*robotstxt.Group
}

func newRobots() *robots {
	return &robots{groups: make(map[string]*robotstxt.Group)}
}

// allowed reports whether the user agent may fetch the URL. A missing
// or unfetchable robots.txt allows everything.
func (r *robots) allowed(ctx context.Context, client *http.Client, rawURL, userAgent string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	group, ok := r.groups[u.Host]
	r.mu.Unlock()

	if !ok {
		group = r.fetchGroup(ctx, client, u, userAgent)
		r.mu.Lock()
		r.groups[u.Host] = group
		r.mu.Unlock()
	}

	if group == nil {
		return true, nil
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

// fetchGroup retrieves and parses the host's robots.txt. Returns nil,
// meaning "allow all", when the file is absent or cannot be parsed.
func (r *robots) fetchGroup(ctx context.Context, client *http.Client, u *url.URL, userAgent string) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data.FindGroup(userAgent)
}
