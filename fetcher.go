package isfdb

import "context"

// Fetcher retrieves catalog pages as decoded HTML.
// The catalog serves ISO-8859-1; implementations must decode to UTF-8
// and strip control characters that break parsing before returning.
type Fetcher interface {
	// Fetch performs a GET and returns the decoded page body.
	// The context controls timeout and cancellation. A 404-class
	// response returns an ENOTFOUND error so callers can fall back to
	// searching instead of aborting; other failures are EUNAVAILABLE.
	Fetch(ctx context.Context, url string) (html string, err error)
}
