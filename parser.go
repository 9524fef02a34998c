package isfdb

import "context"

// SearchParser extracts candidate stubs from a search-results page.
type SearchParser interface {
	// ParseSearchResults walks the results table for the given record
	// kind and returns at most max stubs. Stubs carry no relevance
	// judgment; the caller assigns the tier of the search stage that
	// produced them.
	ParseSearchResults(html string, kind RecordKind, max int) ([]Stub, error)
}

// SynopsisRenderer converts a record's HTML synopsis to plain-text
// output formats.
type SynopsisRenderer interface {
	Render(html string) (string, error)
}

// DetailParser extracts full field sets from record detail pages.
// Parsing one field must never fail the whole record; implementations
// log section-level failures and continue.
type DetailParser interface {
	// ParsePublication parses a publication (edition) detail page.
	// The context is used when the series field links to a series page
	// that has to be fetched to resolve a parent series.
	ParsePublication(ctx context.Context, html, url string) (*Publication, error)

	// ParseTitle parses a title (work) detail page, including the list
	// of publication IDs linked from it.
	ParseTitle(ctx context.Context, html, url string) (*Title, error)

	// ParseTitleCovers returns every cover image URL on a title's
	// cover-listing page.
	ParseTitleCovers(html string) ([]string, error)
}
