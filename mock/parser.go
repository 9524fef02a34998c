package mock

import (
	"context"

	"github.com/speclib/isfdb"
)

var _ isfdb.SearchParser = (*SearchParser)(nil)

// SearchParser is a mock implementation of isfdb.SearchParser.
type SearchParser struct {
	ParseSearchResultsFn func(html string, kind isfdb.RecordKind, max int) ([]isfdb.Stub, error)
}

func (p *SearchParser) ParseSearchResults(html string, kind isfdb.RecordKind, max int) ([]isfdb.Stub, error) {
	return p.ParseSearchResultsFn(html, kind, max)
}

var _ isfdb.DetailParser = (*DetailParser)(nil)

// DetailParser is a mock implementation of isfdb.DetailParser.
type DetailParser struct {
	ParsePublicationFn func(ctx context.Context, html, url string) (*isfdb.Publication, error)
	ParseTitleFn       func(ctx context.Context, html, url string) (*isfdb.Title, error)
	ParseTitleCoversFn func(html string) ([]string, error)
}

func (p *DetailParser) ParsePublication(ctx context.Context, html, url string) (*isfdb.Publication, error) {
	return p.ParsePublicationFn(ctx, html, url)
}

func (p *DetailParser) ParseTitle(ctx context.Context, html, url string) (*isfdb.Title, error) {
	return p.ParseTitleFn(ctx, html, url)
}

func (p *DetailParser) ParseTitleCovers(html string) ([]string, error) {
	return p.ParseTitleCoversFn(html)
}
