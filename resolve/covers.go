package resolve

import (
	"context"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/search"
)

// ResolveCovers pushes cover image URLs to sink. The cheap paths are
// tried first: a cached cover URL for a known publication, then the
// title covers page when a title ID is known. Only when neither hint
// exists does it fall back to a full resolution pass to discover one.
func (e *Engine) ResolveCovers(ctx context.Context, req *isfdb.Request, sink chan<- string, bestOnly bool) error {
	cached, titleID := e.coverHints(req)

	if cached == "" && titleID == "" {
		var err error
		cached, titleID, err = e.discoverCoverHints(ctx, req)
		if err != nil {
			return err
		}
	}
	if ctx.Err() != nil {
		return nil
	}

	switch {
	case cached != "":
		e.logger.Info("using cached cover URL", "url", cached)
		deliver(ctx, sink, cached)
	case titleID != "":
		e.pushTitleCovers(ctx, req, titleID, sink, bestOnly)
	default:
		e.logger.Warn("no cover source found")
	}
	return nil
}

// coverHints inspects the request and caches for a way to reach covers
// without any fetching.
func (e *Engine) coverHints(req *isfdb.Request) (cached, titleID string) {
	titleID = req.TitleID

	if req.PublicationID != "" {
		if url, ok := e.cache.CoverURLForID(req.PublicationID); ok {
			return url, titleID
		}
	}
	if req.ISBN != "" {
		if id, ok := e.cache.IdentifierForISBN(req.ISBN); ok {
			if url, ok := e.cache.CoverURLForID(id); ok {
				return url, titleID
			}
		}
	}
	return "", titleID
}

// discoverCoverHints runs a full resolution pass and mines the results
// for a cover URL or title ID. A single result is trusted enough to
// use its publication's cached cover; with several results only a
// title ID is taken, since per-edition covers would be guesses.
func (e *Engine) discoverCoverHints(ctx context.Context, req *isfdb.Request) (cached, titleID string, err error) {
	results := make(chan *isfdb.Record, req.ResultBound())
	done := make(chan struct{})
	var records []*isfdb.Record
	go func() {
		defer close(done)
		for rec := range results {
			records = append(records, rec)
		}
	}()

	err = e.Resolve(ctx, req, results)
	close(results)
	<-done
	if err != nil {
		return "", "", err
	}

	if len(records) == 1 {
		rec := records[0]
		if id := rec.Identifiers[isfdb.IDISFDB]; id != "" {
			if url, ok := e.cache.CoverURLForID(id); ok {
				return url, rec.Identifiers[isfdb.IDISFDBTitle], nil
			}
		}
		return "", rec.Identifiers[isfdb.IDISFDBTitle], nil
	}
	for _, rec := range records {
		if id := rec.Identifiers[isfdb.IDISFDBTitle]; id != "" {
			return "", id, nil
		}
	}
	return "", "", nil
}

// pushTitleCovers fetches the title covers gallery and delivers its
// image URLs, bounded by the request's cover limit or cut to one when
// only the best cover is wanted.
func (e *Engine) pushTitleCovers(ctx context.Context, req *isfdb.Request, titleID string, sink chan<- string, bestOnly bool) {
	url := search.TitleCoversPageURL(titleID)
	pageHTML, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("covers page fetch failed", "url", url, "error", err)
		return
	}
	covers, err := e.details.ParseTitleCovers(pageHTML)
	if err != nil {
		e.logger.Warn("covers page parse failed", "url", url, "error", err)
		return
	}

	bound := req.CoverBound()
	if bestOnly {
		bound = 1
	}
	for i, cover := range covers {
		if i >= bound || ctx.Err() != nil {
			return
		}
		deliver(ctx, sink, cover)
	}
}

func deliver(ctx context.Context, sink chan<- string, url string) {
	select {
	case sink <- url:
	case <-ctx.Done():
	}
}
