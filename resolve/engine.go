// Package resolve orchestrates metadata resolution: it runs the
// multi-stage search strategy, fans out one worker per candidate with
// staggered starts, merges publication and title data for the same
// work, and streams normalized records to the caller.
package resolve

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/search"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultStagger is the fixed delay between worker starts. Launching
// all detail fetches at once trips the catalog's abuse protection, so
// the stagger is a required politeness measure, not an optimization.
const DefaultStagger = 100 * time.Millisecond

// Ensure Engine implements the domain interfaces at compile time.
var (
	_ isfdb.Resolver      = (*Engine)(nil)
	_ isfdb.CoverResolver = (*Engine)(nil)
)

// Engine resolves requests against the catalog.
type Engine struct {
	fetcher isfdb.Fetcher
	search  isfdb.SearchParser
	details isfdb.DetailParser
	cache   isfdb.XrefCache
	logger  *slog.Logger
	stagger time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStagger sets the delay between worker starts.
// Defaults to DefaultStagger.
func WithStagger(d time.Duration) Option {
	return func(e *Engine) {
		e.stagger = d
	}
}

// NewEngine creates a resolution engine. The cache is injected rather
// than owned so it can outlive individual engines and be snapshotted by
// the host.
func NewEngine(fetcher isfdb.Fetcher, searchParser isfdb.SearchParser, details isfdb.DetailParser, cache isfdb.XrefCache, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		search:  searchParser,
		details: details,
		cache:   cache,
		logger:  slog.New(slog.DiscardHandler),
		stagger: DefaultStagger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve pushes zero or more normalized records to sink and returns
// when all candidates are exhausted or ctx is canceled. No failure of
// one candidate terminates its siblings; the only global stop
// conditions are cancellation and the request's result bound.
func (e *Engine) Resolve(ctx context.Context, req *isfdb.Request, sink chan<- *isfdb.Record) error {
	candidates, err := e.gatherCandidates(ctx, req)
	if err != nil {
		return err
	}
	if ctx.Err() != nil || candidates.Len() == 0 {
		return nil
	}

	results := make(chan *isfdb.Record, candidates.Len())
	limiter := rate.NewLimiter(rate.Every(e.stagger), 1)

	g, gctx := errgroup.WithContext(ctx)
	order := 0
	for {
		stub, ok := candidates.Pop()
		if !ok {
			break
		}
		ord := order
		order++
		g.Go(func() error {
			// Staggered start; a canceled wait means abort.
			if err := limiter.Wait(gctx); err != nil {
				return nil
			}
			rec := e.processCandidate(gctx, req, stub)
			if rec == nil {
				return nil
			}
			rec.SetOrder(ord)
			select {
			case results <- rec:
			case <-gctx.Done():
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Forward to the caller's sink. On abort, in-flight workers finish
	// in the background but their output never reaches the sink.
	for {
		select {
		case rec, ok := <-results:
			if !ok {
				return nil
			}
			select {
			case sink <- rec:
			case <-ctx.Done():
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// gatherCandidates runs the search stages in priority order and
// accumulates deduplicated candidate stubs.
func (e *Engine) gatherCandidates(ctx context.Context, req *isfdb.Request) (*CandidateSet, error) {
	set := NewCandidateSet()
	bound := req.ResultBound()

	// An identifier constructs the detail URL directly and skips
	// searching entirely.
	if req.HasIdentifier() {
		if req.PublicationID != "" {
			set.Add(isfdb.Stub{
				URL:  search.PublicationDetailURL(req.PublicationID),
				Kind: isfdb.KindPublication,
			})
			// Knowing both identifiers up front is a free shortcut for
			// the merge step.
			if req.TitleID != "" {
				e.cache.SetTitleIDForPublication(req.PublicationID, req.TitleID)
			}
		} else {
			set.Add(isfdb.Stub{
				URL:  search.TitleDetailURL(req.TitleID),
				Kind: isfdb.KindTitle,
			})
		}
		return set, nil
	}

	code := req.Code()
	titleTerm := search.TitleTerm(req.Title)
	authorTerm := search.AuthorTerm(req.Authors)

	if code == "" && titleTerm == "" && authorTerm == "" {
		return nil, isfdb.Errorf(isfdb.EINVALID,
			"insufficient metadata: need an identifier, ISBN, or title/author")
	}

	if code != "" && ctx.Err() == nil {
		url, err := search.CodeSearchURL(code)
		if err == nil {
			e.searchStage(ctx, set, url, isfdb.KindPublication, 1, bound, "")
		}
	}

	hasText := titleTerm != "" || authorTerm != ""

	if set.Len() < bound && req.SearchPublications && hasText && ctx.Err() == nil {
		url, err := search.PublicationSearchURL(titleTerm, authorTerm)
		if err == nil {
			e.searchStage(ctx, set, url, isfdb.KindPublication, 2, bound, titleTerm)
		}
	}

	if set.Len() < bound && req.SearchTitles && hasText && ctx.Err() == nil {
		url, err := search.TitleSearchURL(titleTerm, authorTerm)
		if err == nil {
			e.searchStage(ctx, set, url, isfdb.KindTitle, 2, bound, titleTerm)
		}
	}

	return set, nil
}

// searchStage fetches one search-results page and adds its stubs at the
// given relevance tier. A candidate whose normalized title exactly
// equals the normalized query title is promoted to tier 0: an exact
// match always outranks a contains match regardless of which stage
// produced it. Stage failures log and yield nothing; they never abort
// the run.
func (e *Engine) searchStage(ctx context.Context, set *CandidateSet, url string, kind isfdb.RecordKind, tier, bound int, queryTitle string) {
	pageHTML, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("search fetch failed", "url", url, "error", err)
		return
	}
	stubs, err := e.search.ParseSearchResults(pageHTML, kind, bound)
	if err != nil {
		e.logger.Warn("search parse failed", "url", url, "error", err)
		return
	}

	normQuery := search.NormalizeTitle(queryTitle)
	for _, stub := range stubs {
		stub.Relevance = tier
		if normQuery != "" && search.NormalizeTitle(stub.Title) == normQuery {
			stub.Relevance = 0
		}
		set.Add(stub)
		if set.Len() >= bound {
			break
		}
	}
}

// processCandidate fetches and parses one candidate URL, returning a
// normalized record or nil. All failures are local to the candidate.
func (e *Engine) processCandidate(ctx context.Context, req *isfdb.Request, stub isfdb.Stub) *isfdb.Record {
	logger := e.logger.With("url", stub.URL)

	pageHTML, err := e.fetcher.Fetch(ctx, stub.URL)
	if err != nil {
		logger.Warn("candidate fetch failed", "error", err)
		return nil
	}

	var rec *isfdb.Record
	switch isfdb.KindOf(stub.URL) {
	case isfdb.KindPublication:
		rec = e.processPublication(ctx, req, stub.URL, pageHTML, logger)
	case isfdb.KindTitle:
		tit, err := e.details.ParseTitle(ctx, pageHTML, stub.URL)
		if err != nil {
			logger.Warn("title parse failed", "error", err)
			return nil
		}
		if !tit.Usable() {
			logger.Warn("insufficient metadata in title record")
			return nil
		}
		rec = newRecord(tit, nil, stub.URL)
	default:
		logger.Error("unrecognized candidate URL")
		return nil
	}

	if rec == nil {
		return nil
	}
	rec.Relevance = stub.Relevance
	return rec
}

// processPublication parses a publication page and attempts the
// publication/title merge.
func (e *Engine) processPublication(ctx context.Context, req *isfdb.Request, url, pageHTML string, logger *slog.Logger) *isfdb.Record {
	pub, err := e.details.ParsePublication(ctx, pageHTML, url)
	if err != nil {
		logger.Warn("publication parse failed", "error", err)
		return nil
	}
	if !pub.Usable() {
		logger.Warn("insufficient metadata in publication record")
		return nil
	}

	tit := e.matchingTitle(ctx, pub, req.ResultBound(), logger)

	if pub.CoverURL != "" {
		e.cache.SetCoverURLForID(pub.ID, pub.CoverURL)
	}
	if pub.ISBN != "" {
		e.cache.SetIdentifierForISBN(pub.ISBN, pub.ID)
	}
	if tit != nil {
		e.cache.SetTitleIDForPublication(pub.ID, tit.ID)
	}

	return newRecord(tit, pub, url)
}

// matchingTitle locates the title record owning a publication and
// cross-checks that the title actually lists the publication before it
// may be merged. The cross-check guards against the exact-title search
// returning a same-named but unrelated work. Returns nil when no title
// can be confirmed; the publication is then emitted alone.
func (e *Engine) matchingTitle(ctx context.Context, pub *isfdb.Publication, bound int, logger *slog.Logger) *isfdb.Title {
	var titleIDs []string

	if id, ok := e.cache.TitleIDForPublication(pub.ID); ok {
		titleIDs = []string{id}
	} else if pub.TitleID != "" {
		titleIDs = []string{pub.TitleID}
	} else {
		logger.Info("no title ID on publication page, searching for owning title")
		url, err := search.ExactTitleSearchURL(pub.Title, pub.SearchAuthor, pub.Type)
		if err != nil {
			return nil
		}
		pageHTML, err := e.fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Warn("title search fetch failed", "error", err)
			return nil
		}
		stubs, err := e.search.ParseSearchResults(pageHTML, isfdb.KindTitle, bound)
		if err != nil {
			logger.Warn("title search parse failed", "error", err)
			return nil
		}
		for _, s := range stubs {
			if id := isfdb.IDFromURL(s.URL); id != "" {
				titleIDs = append(titleIDs, id)
			}
		}
	}

	for _, id := range titleIDs {
		titleURL := search.TitleDetailURL(id)
		pageHTML, err := e.fetcher.Fetch(ctx, titleURL)
		if err != nil {
			logger.Warn("title fetch failed", "titleID", id, "error", err)
			continue
		}
		tit, err := e.details.ParseTitle(ctx, pageHTML, titleURL)
		if err != nil {
			logger.Warn("title parse failed", "titleID", id, "error", err)
			continue
		}
		if slices.Contains(tit.Publications, pub.ID) {
			return tit
		}
		logger.Info("title record does not list this publication", "titleID", id)
	}

	logger.Info("no title record confirmed for publication")
	return nil
}
