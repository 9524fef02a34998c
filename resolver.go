package isfdb

import "context"

// Resolver turns a request into a stream of normalized records.
type Resolver interface {
	// Resolve pushes zero or more records to sink and returns when all
	// candidates are exhausted or ctx is canceled. It never closes
	// sink. No ordering is promised on the stream; use Rank after
	// collection. Returns an EINVALID error when the request carries
	// insufficient metadata to build any query.
	Resolve(ctx context.Context, req *Request, sink chan<- *Record) error
}

// CoverResolver determines downloadable cover image URLs for a request.
type CoverResolver interface {
	// ResolveCovers pushes zero or more cover URLs to sink, bounded by
	// the request's cover bound. When bestOnly is set, at most one URL
	// is pushed. Finding no cover is not an error.
	ResolveCovers(ctx context.Context, req *Request, sink chan<- string, bestOnly bool) error
}

// XrefCache holds the small cross-reference maps that link identifiers
// across record kinds to avoid redundant fetches. Entries live for the
// process lifetime: values are only added or overwritten, never removed
// during a run. Implementations must be safe for concurrent use.
type XrefCache interface {
	// TitleIDForPublication returns the cached title record ID owning
	// the given publication ID.
	TitleIDForPublication(pubID string) (string, bool)
	SetTitleIDForPublication(pubID, titleID string)

	// CoverURLForID returns the cached cover URL for a publication ID.
	CoverURLForID(id string) (string, bool)
	SetCoverURLForID(id, url string)

	// IdentifierForISBN returns the cached publication ID for an ISBN.
	IdentifierForISBN(isbn string) (string, bool)
	SetIdentifierForISBN(isbn, id string)

	// Snapshot returns a copy of all three maps keyed by cache name,
	// suitable for host persistence. Restore merges a snapshot back;
	// restored entries lose to later writes for the same key.
	Snapshot() map[string]map[string]string
	Restore(snapshot map[string]map[string]string)
}

// SnapshotStore persists XrefCache snapshots between sessions.
type SnapshotStore interface {
	// LoadSnapshot returns the last saved snapshot, or an empty
	// snapshot if none was saved yet.
	LoadSnapshot(ctx context.Context) (map[string]map[string]string, error)

	// SaveSnapshot replaces the stored snapshot.
	SaveSnapshot(ctx context.Context, snapshot map[string]map[string]string) error
}

// APIPublication is the subset of publication fields returned by the
// catalog's XML lookup service.
type APIPublication struct {
	ID        string
	Title     string
	Authors   []string
	Year      string
	ISBN      string
	Publisher string
	Type      string
}

// PublicationLookup queries the catalog's XML web API. It is cheaper
// than HTML resolution for exact ISBN lookups but returns fewer fields.
type PublicationLookup interface {
	LookupISBN(ctx context.Context, isbn string) ([]APIPublication, error)
}
