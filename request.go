package isfdb

// Request describes one metadata resolution attempt. All identifying
// fields are optional, but at least one of PublicationID, TitleID, ISBN,
// CatalogID, or a usable Title must be present for a search to be
// possible. A Request is immutable for the duration of one resolution.
type Request struct {
	// PublicationID is the catalog's publication record identifier
	// (pl.cgi). If present, resolution skips searching entirely.
	PublicationID string

	// TitleID is the catalog's title record identifier (title.cgi).
	TitleID string

	// ISBN of the wanted edition, if known.
	ISBN string

	// CatalogID is the publisher catalog code the catalog stores in the
	// same search field as the ISBN (e.g. "T-302" for old paperbacks).
	CatalogID string

	// Title is the free-text book title.
	Title string

	// Authors is the ordered author list; the first entry is the
	// primary author and the only one used for searching.
	Authors []string

	// MaxResults bounds the number of candidate records fetched for
	// ISBN and text searches. Identifier lookups always return one.
	MaxResults int

	// MaxCovers bounds the number of cover URLs returned by cover
	// resolution.
	MaxCovers int

	// SearchPublications enables the publication text search stage.
	SearchPublications bool

	// SearchTitles enables the title text search stage.
	SearchTitles bool

	// CombineSeries combines a series with its parent series
	// ("parent | child") when the catalog reports a sub-series.
	CombineSeries bool
}

// DefaultMaxResults is used when Request.MaxResults is not positive.
const DefaultMaxResults = 10

// DefaultMaxCovers is used when Request.MaxCovers is not positive.
const DefaultMaxCovers = 10

// HasIdentifier reports whether the request carries a record identifier
// that allows constructing a detail URL directly.
func (r *Request) HasIdentifier() bool {
	return r.PublicationID != "" || r.TitleID != ""
}

// Code returns the exact-match search term for the publication search:
// ISBN if present, otherwise the catalog code. The catalog stores both
// in the same field.
func (r *Request) Code() string {
	if r.ISBN != "" {
		return r.ISBN
	}
	return r.CatalogID
}

// PrimaryAuthor returns the first listed author, or "".
func (r *Request) PrimaryAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}

// ResultBound returns MaxResults with the default applied.
func (r *Request) ResultBound() int {
	if r.MaxResults > 0 {
		return r.MaxResults
	}
	return DefaultMaxResults
}

// CoverBound returns MaxCovers with the default applied.
func (r *Request) CoverBound() int {
	if r.MaxCovers > 0 {
		return r.MaxCovers
	}
	return DefaultMaxCovers
}
