package isfdb

import (
	"sort"
	"strconv"
	"strings"
)

// Identifier namespaces used in Record.Identifiers.
const (
	IDISFDB        = "isfdb"         // publication record ID
	IDISFDBTitle   = "isfdb-title"   // title record ID
	IDISFDBCatalog = "isfdb-catalog" // publisher catalog code
	IDISBN         = "isbn"
	IDDNB          = "dnb"           // Deutsche Nationalbibliothek
	IDOCLC         = "oclc-worldcat" // Online Computer Library Center
)

// Date is a publication date as the catalog reports it. The catalog
// encodes an unknown month or day as a literal zero (e.g. "1965-00-00");
// ParseDate normalizes those components to 1.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a catalog "YYYY-MM-DD" date. Zero month or day
// components default to 1. Returns nil for malformed input; a bad date
// never fails a record.
func ParseDate(s string) *Date {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return nil
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil
		}
		nums[i] = n
	}
	if nums[0] == 0 {
		return nil
	}
	d := &Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month == 0 {
		d.Month = 1
	}
	if d.Day == 0 {
		d.Day = 1
	}
	return d
}

// String renders the date as YYYY-MM-DD.
func (d *Date) String() string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(d.Year) + "-" +
		pad2(d.Month) + "-" + pad2(d.Day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Stub is a minimal candidate reference extracted from a search-results
// page, prior to the full detail fetch. Title, Authors and Year are
// optional pre-parsed hints for client-side filtering.
type Stub struct {
	URL       string
	Kind      RecordKind
	Relevance int // 0 exact identifier, 1 ISBN/code, 2 text search
	Title     string
	Authors   []string
	Year      string
}

// Publication holds the fields parsed from a publication (edition)
// detail page. Optional fields are zero-valued when the page does not
// carry them.
type Publication struct {
	ID            string // catalog publication identifier, required
	Title         string
	Authors       []string
	SearchAuthor  string // first credited author, used for title lookup
	Type          string // publication type, e.g. NOVEL
	Format        string // binding, e.g. pb
	ISBN          string
	CatalogID     string
	Publisher     string
	PubDate       *Date
	Series        string
	SeriesIndex   *int
	SeriesNote    string
	CoverCredit   string
	CoverURL      string
	Notes         string // sanitized HTML
	Contents      string // sanitized HTML
	TitleID       string // owning title record, if linked on the page
	ExternalIDs   map[string]string
}

// Usable reports whether the publication carries the minimum fields for
// a normalized record: title, at least one author, and an identifier.
func (p *Publication) Usable() bool {
	return p != nil && p.ID != "" && p.Title != "" && len(p.Authors) > 0
}

// Title holds the fields parsed from a title (abstract work) detail
// page. Publications lists the publication IDs the catalog links from
// the title page; it is used to cross-check merges.
type Title struct {
	ID           string
	Title        string
	Authors      []string
	Type         string
	Length       string
	Date         *Date
	Series       string
	SeriesIndex  *int
	SeriesNote   string
	Language     string // language name as the catalog reports it
	Tags         []string
	Notes        string // sanitized HTML
	Publications []string
}

// Usable reports whether the title carries the minimum fields for a
// normalized record.
func (t *Title) Usable() bool {
	return t != nil && t.ID != "" && t.Title != "" && len(t.Authors) > 0
}

// Record is a normalized metadata record emitted to the caller. Records
// are created by resolution workers, possibly overlaid once during the
// publication/title merge, then handed off and never mutated again.
type Record struct {
	Title       string
	Authors     []string // ordered, first is primary
	Identifiers map[string]string
	Publisher   string
	PubDate     *Date
	Series      string
	SeriesIndex *int
	Language    string
	Tags        []string
	Synopsis    string // sanitized HTML
	CoverURL    string
	SourceURL   string

	// Relevance is the discovery tier used only for result ordering,
	// never for merge decisions.
	Relevance int

	// order is the discovery sequence, for stable ranking.
	order int
}

// Validate returns an error if the record misses required fields.
func (r *Record) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	if len(r.Authors) == 0 {
		return Errorf(EINVALID, "record authors required")
	}
	if len(r.Identifiers) == 0 {
		return Errorf(EINVALID, "record identifier required")
	}
	return nil
}

// SetOrder records the discovery sequence number. It is called once by
// the resolution engine before the record is handed off.
func (r *Record) SetOrder(n int) { r.order = n }

// Rank sorts records by relevance tier (lower first), preserving
// discovery order within a tier. Callers must not assume arrival order
// from the result stream; this is the canonical ordering step.
func Rank(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Relevance != records[j].Relevance {
			return records[i].Relevance < records[j].Relevance
		}
		return records[i].order < records[j].order
	})
}
