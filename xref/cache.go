// Package xref provides the in-memory cross-reference caches shared by
// resolution runs: publication ID to title ID, identifier to cover URL,
// and ISBN to identifier. The caches persist across requests within a
// process and can be snapshotted for host persistence.
package xref

import (
	"sync"

	"github.com/speclib/isfdb"
)

// Snapshot keys, also used by persistent stores.
const (
	KeyPublicationToTitle = "publication_id_to_title_id"
	KeyIdentifierToCover  = "identifier_to_cover_url"
	KeyISBNToIdentifier   = "isbn_to_identifier"
)

// Ensure Cache implements isfdb.XrefCache at compile time.
var _ isfdb.XrefCache = (*Cache)(nil)

// Cache holds the three cross-reference maps behind one coarse lock
// each. Contention is low -- the maps are small and writes infrequent --
// so per-map locking favors correctness over striping granularity.
// Values are only added or overwritten, never removed during a run; a
// later write for the same key always wins.
type Cache struct {
	mu         sync.Mutex
	pubToTitle map[string]string
	idToCover  map[string]string
	isbnToID   map[string]string
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		pubToTitle: make(map[string]string),
		idToCover:  make(map[string]string),
		isbnToID:   make(map[string]string),
	}
}

// TitleIDForPublication returns the cached title ID for a publication.
func (c *Cache) TitleIDForPublication(pubID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.pubToTitle[pubID]
	return v, ok
}

// SetTitleIDForPublication caches the title ID owning a publication.
func (c *Cache) SetTitleIDForPublication(pubID, titleID string) {
	if pubID == "" || titleID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pubToTitle[pubID] = titleID
}

// CoverURLForID returns the cached cover URL for a publication ID.
func (c *Cache) CoverURLForID(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.idToCover[id]
	return v, ok
}

// SetCoverURLForID caches the cover URL for a publication ID.
func (c *Cache) SetCoverURLForID(id, url string) {
	if id == "" || url == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idToCover[id] = url
}

// IdentifierForISBN returns the cached publication ID for an ISBN.
func (c *Cache) IdentifierForISBN(isbn string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.isbnToID[isbn]
	return v, ok
}

// SetIdentifierForISBN caches the publication ID for an ISBN.
func (c *Cache) SetIdentifierForISBN(isbn, id string) {
	if isbn == "" || id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isbnToID[isbn] = id
}

// Snapshot returns a deep copy of all three maps keyed by cache name.
func (c *Cache) Snapshot() map[string]map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]map[string]string{
		KeyPublicationToTitle: copyMap(c.pubToTitle),
		KeyIdentifierToCover:  copyMap(c.idToCover),
		KeyISBNToIdentifier:   copyMap(c.isbnToID),
	}
}

// Restore merges a snapshot into the cache. Unknown sub-map names are
// ignored so snapshots from newer versions load cleanly.
func (c *Cache) Restore(snapshot map[string]map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range snapshot[KeyPublicationToTitle] {
		c.pubToTitle[k] = v
	}
	for k, v := range snapshot[KeyIdentifierToCover] {
		c.idToCover[k] = v
	}
	for k, v := range snapshot[KeyISBNToIdentifier] {
		c.isbnToID[k] = v
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
