package mock

import "github.com/speclib/isfdb"

var _ isfdb.XrefCache = (*XrefCache)(nil)

// XrefCache is a mock implementation of isfdb.XrefCache.
type XrefCache struct {
	TitleIDForPublicationFn    func(pubID string) (string, bool)
	SetTitleIDForPublicationFn func(pubID, titleID string)
	CoverURLForIDFn            func(id string) (string, bool)
	SetCoverURLForIDFn         func(id, url string)
	IdentifierForISBNFn        func(isbn string) (string, bool)
	SetIdentifierForISBNFn     func(isbn, id string)
	SnapshotFn                 func() map[string]map[string]string
	RestoreFn                  func(snapshot map[string]map[string]string)
}

func (c *XrefCache) TitleIDForPublication(pubID string) (string, bool) {
	return c.TitleIDForPublicationFn(pubID)
}

func (c *XrefCache) SetTitleIDForPublication(pubID, titleID string) {
	c.SetTitleIDForPublicationFn(pubID, titleID)
}

func (c *XrefCache) CoverURLForID(id string) (string, bool) {
	return c.CoverURLForIDFn(id)
}

func (c *XrefCache) SetCoverURLForID(id, url string) {
	c.SetCoverURLForIDFn(id, url)
}

func (c *XrefCache) IdentifierForISBN(isbn string) (string, bool) {
	return c.IdentifierForISBNFn(isbn)
}

func (c *XrefCache) SetIdentifierForISBN(isbn, id string) {
	c.SetIdentifierForISBNFn(isbn, id)
}

func (c *XrefCache) Snapshot() map[string]map[string]string {
	return c.SnapshotFn()
}

func (c *XrefCache) Restore(snapshot map[string]map[string]string) {
	c.RestoreFn(snapshot)
}
