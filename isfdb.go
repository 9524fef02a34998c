// Package isfdb resolves bibliographic metadata for speculative fiction
// books from the Internet Speculative Fiction Database (isfdb.org). Given
// partial, noisy input -- a catalog identifier, an ISBN, or a free-text
// title/author pair -- it queries the catalog's advanced search, parses
// its HTML pages, and reconciles publication and title records into
// normalized metadata records streamed to the caller.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., goquery/, http/, resolve/, sqlite/).
package isfdb
