package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/resolve"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	Config    string `help:"Directory to look for config.yaml in" default:"."`
	CacheFile string `help:"Path to the cross-reference cache database" default:"isfdb-cache.db"`

	Resolve ResolveCmd `cmd:"" help:"Resolve book metadata from an identifier, ISBN, or title/author"`
	Covers  CoversCmd  `cmd:"" help:"Find cover image URLs for a book"`
	Lookup  LookupCmd  `cmd:"" help:"Query the XML web API for publications by ISBN"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	Fetcher  isfdb.Fetcher
	Engine   *resolve.Engine
	Lookup   isfdb.PublicationLookup
	Cache    isfdb.XrefCache
	Renderer isfdb.SynopsisRenderer
}

// identifierFlags are the record selectors shared by the resolve and
// covers commands.
type identifierFlags struct {
	PubID     string   `help:"Publication record ID"`
	TitleID   string   `help:"Title record ID"`
	ISBN      string   `help:"ISBN-10 or ISBN-13"`
	CatalogID string   `help:"Publisher catalog code"`
	Title     string   `help:"Book title to search for"`
	Author    []string `short:"a" help:"Author name, repeatable"`
}

// request assembles an isfdb.Request from flags, falling back to the
// config file for toggles the command line leaves unset.
func (f *identifierFlags) request(cfg *Config, maxResults int) *isfdb.Request {
	if maxResults <= 0 {
		maxResults = cfg.MaxResults
	}
	return &isfdb.Request{
		PublicationID:      f.PubID,
		TitleID:            f.TitleID,
		ISBN:               f.ISBN,
		CatalogID:          f.CatalogID,
		Title:              f.Title,
		Authors:            f.Author,
		MaxResults:         maxResults,
		MaxCovers:          cfg.MaxCovers,
		SearchPublications: cfg.SearchPublications,
		SearchTitles:       cfg.SearchTitles,
		CombineSeries:      cfg.CombineSeries,
	}
}
