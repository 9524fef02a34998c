package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/speclib/isfdb"
)

// ResolveCmd handles the metadata resolution command.
type ResolveCmd struct {
	identifierFlags
	Max      int  `help:"Maximum number of results (overrides config)" default:"0"`
	Markdown bool `short:"m" help:"Render synopses as Markdown"`
}

func (c *ResolveCmd) Run(deps *Dependencies) error {
	req := c.request(deps.Config, c.Max)

	sink := make(chan *isfdb.Record, req.ResultBound())
	done := make(chan struct{})
	var records []*isfdb.Record
	go func() {
		defer close(done)
		for rec := range sink {
			records = append(records, rec)
		}
	}()

	err := deps.Engine.Resolve(deps.Ctx, req, sink)
	close(sink)
	<-done
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "no records found")
		return nil
	}

	isfdb.Rank(records)
	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		if err := c.printRecord(deps, rec); err != nil {
			return err
		}
	}
	return nil
}

func (c *ResolveCmd) printRecord(deps *Dependencies, rec *isfdb.Record) error {
	w := deps.Stdout

	fmt.Fprintf(w, "%s by %s\n", rec.Title, strings.Join(rec.Authors, ", "))
	fmt.Fprintf(w, "  identifiers: %s\n", formatIdentifiers(rec.Identifiers))
	if rec.Publisher != "" {
		fmt.Fprintf(w, "  publisher:   %s\n", rec.Publisher)
	}
	if rec.PubDate != nil {
		fmt.Fprintf(w, "  published:   %s\n", rec.PubDate)
	}
	if rec.Series != "" {
		series := rec.Series
		if rec.SeriesIndex != nil {
			series = fmt.Sprintf("%s #%d", series, *rec.SeriesIndex)
		}
		fmt.Fprintf(w, "  series:      %s\n", series)
	}
	if rec.Language != "" {
		fmt.Fprintf(w, "  language:    %s\n", rec.Language)
	}
	if len(rec.Tags) > 0 {
		fmt.Fprintf(w, "  tags:        %s\n", strings.Join(rec.Tags, ", "))
	}
	if rec.CoverURL != "" {
		fmt.Fprintf(w, "  cover:       %s\n", rec.CoverURL)
	}

	if rec.Synopsis != "" {
		synopsis := rec.Synopsis
		if c.Markdown {
			md, err := deps.Renderer.Render(synopsis)
			if err != nil {
				return fmt.Errorf("failed to render synopsis: %w", err)
			}
			synopsis = md
		}
		fmt.Fprintf(w, "  synopsis:\n")
		for _, line := range strings.Split(strings.TrimSpace(synopsis), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}

func formatIdentifiers(ids map[string]string) string {
	keys := make([]string, 0, len(ids))
	for k := range ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+ids[k])
	}
	return strings.Join(pairs, " ")
}
