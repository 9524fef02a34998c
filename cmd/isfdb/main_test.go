package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/htmltomarkdown"
	"github.com/speclib/isfdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_NoArguments(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arguments")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, isfdb.DefaultMaxResults, cfg.MaxResults)
	assert.Equal(t, isfdb.DefaultMaxCovers, cfg.MaxCovers)
	assert.True(t, cfg.SearchPublications)
	assert.True(t, cfg.SearchTitles)
	assert.False(t, cfg.CombineSeries)
	assert.True(t, cfg.Robots)
}

func TestResolveCmd_PrintRecord(t *testing.T) {
	t.Parallel()

	idx := 1
	rec := &isfdb.Record{
		Title:   "Foundation",
		Authors: []string{"Isaac Asimov"},
		Identifiers: map[string]string{
			isfdb.IDISFDB: "292284",
			isfdb.IDISBN:  "0345308999",
		},
		Publisher:   "Del Rey / Ballantine",
		PubDate:     &isfdb.Date{Year: 1983, Month: 1, Day: 1},
		Series:      "Foundation",
		SeriesIndex: &idx,
		Language:    "English",
		Tags:        []string{"Science Fiction"},
		Synopsis:    "The first novel.<br />Source: https://www.isfdb.org/cgi-bin/pl.cgi?292284",
		SourceURL:   "https://www.isfdb.org/cgi-bin/pl.cgi?292284",
	}

	var out bytes.Buffer
	cmd := &ResolveCmd{}
	deps := &Dependencies{Stdout: &out, Renderer: htmltomarkdown.NewRenderer()}
	require.NoError(t, cmd.printRecord(deps, rec))

	output := out.String()
	assert.Contains(t, output, "Foundation by Isaac Asimov")
	// Identifier order is deterministic regardless of map iteration.
	assert.Contains(t, output, "identifiers: isbn:0345308999 isfdb:292284")
	assert.Contains(t, output, "published:   1983-01-01")
	assert.Contains(t, output, "series:      Foundation #1")
	assert.Contains(t, output, "The first novel.")
}

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints publications", func(t *testing.T) {
		t.Parallel()

		lookup := &mock.PublicationLookup{
			LookupISBNFn: func(_ context.Context, isbn string) ([]isfdb.APIPublication, error) {
				assert.Equal(t, "1881475530", isbn)
				return []isfdb.APIPublication{{
					ID:        "325837",
					Title:     "The Winchester Horror",
					Authors:   []string{"William F. Nolan"},
					Year:      "1998-00-00",
					Publisher: "Cemetery Dance Publications",
					Type:      "CHAPBOOK",
				}}, nil
			},
		}

		var out bytes.Buffer
		cmd := &LookupCmd{ISBN: "1881475530"}
		err := cmd.Run(&Dependencies{Ctx: context.Background(), Stdout: &out, Lookup: lookup})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "325837  The Winchester Horror by William F. Nolan")
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		lookup := &mock.PublicationLookup{
			LookupISBNFn: func(_ context.Context, isbn string) ([]isfdb.APIPublication, error) {
				return nil, nil
			},
		}

		var out bytes.Buffer
		cmd := &LookupCmd{ISBN: "0000000000"}
		err := cmd.Run(&Dependencies{Ctx: context.Background(), Stdout: &out, Lookup: lookup})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "no publications found")
	})
}

func TestIdentifierFlags_Request(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		MaxResults:         7,
		MaxCovers:          3,
		SearchPublications: true,
		SearchTitles:       false,
		CombineSeries:      true,
	}
	flags := &identifierFlags{
		ISBN:   "9780553293357",
		Title:  "Foundation",
		Author: []string{"Isaac Asimov"},
	}

	req := flags.request(cfg, 0)
	assert.Equal(t, "9780553293357", req.ISBN)
	assert.Equal(t, 7, req.MaxResults)
	assert.Equal(t, 3, req.MaxCovers)
	assert.True(t, req.SearchPublications)
	assert.False(t, req.SearchTitles)
	assert.True(t, req.CombineSeries)

	req = flags.request(cfg, 2)
	assert.Equal(t, 2, req.MaxResults)
}
