package goquery_test

import (
	"testing"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicationResultsPage = `
<div id="main">
<h2>Publication search results</h2>
<table class="generic_table">
<tr class="table1"><th>Title</th><th>Date</th><th>Authors</th></tr>
<tr>
<td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?503334">The Stars My Destination<sup class="mouseover">?</sup><span class="tooltiptext">transliterated junk</span></a></td>
<td>1996-07-00</td>
<td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?32">Alfred Bester</a></td>
</tr>
<tr>
<td>row without a record link</td>
<td>0000-00-00</td>
<td></td>
</tr>
<tr>
<td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?62303">Tiger! Tiger!</a></td>
<td>1967-00-00</td>
<td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?32">Alfred Bester</a></td>
</tr>
</table>
</div>`

const titleResultsPage = `
<div id="main">
<form action="something">
<table class="generic_table">
<tr class="table1"><th></th><th></th><th></th><th></th><th>Title</th><th>Authors</th></tr>
<tr>
<td>1</td><td>1953-00-00</td><td>NOVEL</td><td>English</td>
<td><a href="https://www.isfdb.org/cgi-bin/title.cgi?1462">The Demolished Man</a></td>
<td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?32">Alfred Bester</a></td>
</tr>
</table>
</form>
</div>`

func TestSearchParser_ParseSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("publication rows", func(t *testing.T) {
		t.Parallel()

		stubs, err := goquery.NewSearchParser(nil).ParseSearchResults(publicationResultsPage, isfdb.KindPublication, 10)
		require.NoError(t, err)
		require.Len(t, stubs, 2)

		assert.Equal(t, "The Stars My Destination", stubs[0].Title)
		assert.Equal(t, "https://www.isfdb.org/cgi-bin/pl.cgi?503334", stubs[0].URL)
		assert.Equal(t, isfdb.KindPublication, stubs[0].Kind)
		assert.Equal(t, "1996", stubs[0].Year)
		assert.Equal(t, []string{"Alfred Bester"}, stubs[0].Authors)

		assert.Equal(t, "Tiger! Tiger!", stubs[1].Title)
	})

	t.Run("title rows", func(t *testing.T) {
		t.Parallel()

		stubs, err := goquery.NewSearchParser(nil).ParseSearchResults(titleResultsPage, isfdb.KindTitle, 10)
		require.NoError(t, err)
		require.Len(t, stubs, 1)

		assert.Equal(t, "The Demolished Man", stubs[0].Title)
		assert.Equal(t, "https://www.isfdb.org/cgi-bin/title.cgi?1462", stubs[0].URL)
		assert.Equal(t, isfdb.KindTitle, stubs[0].Kind)
		assert.Equal(t, []string{"Alfred Bester"}, stubs[0].Authors)
	})

	t.Run("bounded by max", func(t *testing.T) {
		t.Parallel()

		stubs, err := goquery.NewSearchParser(nil).ParseSearchResults(publicationResultsPage, isfdb.KindPublication, 1)
		require.NoError(t, err)
		assert.Len(t, stubs, 1)
	})

	t.Run("no results page yields nothing", func(t *testing.T) {
		t.Parallel()

		stubs, err := goquery.NewSearchParser(nil).ParseSearchResults(`<div id="main"><h2>No records found</h2></div>`, isfdb.KindPublication, 10)
		require.NoError(t, err)
		assert.Empty(t, stubs)
	})

	t.Run("unsupported kind is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSearchParser(nil).ParseSearchResults(publicationResultsPage, isfdb.KindSeries, 10)
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})
}
