package search_test

import (
	"strings"
	"testing"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeSearchURL(t *testing.T) {
	t.Parallel()

	t.Run("builds an exact ISBN search", func(t *testing.T) {
		t.Parallel()

		url, err := search.CodeSearchURL("9780553293357")
		require.NoError(t, err)
		assert.Equal(t, isfdb.AdvSearchURL+
			"USE_1=pub_isbn&OPERATOR_1=exact&TERM_1=9780553293357&"+
			"ORDERBY=pub_title&START=0&TYPE=Publication", url)
	})

	t.Run("empty code is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := search.CodeSearchURL("")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})
}

func TestTextSearchURLs(t *testing.T) {
	t.Parallel()

	t.Run("title and author join with AND", func(t *testing.T) {
		t.Parallel()

		url, err := search.PublicationSearchURL("City", "Clifford D. Simak")
		require.NoError(t, err)
		assert.Contains(t, url, "USE_1=pub_title&OPERATOR_1=contains&TERM_1=City")
		assert.Contains(t, url, "USE_2=author_canonical&OPERATOR_2=contains&TERM_2=Clifford+D.+Simak")
		assert.Contains(t, url, "CONJUNCTION_1=AND")
		assert.Contains(t, url, "TYPE=Publication")
	})

	t.Run("author only renumbers from 1", func(t *testing.T) {
		t.Parallel()

		url, err := search.TitleSearchURL("", "Clifford D. Simak")
		require.NoError(t, err)
		assert.Contains(t, url, "USE_1=author_canonical")
		assert.NotContains(t, url, "CONJUNCTION_1")
		assert.Contains(t, url, "TYPE=Title")
	})

	t.Run("no terms is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := search.TitleSearchURL("", "")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})

	t.Run("terms encode as Latin-1 bytes", func(t *testing.T) {
		t.Parallel()

		// The catalog's CGI decodes ISO-8859-1; a UTF-8 encoding of the
		// same term silently matches nothing.
		url, err := search.PublicationSearchURL("Überfall", "")
		require.NoError(t, err)
		assert.Contains(t, url, "TERM_1=%DCberfall")
		assert.NotContains(t, url, "%C3%9C")
	})

	t.Run("unmappable runes are replaced not dropped", func(t *testing.T) {
		t.Parallel()

		url, err := search.PublicationSearchURL("Wojna światów", "")
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "TERM_1=Wojna+%1Awiat%F3w") ||
			strings.Contains(url, "TERM_1=Wojna+%3Fwiat%F3w"),
			"got %s", url)
	})
}

func TestExactTitleSearchURL(t *testing.T) {
	t.Parallel()

	t.Run("matches title author and type exactly", func(t *testing.T) {
		t.Parallel()

		url, err := search.ExactTitleSearchURL("Way Station", "Clifford D. Simak", "NOVEL")
		require.NoError(t, err)
		assert.Contains(t, url, "USE_1=title_title&OPERATOR_1=exact&TERM_1=Way+Station")
		assert.Contains(t, url, "USE_2=author_canonical&OPERATOR_2=exact")
		assert.Contains(t, url, "USE_3=title_ttype&OPERATOR_3=exact&TERM_3=NOVEL")
	})

	t.Run("requires title and author", func(t *testing.T) {
		t.Parallel()

		_, err := search.ExactTitleSearchURL("Way Station", "", "NOVEL")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})
}

func TestDetailURLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.isfdb.org/cgi-bin/pl.cgi?503334", search.PublicationDetailURL("503334"))
	assert.Equal(t, "https://www.isfdb.org/cgi-bin/title.cgi?1234", search.TitleDetailURL("1234"))
	assert.Equal(t, "https://www.isfdb.org/cgi-bin/titlecovers.cgi?1234", search.TitleCoversPageURL("1234"))
}

func TestTitleTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"strips joining words", "The War of the Worlds", []string{"War", "of", "Worlds"}},
		{"strips bracketed annotations", "Dune (40th Anniversary Edition)", []string{"Dune"}},
		{"cuts subtitles", "Foundation: The First Novel", []string{"Foundation"}},
		{"punctuation becomes spaces", "Do Androids Dream of Electric Sheep?", []string{"Do", "Androids", "Dream", "of", "Electric", "Sheep?"}},
		{"joins thousands separators", "20,000 Leagues Under Sea", []string{"20000", "Leagues", "Under", "Sea"}},
		{"ampersand is a joiner", "Space & Time", []string{"Space", "Time"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, search.TitleTokens(tt.input))
		})
	}
}

func TestAuthorTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		authors []string
		want    []string
	}{
		{"plain name", []string{"Clifford D. Simak"}, []string{"Clifford", "D.", "Simak"}},
		{"inverted name rotates", []string{"Simak, Clifford D."}, []string{"Clifford", "D.", "Simak"}},
		{"only first author is used", []string{"Larry Niven", "Jerry Pournelle"}, []string{"Larry", "Niven"}},
		{"no authors", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, search.AuthorTokens(tt.authors))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, search.NormalizeTitle("The Stars My Destination"),
		search.NormalizeTitle("the stars my destination!"))
	assert.NotEqual(t, search.NormalizeTitle("City"),
		search.NormalizeTitle("City and Other Stories"))
	assert.Equal(t, "überfall", search.NormalizeTitle("Überfall"))
}
