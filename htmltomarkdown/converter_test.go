package htmltomarkdown_test

import (
	"testing"

	"github.com/speclib/isfdb/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("converts synopsis markup", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render(
			"First novel in the <i>Foundation</i> series.<br />Source: https://www.isfdb.org/cgi-bin/pl.cgi?1")
		require.NoError(t, err)
		assert.Contains(t, md, "*Foundation*")
		assert.Contains(t, md, "Source: https://www.isfdb.org/cgi-bin/pl.cgi?1")
	})

	t.Run("empty input renders empty", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render("  ")
		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
