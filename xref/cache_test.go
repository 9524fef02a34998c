package xref_test

import (
	"sync"
	"testing"

	"github.com/speclib/isfdb/xref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GettersAndSetters(t *testing.T) {
	t.Parallel()

	c := xref.NewCache()

	_, ok := c.TitleIDForPublication("503334")
	assert.False(t, ok)

	c.SetTitleIDForPublication("503334", "1234")
	c.SetCoverURLForID("503334", "https://images.example.org/cover.jpg")
	c.SetIdentifierForISBN("0679767800", "503334")

	id, ok := c.TitleIDForPublication("503334")
	require.True(t, ok)
	assert.Equal(t, "1234", id)

	url, ok := c.CoverURLForID("503334")
	require.True(t, ok)
	assert.Equal(t, "https://images.example.org/cover.jpg", url)

	pubID, ok := c.IdentifierForISBN("0679767800")
	require.True(t, ok)
	assert.Equal(t, "503334", pubID)
}

func TestCache_EmptyKeysAndValuesIgnored(t *testing.T) {
	t.Parallel()

	c := xref.NewCache()
	c.SetTitleIDForPublication("", "1234")
	c.SetTitleIDForPublication("503334", "")

	assert.Empty(t, c.Snapshot()[xref.KeyPublicationToTitle])
}

func TestCache_LastWriteWins(t *testing.T) {
	t.Parallel()

	c := xref.NewCache()
	c.SetTitleIDForPublication("1", "10")
	c.SetTitleIDForPublication("1", "20")

	id, ok := c.TitleIDForPublication("1")
	require.True(t, ok)
	assert.Equal(t, "20", id)
}

func TestCache_SnapshotAndRestore(t *testing.T) {
	t.Parallel()

	t.Run("snapshot is a deep copy", func(t *testing.T) {
		t.Parallel()

		c := xref.NewCache()
		c.SetTitleIDForPublication("1", "10")

		snap := c.Snapshot()
		snap[xref.KeyPublicationToTitle]["1"] = "tampered"

		id, ok := c.TitleIDForPublication("1")
		require.True(t, ok)
		assert.Equal(t, "10", id)
	})

	t.Run("restore merges and later writes win", func(t *testing.T) {
		t.Parallel()

		c := xref.NewCache()
		c.Restore(map[string]map[string]string{
			xref.KeyPublicationToTitle: {"1": "10"},
			xref.KeyISBNToIdentifier:   {"isbn": "1"},
		})

		id, ok := c.TitleIDForPublication("1")
		require.True(t, ok)
		assert.Equal(t, "10", id)

		c.SetTitleIDForPublication("1", "20")
		id, _ = c.TitleIDForPublication("1")
		assert.Equal(t, "20", id)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c := xref.NewCache()
		c.SetTitleIDForPublication("1", "10")
		c.SetCoverURLForID("1", "u")
		c.SetIdentifierForISBN("i", "1")

		restored := xref.NewCache()
		restored.Restore(c.Snapshot())
		assert.Equal(t, c.Snapshot(), restored.Snapshot())
	})
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := xref.NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SetTitleIDForPublication("1", "10")
			c.TitleIDForPublication("1")
			c.Snapshot()
		}()
	}
	wg.Wait()
}
