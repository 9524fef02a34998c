package etree_test

import (
	"context"
	"testing"

	"github.com/speclib/isfdb"
	"github.com/speclib/isfdb/etree"
	"github.com/speclib/isfdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getpubResponse = `<?xml version="1.0" encoding="iso-8859-1" ?>
<ISFDB>
 <Records>1</Records>
 <Publications>
   <Publication>
     <Record>325837</Record>
     <Title>The Winchester Horror</Title>
     <Authors>
       <Author>William F. Nolan</Author>
     </Authors>
     <Year>1998-00-00</Year>
     <Isbn>1881475530</Isbn>
     <Publisher>Cemetery Dance Publications</Publisher>
     <Price>$30.00</Price>
     <Binding>hc</Binding>
     <Type>CHAPBOOK</Type>
   </Publication>
 </Publications>
</ISFDB>`

const getpubEmptyResponse = `<?xml version="1.0" encoding="iso-8859-1" ?>
<ISFDB>
  <Records>0</Records>
  <Publications>
  </Publications>
</ISFDB>`

func TestPublicationLookup_LookupISBN(t *testing.T) {
	t.Parallel()

	t.Run("parses publication records", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, isfdb.WebAPIGetPubURL+"1881475530", url)
				return getpubResponse, nil
			},
		}

		pubs, err := etree.NewPublicationLookup(fetcher).LookupISBN(context.Background(), "1881475530")
		require.NoError(t, err)
		require.Len(t, pubs, 1)

		pub := pubs[0]
		assert.Equal(t, "325837", pub.ID)
		assert.Equal(t, "The Winchester Horror", pub.Title)
		assert.Equal(t, []string{"William F. Nolan"}, pub.Authors)
		assert.Equal(t, "1998-00-00", pub.Year)
		assert.Equal(t, "1881475530", pub.ISBN)
		assert.Equal(t, "Cemetery Dance Publications", pub.Publisher)
		assert.Equal(t, "CHAPBOOK", pub.Type)
	})

	t.Run("zero records is not an error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return getpubEmptyResponse, nil
			},
		}

		pubs, err := etree.NewPublicationLookup(fetcher).LookupISBN(context.Background(), "0000000000")
		require.NoError(t, err)
		assert.Empty(t, pubs)
	})

	t.Run("tolerates junk before the declaration", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "\n\n" + getpubResponse, nil
			},
		}

		pubs, err := etree.NewPublicationLookup(fetcher).LookupISBN(context.Background(), "1881475530")
		require.NoError(t, err)
		assert.Len(t, pubs, 1)
	})

	t.Run("empty ISBN is invalid", func(t *testing.T) {
		t.Parallel()

		lookup := etree.NewPublicationLookup(&mock.Fetcher{})
		_, err := lookup.LookupISBN(context.Background(), "")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})

	t.Run("malformed payload is invalid", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>not xml", nil
			},
		}

		_, err := etree.NewPublicationLookup(fetcher).LookupISBN(context.Background(), "1881475530")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})
}
