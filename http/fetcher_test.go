package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/speclib/isfdb"
	isfdbhttp "github.com/speclib/isfdb/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("decodes Latin-1 bodies to UTF-8", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "Überfall" with Ü as the single Latin-1 byte 0xDC.
			_, _ = w.Write([]byte{'<', 'b', '>', 0xDC, 'b', 'e', 'r', 'f', 'a', 'l', 'l', '<', '/', 'b', '>'})
		}))
		defer srv.Close()

		html, err := isfdbhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<b>Überfall</b>", html)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := isfdbhttp.NewFetcher(isfdbhttp.WithUserAgent("test-agent/2.0"))
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/2.0", gotUA)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := isfdbhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		assert.Equal(t, isfdb.ENOTFOUND, isfdb.ErrorCode(err))
	})

	t.Run("server errors map to unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := isfdbhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		assert.Equal(t, isfdb.EUNAVAILABLE, isfdb.ErrorCode(err))
	})

	t.Run("strips control characters", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("a\x00b\x1fc\td\n"))
		}))
		defer srv.Close()

		html, err := isfdbhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "abc\td\n", html)
	})

	t.Run("canceled context fails fast", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := isfdbhttp.NewFetcher().Fetch(ctx, srv.URL)
		assert.Equal(t, isfdb.EUNAVAILABLE, isfdb.ErrorCode(err))
	})

	t.Run("invalid URL is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := isfdbhttp.NewFetcher().Fetch(context.Background(), "://bad")
		assert.Equal(t, isfdb.EINVALID, isfdb.ErrorCode(err))
	})
}

func TestFetcher_Robots(t *testing.T) {
	t.Parallel()

	t.Run("disallowed path is refused without fetching", func(t *testing.T) {
		t.Parallel()

		pageHits := 0
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /cgi-bin/\n"))
		})
		mux.HandleFunc("/cgi-bin/pl.cgi", func(w http.ResponseWriter, r *http.Request) {
			pageHits++
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := isfdbhttp.NewFetcher(isfdbhttp.WithRobots())
		_, err := f.Fetch(context.Background(), srv.URL+"/cgi-bin/pl.cgi?1")
		assert.Equal(t, isfdb.EUNAVAILABLE, isfdb.ErrorCode(err))
		assert.Zero(t, pageHits)
	})

	t.Run("missing robots file allows everything", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := isfdbhttp.NewFetcher(isfdbhttp.WithRobots())
		html, err := f.Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})
}
