package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalev/feedsync/pkg/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	const body = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "feedsync/1.0")
	res, err := f.Fetch(context.Background(), server.URL, domain.CacheValidators{})
	require.NoError(t, err)

	assert.False(t, res.NotModified)
	assert.Equal(t, body, string(res.Body))
	assert.Equal(t, `"v1"`, res.Validators.ETag)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", res.Validators.LastModified)
	assert.Contains(t, res.ContentType, "rss")
}

func TestFetcher_Fetch_NotModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte("<rss version=\"2.0\"><channel></channel></rss>"))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "feedsync/1.0")

	first, err := f.Fetch(context.Background(), server.URL, domain.CacheValidators{})
	require.NoError(t, err)
	require.False(t, first.NotModified)

	second, err := f.Fetch(context.Background(), server.URL, first.Validators)
	require.NoError(t, err)
	assert.True(t, second.NotModified)
	assert.Empty(t, second.Body)
	// validators survive a 304 so the next cycle still sends them
	assert.Equal(t, `"v1"`, second.Validators.ETag)
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "feedsync/1.0")
	_, err := f.Fetch(context.Background(), server.URL, domain.CacheValidators{})
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindHTTP, fe.Kind)
	assert.Equal(t, http.StatusGone, fe.StatusCode)
}

func TestFetcher_Fetch_TooManyRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/loop", http.StatusFound)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "feedsync/1.0")
	_, err := f.Fetch(context.Background(), server.URL, domain.CacheValidators{})
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindTooRedirects, fe.Kind)
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	f := NewFetcher(50*time.Millisecond, "feedsync/1.0")
	_, err := f.Fetch(context.Background(), server.URL, domain.CacheValidators{})
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindTimeout, fe.Kind)
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	f := NewFetcher(time.Second, "feedsync/1.0")
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1", domain.CacheValidators{})
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindUnreachable, fe.Kind)
}
