package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlePage() string {
	para := strings.Repeat("This is a long paragraph of real article text with enough words to matter. ", 10)
	return `<!DOCTYPE html>
<html><head><title>Test Article</title></head>
<body>
<nav><a href="/">home</a> <a href="/about">about</a></nav>
<article>
<h1>Test Article</h1>
<p>` + para + `</p>
<p>` + para + `</p>
</article>
<footer>copyright</footer>
</body></html>`
}

func TestHTTPExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articlePage()))
	}))
	defer server.Close()

	e := NewHTTPExtractor(Config{Timeout: 5 * time.Second})
	res, err := e.Extract(context.Background(), server.URL+"/article")
	require.NoError(t, err)

	assert.Contains(t, res.PlainText, "long paragraph of real article text")
	assert.NotContains(t, res.PlainText, "copyright")
	assert.False(t, res.ExtractedAt.IsZero())
}

func TestHTTPExtractor_Extract_InvalidURL(t *testing.T) {
	e := NewHTTPExtractor(Config{})
	_, err := e.Extract(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestHTTPExtractor_Extract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	e := NewHTTPExtractor(Config{Timeout: 5 * time.Second})
	_, err := e.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 404")
}

func TestHTTPExtractor_Extract_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	e := NewHTTPExtractor(Config{Timeout: 5 * time.Second})
	_, err := e.Extract(context.Background(), server.URL)
	require.Error(t, err)
}

func TestIsShallow(t *testing.T) {
	long := strings.Repeat("many words of meaningful summary text ", 10)

	tests := []struct {
		name    string
		title   string
		summary string
		want    bool
	}{
		{"empty summary", "Title", "", true},
		{"short summary", "Title", "<p>tiny</p>", true},
		{"summary equals title", "Exact Same Text", "Exact Same Text", true},
		{"substantial summary", "Title", "<p>" + long + "</p>", false},
		{"link-only summary", "Title", `<p><a href="http://x">` + long + `</a></p>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsShallow(tt.title, tt.summary, 50))
		})
	}
}
