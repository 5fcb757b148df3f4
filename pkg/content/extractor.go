package content

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ExtractResult holds the readable article body pulled from a web page
type ExtractResult struct {
	PlainText   string
	RichHTML    string
	ExtractedAt time.Time
}

// Config holds extractor settings
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int // extractions shorter than this are treated as failures
}

// HTTPExtractor extracts article content from URLs, trafilatura first with a
// readability fallback for pages its heuristics give up on
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// NewHTTPExtractor creates a content extractor
func NewHTTPExtractor(cfg Config) *HTTPExtractor {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; feedsync/1.0)"
	}
	if cfg.MinTextLength == 0 {
		cfg.MinTextLength = 100
	}
	return &HTTPExtractor{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minTextLength: cfg.MinTextLength,
	}
}

// Extract retrieves the article page and pulls out the main content block
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (*ExtractResult, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}

	if res, err := e.extractTrafilatura(&buf, parsedURL); err == nil {
		return res, nil
	}

	// trafilatura found nothing usable, try readability before giving up
	res, err := e.extractReadability(&buf, parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	return res, nil
}

func (e *HTTPExtractor) extractTrafilatura(buf *bytes.Buffer, pageURL *url.URL) (*ExtractResult, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(buf.Bytes()), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}
	if result == nil || len(strings.TrimSpace(result.ContentText)) < e.minTextLength {
		return nil, fmt.Errorf("trafilatura: content too short")
	}

	res := &ExtractResult{
		PlainText:   strings.TrimSpace(result.ContentText),
		ExtractedAt: time.Now(),
	}
	if result.ContentNode != nil {
		var sb strings.Builder
		if err := html.Render(&sb, result.ContentNode); err == nil {
			res.RichHTML = sb.String()
		}
	}
	return res, nil
}

func (e *HTTPExtractor) extractReadability(buf *bytes.Buffer, pageURL *url.URL) (*ExtractResult, error) {
	article, err := readability.FromReader(bytes.NewReader(buf.Bytes()), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < e.minTextLength {
		return nil, fmt.Errorf("readability: content too short (%d chars)", len(text))
	}

	return &ExtractResult{
		PlainText:   text,
		RichHTML:    article.Content,
		ExtractedAt: time.Now(),
	}, nil
}
