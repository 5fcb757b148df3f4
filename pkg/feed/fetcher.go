package feed

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/akovalev/feedsync/pkg/domain"
)

const maxRedirects = 10

var errTooManyRedirects = errors.New("stopped after too many redirects")

// FetchResult is the outcome of one successful feed retrieval
type FetchResult struct {
	NotModified bool // server answered 304, Body is empty
	Body        []byte
	ContentType string
	Validators  domain.CacheValidators // to persist for the next cycle
}

// Fetcher retrieves feed documents over HTTP with conditional requests.
// It performs no persistence, validators travel in and out through the caller.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// NewFetcher creates a fetcher with the given timeout and user agent
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxBodySize: 10 * 1024 * 1024, // feeds beyond 10MB are broken or hostile
	}
}

// Fetch retrieves a feed document. When validators from a previous fetch are
// supplied they are sent as conditional headers and a 304 response comes back
// as NotModified without a body.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, validators domain.CacheValidators) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	if validators.ETag != "" {
		req.Header.Set("If-None-Match", validators.ETag)
	}
	if validators.LastModified != "" {
		req.Header.Set("If-Modified-Since", validators.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyFetchError(feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return &FetchResult{NotModified: true, Validators: validators}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Kind: KindHTTP, URL: feedURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, classifyFetchError(feedURL, err)
	}

	return &FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Validators: domain.CacheValidators{
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		},
	}, nil
}

// classifyFetchError maps transport errors to the fetch taxonomy
func classifyFetchError(feedURL string, err error) *FetchError {
	fe := &FetchError{URL: feedURL, Err: err}

	switch {
	case errors.Is(err, errTooManyRedirects):
		fe.Kind = KindTooRedirects
	case isTLSError(err):
		fe.Kind = KindTLS
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		fe.Kind = KindTimeout
	default:
		fe.Kind = KindUnreachable
	}
	return fe
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLSError(err error) bool {
	var (
		recordErr tls.RecordHeaderError
		certErr   *tls.CertificateVerificationError
		x509Err   x509.UnknownAuthorityError
		hostErr   x509.HostnameError
	)
	if errors.As(err, &recordErr) || errors.As(err, &certErr) ||
		errors.As(err, &x509Err) || errors.As(err, &hostErr) {
		return true
	}
	// url.Error wrapping a handshake failure keeps only the message for some paths
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var certInvalid x509.CertificateInvalidError
		return errors.As(urlErr.Err, &certInvalid)
	}
	return false
}
