package feed

import "fmt"

// FetchKind classifies transport-level fetch failures
type FetchKind string

// fetch error kinds
const (
	KindUnreachable  FetchKind = "unreachable"
	KindTimeout      FetchKind = "timeout"
	KindHTTP         FetchKind = "http"
	KindTooRedirects FetchKind = "too-many-redirects"
	KindTLS          FetchKind = "tls"
)

// FetchError is a classified network failure for one feed. Always non-fatal to
// the overall run, the orchestrator isolates it per feed.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int // set for KindHTTP only
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseKind classifies parser failures
type ParseKind string

// parse error kinds
const (
	KindMalformedXML       ParseKind = "malformed-xml"
	KindMalformedJSON      ParseKind = "malformed-json"
	KindUnsupportedDialect ParseKind = "unsupported-dialect"
)

// ParseError is a classified feed-document failure, scoped to one feed
type ParseError struct {
	Kind ParseKind
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
