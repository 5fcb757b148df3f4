package feed

import (
	"bytes"
	"html"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	jsonfeed "github.com/mmcdole/gofeed/json"
	"github.com/mmcdole/gofeed/rss"

	"github.com/akovalev/feedsync/pkg/domain"
)

// ParsedFeed is the normalized result of parsing one feed document
type ParsedFeed struct {
	Title       string
	SiteURL     string
	Description string
	Articles    []domain.RawArticle
}

// FetchedFeed is a fetch-and-parse result for one feed. On a not-modified
// answer Parsed is nil and only the validators carry information.
type FetchedFeed struct {
	NotModified bool
	Parsed      *ParsedFeed
	Validators  domain.CacheValidators
}

// Parser converts raw feed bytes into normalized articles. Dialect is detected
// from content, the transport content-type hint is advisory only since many
// sources mislabel it.
type Parser struct {
	sanitize *bluemonday.Policy
	strip    *bluemonday.Policy
	now      func() time.Time
}

// NewParser creates a parser with the default sanitization policy
func NewParser() *Parser {
	return &Parser{
		sanitize: bluemonday.UGCPolicy(),
		strip:    bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// Parse detects the feed dialect and normalizes its entries
func (p *Parser) Parse(data []byte, contentTypeHint string) (*ParsedFeed, error) {
	parsed, err := p.parseDialect(data, contentTypeHint)
	if err != nil {
		return nil, err
	}

	result := &ParsedFeed{
		Title:       p.cleanText(parsed.Title),
		SiteURL:     parsed.Link,
		Description: p.cleanText(parsed.Description),
		Articles:    make([]domain.RawArticle, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		result.Articles = append(result.Articles, p.normalize(item))
	}

	return result, nil
}

// parseDialect attempts structured detection first, then trial-parses each
// dialect in a fixed priority order (rss, atom, json)
func (p *Parser) parseDialect(data []byte, contentTypeHint string) (*gofeed.Feed, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS, gofeed.FeedTypeAtom:
		parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
		if err != nil {
			return nil, &ParseError{Kind: KindMalformedXML, Err: err}
		}
		return parsed, nil
	case gofeed.FeedTypeJSON:
		parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
		if err != nil {
			return nil, &ParseError{Kind: KindMalformedJSON, Err: err}
		}
		return parsed, nil
	}

	// detection failed, trial each dialect before giving up
	if rssFeed, err := (&rss.Parser{}).Parse(bytes.NewReader(data)); err == nil {
		if parsed, terr := (&gofeed.DefaultRSSTranslator{}).Translate(rssFeed); terr == nil {
			return parsed, nil
		}
	}
	if atomFeed, err := (&atom.Parser{}).Parse(bytes.NewReader(data)); err == nil {
		if parsed, terr := (&gofeed.DefaultAtomTranslator{}).Translate(atomFeed); terr == nil {
			return parsed, nil
		}
	}
	if jf, err := (&jsonfeed.Parser{}).Parse(bytes.NewReader(data)); err == nil {
		if parsed, terr := (&gofeed.DefaultJSONTranslator{}).Translate(jf); terr == nil {
			return parsed, nil
		}
	}

	// document is not any feed dialect, classify by what it pretends to be
	switch {
	case looksLikeJSON(data, contentTypeHint):
		return nil, &ParseError{Kind: KindMalformedJSON}
	case looksLikeXML(data, contentTypeHint):
		return nil, &ParseError{Kind: KindMalformedXML}
	default:
		return nil, &ParseError{Kind: KindUnsupportedDialect}
	}
}

// normalize converts one gofeed item to a raw article with best-available fields
func (p *Parser) normalize(item *gofeed.Item) domain.RawArticle {
	a := domain.RawArticle{
		Title:   p.cleanText(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Summary: p.sanitize.Sanitize(item.Description),
		Content: p.sanitize.Sanitize(item.Content),
	}

	a.Published = p.publishedTime(item)

	// identity fallback chain: explicit id, link, content hash
	switch {
	case item.GUID != "":
		a.GUID = item.GUID
	case a.Link != "":
		a.GUID = a.Link
	default:
		a.GUID = domain.ContentHash(a.Title, a.Published.UTC().Format(time.RFC3339))
	}

	if item.Author != nil {
		a.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		a.Author = item.Authors[0].Name
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			a.Enclosure = enc.URL
			break
		}
	}

	return a
}

// publishedTime picks the entry timestamp from known formats, defaulting to
// fetch time when nothing parses
func (p *Parser) publishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if ts, err := dateparse.ParseAny(raw); err == nil {
			return ts
		}
	}
	return p.now()
}

// cleanText strips markup and decodes HTML entities for plain-text fields
func (p *Parser) cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(p.strip.Sanitize(s)))
}

func looksLikeJSON(data []byte, hint string) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("{")) || strings.Contains(hint, "json")
}

func looksLikeXML(data []byte, hint string) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	return bytes.HasPrefix(trimmed, []byte("<")) || strings.Contains(hint, "xml")
}
