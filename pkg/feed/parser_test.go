package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_RSS(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed &amp; More</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>First &amp; Foremost</title>
		<link>http://example.com/article1</link>
		<description><![CDATA[<p>Summary with <script>alert(1)</script> markup</p>]]></description>
		<content:encoded><![CDATA[<p>Full content</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>guid-1</guid>
		<author>test@example.com (Test Author)</author>
		<enclosure url="http://example.com/a1.mp3" length="1024" type="audio/mpeg"/>
	</item>
	<item>
		<title>Second</title>
		<link>http://example.com/article2</link>
		<description>plain summary</description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
</channel>
</rss>`

	parsed, err := NewParser().Parse([]byte(rssContent), "application/rss+xml")
	require.NoError(t, err)

	assert.Equal(t, "Test Feed & More", parsed.Title)
	assert.Equal(t, "http://example.com", parsed.SiteURL)
	require.Len(t, parsed.Articles, 2)

	a1 := parsed.Articles[0]
	assert.Equal(t, "guid-1", a1.GUID)
	assert.Equal(t, "First & Foremost", a1.Title)
	assert.Equal(t, "http://example.com/article1", a1.Link)
	assert.NotContains(t, a1.Summary, "script", "disallowed markup must be stripped")
	assert.Contains(t, a1.Summary, "Summary with")
	assert.Equal(t, "<p>Full content</p>", a1.Content)
	assert.Equal(t, "Test Author", a1.Author)
	assert.Equal(t, "http://example.com/a1.mp3", a1.Enclosure)
	assert.Equal(t, 2006, a1.Published.Year())

	// no guid falls back to link
	a2 := parsed.Articles[1]
	assert.Equal(t, "http://example.com/article2", a2.GUID)
}

func TestParser_Parse_Atom(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Entry One</title>
		<link href="http://example.com/e1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>entry summary</summary>
		<author><name>Jane Roe</name></author>
	</entry>
</feed>`

	parsed, err := NewParser().Parse([]byte(atomContent), "text/html") // wrong hint on purpose
	require.NoError(t, err)

	assert.Equal(t, "Atom Feed", parsed.Title)
	require.Len(t, parsed.Articles, 1)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", parsed.Articles[0].GUID)
	assert.Equal(t, "Jane Roe", parsed.Articles[0].Author)
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), parsed.Articles[0].Published.UTC())
}

func TestParser_Parse_JSONFeed(t *testing.T) {
	jsonContent := `{
		"version": "https://jsonfeed.org/version/1.1",
		"title": "JSON Feed",
		"home_page_url": "http://example.com",
		"items": [
			{"id": "j1", "title": "Json One", "url": "http://example.com/j1",
			 "summary": "json summary", "date_published": "2021-05-01T10:00:00Z"}
		]
	}`

	parsed, err := NewParser().Parse([]byte(jsonContent), "application/feed+json")
	require.NoError(t, err)

	assert.Equal(t, "JSON Feed", parsed.Title)
	require.Len(t, parsed.Articles, 1)
	assert.Equal(t, "j1", parsed.Articles[0].GUID)
	assert.Equal(t, 2021, parsed.Articles[0].Published.Year())
}

func TestParser_Parse_GUIDHashFallback(t *testing.T) {
	// entry with neither guid nor link gets a content-hash identity
	rssContent := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>f</title>
	<item><title>only a title</title><pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate></item>
</channel></rss>`

	parsed, err := NewParser().Parse([]byte(rssContent), "")
	require.NoError(t, err)
	require.Len(t, parsed.Articles, 1)
	assert.NotEmpty(t, parsed.Articles[0].GUID)

	// the hash is stable across parses
	again, err := NewParser().Parse([]byte(rssContent), "")
	require.NoError(t, err)
	assert.Equal(t, parsed.Articles[0].GUID, again.Articles[0].GUID)
}

func TestParser_Parse_UnparseableDateDefaultsToFetchTime(t *testing.T) {
	rssContent := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>f</title>
	<item><title>t</title><link>http://example.com/x</link><pubDate>not a date at all</pubDate></item>
</channel></rss>`

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewParser()
	p.now = func() time.Time { return fixed }

	parsed, err := p.Parse([]byte(rssContent), "")
	require.NoError(t, err)
	require.Len(t, parsed.Articles, 1)
	assert.Equal(t, fixed, parsed.Articles[0].Published)
}

func TestParser_Parse_MalformedXML(t *testing.T) {
	_, err := NewParser().Parse([]byte(`<rss version="2.0"><channel><unclosed`), "application/xml")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindMalformedXML, pe.Kind)
}

func TestParser_Parse_MalformedJSON(t *testing.T) {
	_, err := NewParser().Parse([]byte(`{"version": "https://jsonfeed.org/version/1.1", "items": [`), "application/json")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindMalformedJSON, pe.Kind)
}

func TestParser_Parse_UnsupportedDialect(t *testing.T) {
	_, err := NewParser().Parse([]byte("just some plain text, not a feed"), "text/plain")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindUnsupportedDialect, pe.Kind)
}
