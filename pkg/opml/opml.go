// Package opml handles importing and exporting OPML subscription lists.
package opml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedSubscriptionList rejects the whole import, partial subscription
// state is worse than refusing the operation
var ErrMalformedSubscriptionList = errors.New("malformed subscription list")

// Document is the root of an OPML document
type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

// Head contains OPML metadata
type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

// Body contains the outlines
type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline represents a single outline element, either a group or a feed
type Outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// Entry is one feed from the list with the group it belongs to
type Entry struct {
	Group   string // empty for feeds at the top level
	Title   string
	XMLURL  string
	HTMLURL string
}

// GroupExport is one group with its feeds, input for Export
type GroupExport struct {
	Name  string
	Feeds []Entry
}

// Parse decodes an OPML document into a flat entry list. Any decoding failure
// fails the whole document.
func Parse(data []byte) ([]Entry, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSubscriptionList, err)
	}

	var entries []Entry
	var walk func(outlines []Outline, group string)
	walk = func(outlines []Outline, group string) {
		for _, o := range outlines {
			if o.XMLURL != "" {
				title := o.Title
				if title == "" {
					title = o.Text
				}
				entries = append(entries, Entry{
					Group:   group,
					Title:   title,
					XMLURL:  o.XMLURL,
					HTMLURL: o.HTMLURL,
				})
				continue
			}
			name := o.Text
			if name == "" {
				name = o.Title
			}
			// nested groups flatten to their top-level name
			if group != "" {
				name = group
			}
			walk(o.Outlines, name)
		}
	}
	walk(doc.Body.Outlines, "")

	return entries, nil
}

// Export serializes groups of feeds into OPML bytes. The output round-trips
// through Parse reproducing the same group names and feed URLs.
func Export(title string, groups []GroupExport) ([]byte, error) {
	doc := Document{
		Version: "2.0",
		Head: Head{
			Title:       title,
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
	}

	for _, g := range groups {
		feedOutlines := make([]Outline, 0, len(g.Feeds))
		for _, f := range g.Feeds {
			feedOutlines = append(feedOutlines, Outline{
				Text:    f.Title,
				Title:   f.Title,
				Type:    "rss",
				XMLURL:  f.XMLURL,
				HTMLURL: f.HTMLURL,
			})
		}
		if g.Name == "" {
			doc.Body.Outlines = append(doc.Body.Outlines, feedOutlines...)
			continue
		}
		doc.Body.Outlines = append(doc.Body.Outlines, Outline{
			Text:     g.Name,
			Title:    g.Name,
			Outlines: feedOutlines,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal opml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
