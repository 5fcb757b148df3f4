package content

import (
	"strings"

	"golang.org/x/net/html"
)

// linkDensityLimit marks a summary as navigation-like when more than this share
// of its text lives inside anchors
const linkDensityLimit = 0.5

// IsShallow reports whether a feed-supplied summary is too thin to be worth
// showing, which is the trigger for full-content extraction on feeds that have
// it enabled.
func IsShallow(title, summaryHTML string, minLength int) bool {
	text, linkText := textAndLinkText(summaryHTML)
	text = strings.TrimSpace(text)

	if len(text) < minLength {
		return true
	}
	if strings.EqualFold(text, strings.TrimSpace(title)) {
		return true
	}
	if len(text) > 0 && float64(len(linkText))/float64(len(text)) > linkDensityLimit {
		return true
	}
	return false
}

// textAndLinkText walks the summary markup collecting total text and the
// portion of it inside <a> elements
func textAndLinkText(summaryHTML string) (text, linkText string) {
	root, err := html.Parse(strings.NewReader(summaryHTML))
	if err != nil {
		// not parseable as HTML, treat the raw string as plain text
		return summaryHTML, ""
	}

	var all, links strings.Builder
	var walk func(n *html.Node, inLink bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.ElementNode && n.Data == "a" {
			inLink = true
		}
		if n.Type == html.TextNode {
			all.WriteString(n.Data)
			if inLink {
				links.WriteString(n.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inLink)
		}
	}
	walk(root, false)

	return all.String(), links.String()
}
