package news

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// anchor is a raw <a> tag found on a front page.
type anchor struct {
	Href string
	Text string
}

// headlinePrefix matches the [Video], (En vivo) style tags outlets prepend
// to the same story on different placements.
var headlinePrefix = regexp.MustCompile(`^(\[[^\]]*\]|\([^)]*\))\s*`)

var whitespace = regexp.MustCompile(`\s+`)

// collectAnchors walks the document and returns every anchor with an href
// and non-empty text.
func collectAnchors(doc *html.Node) []anchor {
	var anchors []anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
					break
				}
			}
			if text := extractText(n); href != "" && text != "" {
				anchors = append(anchors, anchor{Href: href, Text: text})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return anchors
}

// extractText extracts the text content from an HTML node, ignoring any
// nested tags.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text := extractText(c)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// cleanTitle strips placement tags and collapses whitespace so duplicate
// placements of the same story compare equal.
func cleanTitle(title string) string {
	title = headlinePrefix.ReplaceAllString(title, "")
	title = whitespace.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// resolveURL makes a front-page link absolute against the page it came from.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
