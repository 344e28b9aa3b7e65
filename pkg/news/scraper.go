package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/html"

	"github.com/RHDSz/GmailAPI/pkg/errs"
)

// Outlets block default Go user agents often enough that a browser-like one
// is required.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// minTitleLen filters out navigation links ("Deportes", "Inicio") that match
// the article patterns by accident.
const minTitleLen = 20

// fetch downloads a source's front page and extracts up to max headlines.
func fetch(ctx context.Context, client *http.Client, source Source, max int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.HomeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", errs.ErrUpstream, source.Code, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", errs.ErrNetwork, source.Code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", errs.ErrUpstream, source.Code, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s front page: %v", errs.ErrUpstream, source.Code, err)
	}

	base, err := url.Parse(source.HomeURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad home URL for %s: %v", errs.ErrUpstream, source.Code, err)
	}

	return extractHeadlines(doc, base, source, max), nil
}

// extractHeadlines picks article-shaped anchors off a parsed front page,
// deduplicates them by cleaned title and caps the result.
func extractHeadlines(doc *html.Node, base *url.URL, source Source, max int) []Item {
	items := make([]Item, 0, max)
	seen := make(map[string]bool)

	for _, a := range collectAnchors(doc) {
		if !source.LinkPattern.MatchString(a.Href) {
			continue
		}

		title := cleanTitle(a.Text)
		if len(title) < minTitleLen {
			continue
		}
		if seen[title] {
			continue
		}

		link := resolveURL(base, a.Href)
		if link == "" {
			continue
		}

		seen[title] = true
		items = append(items, Item{
			Title:      title,
			Source:     source.Code,
			SourceName: source.Name,
			URL:        link,
		})

		if len(items) >= max {
			break
		}
	}

	return items
}
