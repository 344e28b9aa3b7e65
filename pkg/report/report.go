// Package report composes the text and HTML report out of the fetched
// weather, news and country sections. Composition is pure: identical inputs
// produce byte-identical output, and sections whose fetch failed render as
// placeholders instead of aborting the run.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/RHDSz/GmailAPI/pkg/country"
	"github.com/RHDSz/GmailAPI/pkg/news"
	"github.com/RHDSz/GmailAPI/pkg/weather"
)

// Report is the composed document for a single run.
type Report struct {
	Weather     *weather.Info
	News        []news.Item
	Country     *country.Info
	GeneratedAt time.Time
	Text        string
	HTML        string
}

// data is what the templates render. Date and time are preformatted so both
// templates agree on them.
type data struct {
	Weather *weather.Info
	News    []news.Item
	Country *country.Info
	Date    string
	Time    string
}

// Compose renders both bodies. A nil weather or country and an empty news
// slice are all valid inputs.
func Compose(w *weather.Info, items []news.Item, c *country.Info, now time.Time) (*Report, error) {
	d := data{
		Weather: w,
		News:    items,
		Country: c,
		Date:    now.Format("02/01/2006"),
		Time:    now.Format("15:04:05"),
	}

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, d); err != nil {
		return nil, fmt.Errorf("rendering text report: %w", err)
	}

	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, d); err != nil {
		return nil, fmt.Errorf("rendering html report: %w", err)
	}

	return &Report{
		Weather:     w,
		News:        items,
		Country:     c,
		GeneratedAt: now,
		Text:        text.String(),
		HTML:        html.String(),
	}, nil
}

// groupThousands renders 18952038 as "18,952,038".
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(groups, ",")
}
