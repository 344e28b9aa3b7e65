// Package news scrapes headlines from the front pages of Chilean outlets.
// Outlets are treated as opaque, possibly-flaky collaborators: a source that
// cannot be reached or parsed is skipped and the rest carry on.
package news

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

// Client collects headlines from a configured subset of the registry.
type Client struct {
	Sources      []Source
	MaxPerSource int
	MaxTotal     int
	HTTPClient   *http.Client
}

// NewClient resolves the configured source codes against the registry.
// Unknown codes are skipped with a warning.
func NewClient(cfg *config.Config) *Client {
	configured := make(map[string]bool, len(cfg.NewsSources))
	for _, code := range cfg.NewsSources {
		if _, ok := lookup(code); !ok {
			logrus.WithField("source", code).Warn("unknown news source, skipping")
			continue
		}
		configured[code] = true
	}

	// Headlines keep registry order no matter how the configuration lists
	// the sources.
	sources := make([]Source, 0, len(configured))
	for _, s := range registry {
		if configured[s.Code] {
			sources = append(sources, s)
		}
	}

	return &Client{
		Sources:      sources,
		MaxPerSource: cfg.NewsMaxPerSource,
		MaxTotal:     cfg.NewsMaxTotal,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Fetch returns headlines in source-registry order, capped per source and in
// total. It fails only when every source failed and nothing was collected.
// Canceling the context aborts in-flight requests.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	if len(c.Sources) == 0 {
		return nil, fmt.Errorf("%w: no news sources configured", errs.ErrConfig)
	}

	var items []Item
	var failures int

	for _, source := range c.Sources {
		got, err := fetch(ctx, c.HTTPClient, source, c.MaxPerSource)
		if err != nil {
			logrus.WithField("source", source.Code).Warnf("skipping source: %v", err)
			failures++
			continue
		}
		logrus.WithField("source", source.Code).Debugf("collected %d headlines", len(got))
		items = append(items, got...)
	}

	if len(items) == 0 && failures > 0 {
		return nil, fmt.Errorf("%w: all %d news sources failed", errs.ErrUpstream, failures)
	}

	// A zero or negative total cap means unlimited.
	if c.MaxTotal > 0 && len(items) > c.MaxTotal {
		items = items[:c.MaxTotal]
	}
	return items, nil
}
