// Package country fetches country metadata from the REST Countries API.
package country

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

const defaultBaseURL = "https://restcountries.com/v3.1"

// Client talks to the REST Countries v3.1 API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client from the configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Info returns metadata for an ISO 3166-1 alpha-2 country code. Canceling
// the context aborts an in-flight request.
func (c *Client) Info(ctx context.Context, code string) (*Info, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: country code must not be empty", errs.ErrConfig)
	}

	logrus.WithField("country", code).Debug("fetching country info")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/alpha/"+code, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building restcountries request: %v", errs.ErrUpstream, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: restcountries request: %v", errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: unknown country code %q", errs.ErrNotFound, code)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: restcountries status %d", errs.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading restcountries response: %v", errs.ErrUpstream, err)
	}

	// Alpha-code lookups come back as a one-element list.
	var list []response
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: parsing restcountries response: %v", errs.ErrUpstream, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty restcountries response for %q", errs.ErrUpstream, code)
	}
	data := list[0]

	info := &Info{
		Code:         code,
		Name:         data.Name.Common,
		OfficialName: data.Name.Official,
		Capital:      strings.Join(data.Capital, ", "),
		Region:       data.Region,
		Subregion:    data.Subregion,
		Population:   data.Population,
		FlagURL:      data.Flags.PNG,
	}

	// Maps iterate in random order; sort so the report is deterministic.
	for _, lang := range data.Languages {
		info.Languages = append(info.Languages, lang)
	}
	sort.Strings(info.Languages)

	for _, cur := range data.Currencies {
		symbol := cur.Symbol
		if symbol == "" {
			symbol = "?"
		}
		info.Currencies = append(info.Currencies, fmt.Sprintf("%s (%s)", cur.Name, symbol))
	}
	sort.Strings(info.Currencies)

	logrus.WithField("country", info.Name).Debug("country info fetched")
	return info, nil
}
