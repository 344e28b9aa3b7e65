// Package weather fetches current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/errs"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client talks to the OpenWeatherMap current-weather endpoint.
type Client struct {
	APIKey     string
	Units      string
	Lang       string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a metric-unit client from the configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		APIKey:     cfg.WeatherAPIKey,
		Units:      "metric",
		Lang:       cfg.Language,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Current returns the current conditions for the given city. Canceling the
// context aborts an in-flight request.
func (c *Client) Current(ctx context.Context, city string) (*Info, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city must not be empty", errs.ErrConfig)
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENWEATHER_API_KEY is not set", errs.ErrConfig)
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.APIKey)
	params.Set("units", c.Units)
	params.Set("lang", c.Lang)

	logrus.WithField("city", city).Debug("fetching current weather")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building openweathermap request: %v", errs.ErrUpstream, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openweathermap request: %v", errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: unknown city %q", errs.ErrNotFound, city)
	case resp.StatusCode != http.StatusOK:
		// 401 (bad key) and 429 (rate limit) both land here.
		return nil, fmt.Errorf("%w: openweathermap status %d", errs.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading openweathermap response: %v", errs.ErrUpstream, err)
	}

	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing openweathermap response: %v", errs.ErrUpstream, err)
	}

	info := &Info{
		City:        data.Name,
		Country:     data.Sys.Country,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		WindSpeed:   data.Wind.Speed,
		FetchedAt:   time.Now(),
	}
	if info.City == "" {
		info.City = city
	}
	if len(data.Weather) > 0 {
		info.Condition = capitalize(data.Weather[0].Description)
		if data.Weather[0].Icon != "" {
			info.IconURL = fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", data.Weather[0].Icon)
		}
	}

	logrus.WithField("city", info.City).Debug("weather fetched")
	return info, nil
}

// capitalize upper-cases the first rune, matching how the report shows the
// condition description.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
