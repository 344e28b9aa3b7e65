package weather

import "time"

// Info is the simplified view of the current conditions used by the report.
type Info struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Condition   string
	IconURL     string
	FetchedAt   time.Time
}

// response mirrors the parts of the OpenWeatherMap payload we read.
type response struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}
