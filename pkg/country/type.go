package country

// Info is the simplified country view used by the report.
type Info struct {
	Code         string
	Name         string
	OfficialName string
	Capital      string
	Region       string
	Subregion    string
	Population   int64
	Languages    []string
	Currencies   []string
	FlagURL      string
}

// response mirrors the parts of the REST Countries v3.1 payload we read.
// The API returns a list with a single element for alpha-code lookups.
type response struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
}
