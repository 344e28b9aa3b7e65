package news

import "regexp"

// Item is one headline as it appears in the composed report.
type Item struct {
	Title      string
	Source     string // registry code, e.g. "emol"
	SourceName string // human-readable outlet name
	URL        string
}

// Source describes one outlet: where its front page lives and what its
// article links look like.
type Source struct {
	Code        string
	Name        string
	HomeURL     string
	LinkPattern *regexp.Regexp
}
