// Package extract pulls audit signals out of raw HTML. One extractor per
// audit tool, each a pure function of the markup. The parser is tolerant:
// malformed HTML degrades to sparse signals, never to an error.
package extract

// Heading is a single hN element with its level.
type Heading struct {
	Tag  string
	Text string
}

// Link is an anchor with visible text.
type Link struct {
	Text string
	Href string
}

// Image covers the attributes the audits care about. HasAlt distinguishes
// a present-but-empty alt from a missing one.
type Image struct {
	Src       string
	Alt       string
	HasAlt    bool
	HasWidth  bool
	HasHeight bool
	Loading   string
}

// MetaTag is an og:/twitter: meta entry.
type MetaTag struct {
	Key     string
	Content string
}
