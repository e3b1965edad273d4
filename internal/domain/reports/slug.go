package reports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var toolSlugs = map[Tool]string{
	ToolPLG:           "plg-assessment",
	ToolAccessibility: "accessibility-assessment",
	ToolStructure:     "structure-assessment",
	ToolSEOAEO:        "seo-aeo-assessment",
}

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9-]`)
	slugSuffix = regexp.MustCompile(`-(\d+)$`)
)

// BaseSlug derives the public slug base for a site: hostname lower-cased,
// leading "www." stripped, dots replaced with hyphens, everything else
// non [a-z0-9-] removed, then the per-tool label appended.
func BaseSlug(siteName string, tool Tool) string {
	domain := strings.ToLower(siteName)
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.ReplaceAll(domain, ".", "-")
	domain = slugStrip.ReplaceAllString(domain, "")

	label, ok := toolSlugs[tool]
	if !ok {
		label = fmt.Sprintf("%s-assessment", tool)
	}
	return fmt.Sprintf("%s-%s", domain, label)
}

// NextSlug resolves a collision against the most recent slug sharing the
// base prefix. No match keeps the base; a trailing "-<N>" increments to
// "-<N+1>"; a match without a numeric suffix becomes "-2".
func NextSlug(base, latest string) string {
	if latest == "" {
		return base
	}
	if m := slugSuffix.FindStringSubmatch(latest); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return fmt.Sprintf("%s-%d", base, n+1)
		}
	}
	return base + "-2"
}
