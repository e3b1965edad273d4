package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SEOSignals feeds the SEO/AEO visibility audit.
type SEOSignals struct {
	Title            string
	MetaDescription  string
	Canonical        string
	RobotsMeta       string
	Viewport         string
	OGTags           []MetaTag
	TwitterTags      []MetaTag
	Favicon          string
	AppleTouchIcon   string
	Headings         []Heading
	H1Count          int
	H1Text           string
	JSONLDCount      int
	SchemaTypes      []string
	SchemaDetails    []string
	Links            []Link
	BrokenLinks      []Link
	Images           []Image
	HreflangTags     []HreflangTag
	SitemapLink      string
	RobotsTxtRef     bool
	PrivacyLink      bool
	TermsLink        bool
	ContactLink      bool
	SocialLinks      []Link
	EmailLinks       []Link
	PhoneLinks       []Link
	CopyrightYear    string
	Paragraphs       []string
	FAQSections      int
	QuestionPatterns []string
}

type HreflangTag struct {
	Hreflang string
	Href     string
}

var copyrightPattern = regexp.MustCompile(`(?i)©\s*(\d{4})|copyright\s*(\d{4})`)

var socialDomains = []string{
	"linkedin.com", "twitter.com", "x.com", "facebook.com",
	"instagram.com", "youtube.com", "github.com",
}

const invalidJSONLD = "(invalid JSON-LD)"

// SEO extracts the SEO/AEO signal set. The raw HTML is kept around for the
// copyright-year regex, which runs over text the DOM queries would miss.
func SEO(html string) SEOSignals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return SEOSignals{}
	}

	var sig SEOSignals
	sig.Title = strings.TrimSpace(doc.Find("title").Text())
	sig.MetaDescription = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	sig.Canonical = doc.Find(`link[rel="canonical"]`).AttrOr("href", "")
	sig.RobotsMeta = doc.Find(`meta[name="robots"]`).AttrOr("content", "")
	sig.Viewport = doc.Find(`meta[name="viewport"]`).AttrOr("content", "")

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		sig.OGTags = append(sig.OGTags, MetaTag{
			Key:     s.AttrOr("property", ""),
			Content: s.AttrOr("content", ""),
		})
	})
	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		sig.TwitterTags = append(sig.TwitterTags, MetaTag{
			Key:     s.AttrOr("name", ""),
			Content: s.AttrOr("content", ""),
		})
	})

	sig.Favicon = doc.Find(`link[rel="icon"]`).AttrOr("href", "")
	if sig.Favicon == "" {
		sig.Favicon = doc.Find(`link[rel="shortcut icon"]`).AttrOr("href", "")
	}
	sig.AppleTouchIcon = doc.Find(`link[rel="apple-touch-icon"]`).AttrOr("href", "")

	sig.Headings = headings(doc)
	sig.H1Count = doc.Find("h1").Length()
	sig.H1Text = strings.TrimSpace(doc.Find("h1").First().Text())

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		sig.JSONLDCount++
		raw := s.Text()
		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			sig.SchemaDetails = append(sig.SchemaDetails, invalidJSONLD)
			return
		}
		if types := schemaTypeNames(parsed["@type"]); len(types) > 0 {
			sig.SchemaTypes = append(sig.SchemaTypes, types...)
			sig.SchemaDetails = append(sig.SchemaDetails, truncate(compactJSON(parsed), 500))
		}
		if graph, ok := parsed["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok {
					sig.SchemaTypes = append(sig.SchemaTypes, schemaTypeNames(m["@type"])...)
				}
			}
		}
	})

	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		l := Link{Text: strings.TrimSpace(s.Text()), Href: s.AttrOr("href", "")}
		if l.Text == "" && l.Href == "" {
			return true
		}
		sig.Links = append(sig.Links, l)
		return len(sig.Links) < 100
	})

	for _, l := range sig.Links {
		if l.Href == "#" || l.Href == "" || l.Href == "javascript:void(0)" {
			sig.BrokenLinks = append(sig.BrokenLinks, l)
		}
		lowText := strings.ToLower(l.Text)
		if strings.Contains(lowText, "privacy") || strings.Contains(l.Href, "privacy") {
			sig.PrivacyLink = true
		}
		if strings.Contains(lowText, "terms") || strings.Contains(l.Href, "terms") {
			sig.TermsLink = true
		}
		if strings.Contains(lowText, "contact") || strings.Contains(l.Href, "contact") {
			sig.ContactLink = true
		}
		if strings.Contains(l.Href, "robots.txt") {
			sig.RobotsTxtRef = true
		}
		lowHref := strings.ToLower(l.Href)
		if containsAny(lowHref, socialDomains) {
			sig.SocialLinks = append(sig.SocialLinks, l)
		}
		if strings.HasPrefix(l.Href, "mailto:") {
			sig.EmailLinks = append(sig.EmailLinks, l)
		}
		if strings.HasPrefix(l.Href, "tel:") {
			sig.PhoneLinks = append(sig.PhoneLinks, l)
		}
	}

	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		alt, hasAlt := s.Attr("alt")
		sig.Images = append(sig.Images, Image{
			Src:    s.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: hasAlt,
		})
		return len(sig.Images) < 30
	})

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		sig.HreflangTags = append(sig.HreflangTags, HreflangTag{
			Hreflang: s.AttrOr("hreflang", ""),
			Href:     s.AttrOr("href", ""),
		})
	})
	sig.SitemapLink = doc.Find(`link[rel="sitemap"]`).AttrOr("href", "")

	if m := copyrightPattern.FindStringSubmatch(html); m != nil {
		if m[1] != "" {
			sig.CopyrightYear = m[1]
		} else {
			sig.CopyrightYear = m[2]
		}
	}

	sig.FAQSections = doc.Find(`[class*="faq"], [class*="FAQ"], [id*="faq"], [id*="FAQ"], details, [itemtype*="FAQPage"]`).Length()

	doc.Find("script, style, noscript, svg").Remove()
	sig.Paragraphs = paragraphs(doc, 40)
	for _, p := range sig.Paragraphs {
		if strings.HasSuffix(p, "?") || strings.HasPrefix(p, "Q:") {
			sig.QuestionPatterns = append(sig.QuestionPatterns, p)
		}
	}

	return sig
}

// schemaTypeNames handles "@type" being either a string or a list.
func schemaTypeNames(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
