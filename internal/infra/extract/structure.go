package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructureSignals feeds the information-architecture audit.
type StructureSignals struct {
	Title             string
	MetaDescription   string
	ViewportMeta      string
	NavRegions        []NavRegion
	Headings          []Heading
	H1Count           int
	Links             []StructureLink
	InternalLinkCount int
	ExternalLinkCount int
	VagueAnchors      []Link
	FooterLinks       []Link
	Breadcrumbs       []string
	Images            []Image
	HeadScripts       []HeadScript
	ResourceHints     []ResourceHint
	FontDisplayRules  []string
	ThirdPartyScripts []string
	Paragraphs        []string
	Sections          []Section
	CTAs              []string
}

type NavRegion struct {
	AriaLabel string
	Links     []Link
}

type StructureLink struct {
	Text       string
	Href       string
	IsExternal bool
}

type HeadScript struct {
	Src   string
	Async bool
	Defer bool
	Type  string
}

type ResourceHint struct {
	Rel  string
	Href string
	As   string
}

type Section struct {
	Tag         string
	AriaLabel   string
	HeadingText string
}

var vagueAnchorPhrases = []string{
	"click here", "read more", "learn more", "here", "more", "link",
}

var fontDisplayPattern = regexp.MustCompile(`font-display\s*:\s*\w+`)

// Structure extracts the structural signal set: navigation regions,
// link classification, performance hints and content grouping.
func Structure(html string) StructureSignals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StructureSignals{}
	}

	var sig StructureSignals
	sig.ViewportMeta = doc.Find(`meta[name="viewport"]`).AttrOr("content", "")

	doc.Find(`nav, [role="navigation"]`).Each(func(_ int, nav *goquery.Selection) {
		region := NavRegion{AriaLabel: nav.AttrOr("aria-label", "")}
		nav.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if text := strings.TrimSpace(a.Text()); text != "" {
				region.Links = append(region.Links, Link{Text: text, Href: a.AttrOr("href", "")})
			}
			return len(region.Links) < 30
		})
		sig.NavRegions = append(sig.NavRegions, region)
	})

	sig.Headings = headings(doc)
	sig.H1Count = doc.Find("h1").Length()

	ogURL := doc.Find(`meta[property="og:url"]`).AttrOr("content", "NOMATCH")
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		href := s.AttrOr("href", "")
		if text == "" && href == "" {
			return true
		}
		sig.Links = append(sig.Links, StructureLink{
			Text:       text,
			Href:       href,
			IsExternal: strings.HasPrefix(href, "http") && !strings.Contains(href, ogURL),
		})
		return len(sig.Links) < 150
	})

	for _, l := range sig.Links {
		// internal = path-relative, fragment, or non-http scheme
		if strings.HasPrefix(l.Href, "/") || strings.HasPrefix(l.Href, "#") || !strings.HasPrefix(l.Href, "http") {
			sig.InternalLinkCount++
		}
		if strings.HasPrefix(l.Href, "http") {
			sig.ExternalLinkCount++
		}
		lower := strings.ToLower(l.Text)
		for _, phrase := range vagueAnchorPhrases {
			if lower == phrase {
				sig.VagueAnchors = append(sig.VagueAnchors, Link{Text: l.Text, Href: l.Href})
				break
			}
		}
	}

	doc.Find(`footer a, [role="contentinfo"] a`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			sig.FooterLinks = append(sig.FooterLinks, Link{Text: text, Href: s.AttrOr("href", "")})
		}
	})

	doc.Find(`[class*="breadcrumb"], [aria-label*="breadcrumb"], [aria-label*="Breadcrumb"], ol[class*="bread"], nav[aria-label="Breadcrumb"]`).
		Each(func(_ int, s *goquery.Selection) {
			sig.Breadcrumbs = append(sig.Breadcrumbs, strings.TrimSpace(s.Text()))
		})

	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		_, hasWidth := s.Attr("width")
		_, hasHeight := s.Attr("height")
		sig.Images = append(sig.Images, Image{
			Src:       s.AttrOr("src", ""),
			Alt:       s.AttrOr("alt", ""),
			HasWidth:  hasWidth,
			HasHeight: hasHeight,
			Loading:   s.AttrOr("loading", ""),
		})
		return len(sig.Images) < 40
	})

	doc.Find("head script").Each(func(_ int, s *goquery.Selection) {
		_, hasAsync := s.Attr("async")
		_, hasDefer := s.Attr("defer")
		sig.HeadScripts = append(sig.HeadScripts, HeadScript{
			Src:   s.AttrOr("src", "inline"),
			Async: hasAsync,
			Defer: hasDefer,
			Type:  s.AttrOr("type", ""),
		})
	})

	doc.Find(`link[rel="preload"], link[rel="preconnect"], link[rel="dns-prefetch"]`).
		Each(func(_ int, s *goquery.Selection) {
			sig.ResourceHints = append(sig.ResourceHints, ResourceHint{
				Rel:  s.AttrOr("rel", ""),
				Href: s.AttrOr("href", ""),
				As:   s.AttrOr("as", ""),
			})
		})

	sig.FontDisplayRules = fontDisplayPattern.FindAllString(html, -1)

	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src := s.AttrOr("src", ""); strings.HasPrefix(src, "http") {
			sig.ThirdPartyScripts = append(sig.ThirdPartyScripts, src)
		}
	})

	doc.Find("script, style, noscript, svg").Remove()
	sig.Title = strings.TrimSpace(doc.Find("title").Text())
	sig.MetaDescription = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	sig.Paragraphs = paragraphs(doc, 40)

	doc.Find(`section, [role="region"], article`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		sig.Sections = append(sig.Sections, Section{
			Tag:         goquery.NodeName(s),
			AriaLabel:   s.AttrOr("aria-label", ""),
			HeadingText: strings.TrimSpace(s.Find("h1, h2, h3").First().Text()),
		})
		return len(sig.Sections) < 20
	})

	doc.Find(`button, [role="button"], a[class*="btn"], a[class*="button"], a[class*="cta"]`).
		Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				sig.CTAs = append(sig.CTAs, text)
			}
		})

	return sig
}
