package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AccessibilitySignals feeds the WCAG-oriented audit.
type AccessibilitySignals struct {
	Title           string
	MetaDescription string
	HTMLLang        string
	ViewportMeta    string
	Headings        []Heading
	Images          []Image
	Links           []AriaLink
	Forms           []FormInfo
	AriaElements    []AriaElement
	Landmarks       []AriaElement
	SkipLinks       []Link
	Tabindexes      []TabindexElement
	Buttons         []ButtonInfo
}

// AriaLink is an anchor with its accessible name sources.
type AriaLink struct {
	Text      string
	Href      string
	AriaLabel string
}

// InputInfo describes a single form control and its label association:
// an input has a label when a label[for] matches its id.
type InputInfo struct {
	Type         string
	ID           string
	Name         string
	AriaLabel    string
	Autocomplete string
	HasLabel     bool
}

type FormInfo struct {
	Inputs      []InputInfo
	HasFieldset bool
	HasLegend   bool
}

type AriaElement struct {
	Tag       string
	Role      string
	AriaLabel string
}

type TabindexElement struct {
	Tag      string
	Tabindex string
	Text     string
}

type ButtonInfo struct {
	Text      string
	AriaLabel string
	Type      string
}

// Accessibility extracts the accessibility signal set. Structure is
// captured before scripts/styles are stripped for text extraction.
func Accessibility(html string) AccessibilitySignals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return AccessibilitySignals{}
	}

	var sig AccessibilitySignals
	sig.HTMLLang = doc.Find("html").AttrOr("lang", "")
	sig.ViewportMeta = doc.Find(`meta[name="viewport"]`).AttrOr("content", "")
	sig.Headings = headings(doc)

	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		alt, hasAlt := s.Attr("alt")
		sig.Images = append(sig.Images, Image{
			Src:    s.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: hasAlt,
		})
		return len(sig.Images) < 30
	})

	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		l := AriaLink{
			Text:      strings.TrimSpace(s.Text()),
			Href:      s.AttrOr("href", ""),
			AriaLabel: s.AttrOr("aria-label", ""),
		}
		if l.Text == "" && l.AriaLabel == "" {
			return true
		}
		sig.Links = append(sig.Links, l)
		return len(sig.Links) < 80
	})

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		info := FormInfo{
			HasFieldset: form.Find("fieldset").Length() > 0,
			HasLegend:   form.Find("legend").Length() > 0,
		}
		form.Find("input, select, textarea").Each(func(_ int, input *goquery.Selection) {
			id := input.AttrOr("id", "")
			hasLabel := false
			if id != "" {
				hasLabel = doc.Find(fmt.Sprintf(`label[for="%s"]`, id)).Length() > 0
			}
			typ := input.AttrOr("type", "")
			if typ == "" {
				typ = goquery.NodeName(input)
			}
			info.Inputs = append(info.Inputs, InputInfo{
				Type:         typ,
				ID:           id,
				Name:         input.AttrOr("name", ""),
				AriaLabel:    input.AttrOr("aria-label", ""),
				Autocomplete: input.AttrOr("autocomplete", ""),
				HasLabel:     hasLabel,
			})
		})
		sig.Forms = append(sig.Forms, info)
	})

	doc.Find("[role], [aria-label], [aria-labelledby], [aria-describedby]").
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			sig.AriaElements = append(sig.AriaElements, AriaElement{
				Tag:       goquery.NodeName(s),
				Role:      s.AttrOr("role", ""),
				AriaLabel: s.AttrOr("aria-label", ""),
			})
			return len(sig.AriaElements) < 50
		})

	doc.Find(`header, nav, main, footer, aside, [role="banner"], [role="navigation"], [role="main"], [role="contentinfo"], [role="complementary"]`).
		Each(func(_ int, s *goquery.Selection) {
			sig.Landmarks = append(sig.Landmarks, AriaElement{
				Tag:       goquery.NodeName(s),
				Role:      s.AttrOr("role", ""),
				AriaLabel: s.AttrOr("aria-label", ""),
			})
		})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if strings.HasPrefix(href, "#main") ||
			strings.HasPrefix(href, "#content") ||
			strings.HasPrefix(href, "#skip") ||
			strings.Contains(strings.ToLower(s.Text()), "skip") {
			sig.SkipLinks = append(sig.SkipLinks, Link{
				Text: strings.TrimSpace(s.Text()),
				Href: href,
			})
		}
	})

	doc.Find("[tabindex]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		sig.Tabindexes = append(sig.Tabindexes, TabindexElement{
			Tag:      goquery.NodeName(s),
			Tabindex: s.AttrOr("tabindex", ""),
			Text:     truncate(strings.TrimSpace(s.Text()), 50),
		})
		return len(sig.Tabindexes) < 20
	})

	doc.Find(`button, [role="button"], input[type="submit"], input[type="button"]`).
		Each(func(_ int, s *goquery.Selection) {
			b := ButtonInfo{
				Text:      strings.TrimSpace(s.Text()),
				AriaLabel: s.AttrOr("aria-label", ""),
				Type:      s.AttrOr("type", ""),
			}
			if b.Text == "" {
				b.Text = s.AttrOr("value", "")
			}
			if b.Text != "" || b.AriaLabel != "" {
				sig.Buttons = append(sig.Buttons, b)
			}
		})

	doc.Find("script, style, noscript, svg").Remove()
	sig.Title = strings.TrimSpace(doc.Find("title").Text())
	sig.MetaDescription = doc.Find(`meta[name="description"]`).AttrOr("content", "")

	return sig
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
