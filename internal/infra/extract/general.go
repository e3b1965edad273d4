package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GeneralSignals feeds the PLG readiness audit.
type GeneralSignals struct {
	Title           string
	MetaDescription string
	Headings        []Heading
	Paragraphs      []string
	Links           []Link
	Buttons         []string
	Images          []Image
	Forms           int
	SignupSignals   []string
	LoginSignals    []string
	PricingLinks    []string
	DemoSignals     []string
}

var signupVocab = []string{
	"sign up", "signup", "get started", "free trial", "start free",
	"try free", "create account", "register",
}

var loginVocab = []string{"log in", "login", "sign in", "signin"}

var demoVocab = []string{"demo", "book a demo", "request demo", "watch demo"}

// General extracts the PLG signal set: page content, CTA-like elements and
// signup/login/pricing/demo calls-to-action matched against a fixed
// vocabulary, case-insensitive.
func General(html string) GeneralSignals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return GeneralSignals{}
	}
	doc.Find("script, style, noscript, svg").Remove()

	var sig GeneralSignals
	sig.Title = strings.TrimSpace(doc.Find("title").Text())
	sig.MetaDescription = doc.Find(`meta[name="description"]`).AttrOr("content", "")
	sig.Headings = headings(doc)
	sig.Paragraphs = paragraphs(doc, 50)
	sig.Forms = doc.Find("form").Length()

	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		sig.Links = append(sig.Links, Link{Text: text, Href: s.AttrOr("href", "")})
		return len(sig.Links) < 100
	})

	doc.Find(`button, [role="button"], a[class*="btn"], a[class*="button"], a[class*="cta"]`).
		Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				sig.Buttons = append(sig.Buttons, text)
			}
		})

	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		alt, hasAlt := s.Attr("alt")
		sig.Images = append(sig.Images, Image{
			Src:    s.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: hasAlt,
		})
		return len(sig.Images) < 30
	})

	doc.Find("a, button").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		if containsAny(lower, signupVocab) {
			sig.SignupSignals = append(sig.SignupSignals, text)
		}
		if containsAny(lower, loginVocab) {
			sig.LoginSignals = append(sig.LoginSignals, text)
		}
		if containsAny(lower, demoVocab) {
			sig.DemoSignals = append(sig.DemoSignals, text)
		}
	})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		text := strings.TrimSpace(s.Text())
		if strings.Contains(href, "pricing") || strings.Contains(strings.ToLower(text), "pricing") {
			sig.PricingLinks = append(sig.PricingLinks, text)
		}
	})

	return sig
}

func containsAny(s string, vocab []string) bool {
	for _, v := range vocab {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}

// headings collects non-empty hN elements in document order.
func headings(doc *goquery.Document) []Heading {
	var out []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			out = append(out, Heading{Tag: goquery.NodeName(s), Text: text})
		}
	})
	return out
}

func paragraphs(doc *goquery.Document, limit int) []string {
	var out []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
		return len(out) < limit
	})
	return out
}
