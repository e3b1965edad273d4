package prompt

import (
	"fmt"
	"strings"

	"github.com/shrinkstudio/shrink-tools-api/internal/infra/extract"
)

const (
	noneFound = "None found"
	notSet    = "NOT SET"
)

// ComposeGeneral renders the PLG signal set into the flat text block the
// model scores. Deterministic for identical input; every empty field is
// replaced with an explicit sentinel.
func ComposeGeneral(url string, sig extract.GeneralSignals, pricingContent string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Website URL: %s\n", url)
	fmt.Fprintf(&b, "Title: %s\n", sig.Title)
	fmt.Fprintf(&b, "Meta Description: %s\n\n", sig.MetaDescription)

	b.WriteString("Headings:\n")
	for _, h := range sig.Headings {
		fmt.Fprintf(&b, "%s: %s\n", h.Tag, h.Text)
	}

	b.WriteString("\nKey Content (paragraphs):\n")
	for _, p := range capStrings(sig.Paragraphs, 30) {
		b.WriteString(p + "\n")
	}

	b.WriteString("\nNavigation/Links:\n")
	for _, l := range sig.Links[:min(len(sig.Links), 50)] {
		fmt.Fprintf(&b, "%s -> %s\n", l.Text, l.Href)
	}

	fmt.Fprintf(&b, "\nCTAs/Buttons:\n%s\n", strings.Join(sig.Buttons, ", "))
	fmt.Fprintf(&b, "\nSignup Signals: %s\n", joinOr(sig.SignupSignals, noneFound))
	fmt.Fprintf(&b, "Login Signals: %s\n", joinOr(sig.LoginSignals, noneFound))
	fmt.Fprintf(&b, "Pricing Links: %s\n", joinOr(sig.PricingLinks, noneFound))
	fmt.Fprintf(&b, "Demo Signals: %s\n", joinOr(sig.DemoSignals, noneFound))
	fmt.Fprintf(&b, "Forms Found: %d\n", sig.Forms)

	var alts []string
	for _, img := range sig.Images {
		if img.Alt != "" {
			alts = append(alts, img.Alt)
		}
	}
	fmt.Fprintf(&b, "Images: %s\n", strings.Join(alts, ", "))

	if pricingContent != "" {
		fmt.Fprintf(&b, "\nPricing Page Content:\n%s", pricingContent)
	} else {
		b.WriteString("\nNo dedicated pricing page found.")
	}

	return b.String()
}

// ComposeAccessibility renders the accessibility signal set.
func ComposeAccessibility(url string, sig extract.AccessibilitySignals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Website URL: %s\n", url)
	fmt.Fprintf(&b, "Title: %s\n", sig.Title)
	fmt.Fprintf(&b, "Meta Description: %s\n\n", sig.MetaDescription)
	fmt.Fprintf(&b, "HTML lang attribute: %s\n", orSentinel(sig.HTMLLang, notSet))
	fmt.Fprintf(&b, "Viewport meta: %s\n", orSentinel(sig.ViewportMeta, notSet))

	b.WriteString("\nHeading Hierarchy:\n")
	if len(sig.Headings) == 0 {
		b.WriteString("No headings found\n")
	}
	for _, h := range sig.Headings {
		fmt.Fprintf(&b, "%s: %s\n", h.Tag, h.Text)
	}

	fmt.Fprintf(&b, "\nImages (%d total):\n", len(sig.Images))
	if len(sig.Images) == 0 {
		b.WriteString("No images found\n")
	}
	for _, img := range sig.Images {
		if img.HasAlt {
			fmt.Fprintf(&b, "- alt=%q (src: %s)\n", img.Alt, img.Src)
		} else {
			fmt.Fprintf(&b, "- NO ALT ATTRIBUTE (src: %s)\n", img.Src)
		}
	}

	fmt.Fprintf(&b, "\nLinks (%d total):\n", len(sig.Links))
	for _, l := range sig.Links[:min(len(sig.Links), 50)] {
		fmt.Fprintf(&b, "- %q", l.Text)
		if l.AriaLabel != "" {
			fmt.Fprintf(&b, " [aria-label=%q]", l.AriaLabel)
		}
		fmt.Fprintf(&b, " -> %s\n", l.Href)
	}

	b.WriteString("\nSkip Links: ")
	if len(sig.SkipLinks) == 0 {
		b.WriteString(noneFound + "\n")
	} else {
		var parts []string
		for _, s := range sig.SkipLinks {
			parts = append(parts, fmt.Sprintf("%q -> %s", s.Text, s.Href))
		}
		b.WriteString(strings.Join(parts, ", ") + "\n")
	}

	b.WriteString("\nLandmarks:\n")
	if len(sig.Landmarks) == 0 {
		b.WriteString("No landmarks found\n")
	}
	for _, l := range sig.Landmarks {
		b.WriteString("- <" + l.Tag + ">")
		if l.Role != "" {
			fmt.Fprintf(&b, " role=%q", l.Role)
		}
		if l.AriaLabel != "" {
			fmt.Fprintf(&b, " aria-label=%q", l.AriaLabel)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nARIA Usage (%d elements):\n", len(sig.AriaElements))
	if len(sig.AriaElements) == 0 {
		b.WriteString("No ARIA attributes found\n")
	}
	for _, a := range sig.AriaElements[:min(len(sig.AriaElements), 30)] {
		b.WriteString("- <" + a.Tag + ">")
		if a.Role != "" {
			fmt.Fprintf(&b, " role=%q", a.Role)
		}
		if a.AriaLabel != "" {
			fmt.Fprintf(&b, " aria-label=%q", a.AriaLabel)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nForms (%d total):\n", len(sig.Forms))
	if len(sig.Forms) == 0 {
		b.WriteString("No forms found\n")
	}
	for i, f := range sig.Forms {
		labelled := 0
		var inputs []string
		for _, in := range f.Inputs {
			if in.HasLabel {
				labelled++
			}
			inputs = append(inputs, fmt.Sprintf("%s(id=%q, label=%t, autocomplete=%q)", in.Type, in.ID, in.HasLabel, in.Autocomplete))
		}
		fmt.Fprintf(&b, "Form %d: %d inputs, %d with labels, fieldset: %t, legend: %t\n  Inputs: %s\n",
			i+1, len(f.Inputs), labelled, f.HasFieldset, f.HasLegend, strings.Join(inputs, ", "))
	}

	fmt.Fprintf(&b, "\nButtons (%d total):\n", len(sig.Buttons))
	if len(sig.Buttons) == 0 {
		b.WriteString("No buttons found\n")
	}
	for _, btn := range sig.Buttons {
		fmt.Fprintf(&b, "- %q", btn.Text)
		if btn.AriaLabel != "" {
			fmt.Fprintf(&b, " [aria-label=%q]", btn.AriaLabel)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTabindex elements: ")
	if len(sig.Tabindexes) == 0 {
		b.WriteString(noneFound)
	} else {
		var parts []string
		for _, t := range sig.Tabindexes {
			parts = append(parts, fmt.Sprintf("<%s tabindex=%q>", t.Tag, t.Tabindex))
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	return b.String()
}

// ComposeSEO renders the SEO/AEO signal set under fixed section headers.
func ComposeSEO(url string, sig extract.SEOSignals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Website URL: %s\n\n", url)

	b.WriteString("=== META & ON-PAGE ===\n")
	fmt.Fprintf(&b, "Title: %q (%d chars)\n", sig.Title, len(sig.Title))
	fmt.Fprintf(&b, "Meta Description: %q (%d chars)\n", sig.MetaDescription, len(sig.MetaDescription))
	fmt.Fprintf(&b, "Canonical: %s\n", orSentinel(sig.Canonical, notSet))
	fmt.Fprintf(&b, "Robots Meta: %s\n", orSentinel(sig.RobotsMeta, "NOT SET (defaults to index, follow)"))
	fmt.Fprintf(&b, "Viewport: %s\n", orSentinel(sig.Viewport, notSet))
	fmt.Fprintf(&b, "Favicon: %s\n", orSentinel(sig.Favicon, "NOT FOUND"))
	fmt.Fprintf(&b, "Apple Touch Icon: %s\n", orSentinel(sig.AppleTouchIcon, "NOT FOUND"))

	fmt.Fprintf(&b, "\nOpen Graph Tags (%d):\n", len(sig.OGTags))
	writeMetaTags(&b, sig.OGTags)
	fmt.Fprintf(&b, "\nTwitter Card Tags (%d):\n", len(sig.TwitterTags))
	writeMetaTags(&b, sig.TwitterTags)

	b.WriteString("\n=== HEADING & CONTENT ===\n")
	fmt.Fprintf(&b, "H1 Count: %d\n", sig.H1Count)
	fmt.Fprintf(&b, "H1 Text: %q\n", orSentinel(sig.H1Text, "NO H1 FOUND"))
	b.WriteString("\nHeading Hierarchy:\n")
	if len(sig.Headings) == 0 {
		b.WriteString("No headings found\n")
	}
	for _, h := range sig.Headings {
		fmt.Fprintf(&b, "%s: %s\n", h.Tag, h.Text)
	}
	fmt.Fprintf(&b, "\nContent Paragraphs (%d total):\n", len(sig.Paragraphs))
	for _, p := range capStrings(sig.Paragraphs, 25) {
		b.WriteString(p + "\n")
	}

	b.WriteString("\n=== SCHEMA & STRUCTURED DATA ===\n")
	fmt.Fprintf(&b, "JSON-LD Scripts: %d\n", sig.JSONLDCount)
	fmt.Fprintf(&b, "Schema Types Found: %s\n", joinOr(sig.SchemaTypes, "NONE"))
	for _, d := range sig.SchemaDetails {
		fmt.Fprintf(&b, "Schema: %s\n", d)
	}

	b.WriteString("\n=== AI VISIBILITY SIGNALS ===\n")
	fmt.Fprintf(&b, "FAQ Sections Detected: %d\n", sig.FAQSections)
	fmt.Fprintf(&b, "Question Patterns in Content: %s\n", strings.Join(orSlice(sig.QuestionPatterns, noneFound), " | "))

	b.WriteString("\n=== TECHNICAL SEO ===\n")
	fmt.Fprintf(&b, "Links (%d total):\n", len(sig.Links))
	for _, l := range sig.Links[:min(len(sig.Links), 40)] {
		fmt.Fprintf(&b, "- %q -> %s\n", l.Text, l.Href)
	}
	fmt.Fprintf(&b, "\nBroken Link Patterns (href=\"#\" or empty): %d\n", len(sig.BrokenLinks))
	fmt.Fprintf(&b, "\nImages (%d total):\n", len(sig.Images))
	if len(sig.Images) == 0 {
		b.WriteString("No images found\n")
	}
	for _, img := range sig.Images {
		if img.HasAlt {
			fmt.Fprintf(&b, "- alt=%q (%s)\n", img.Alt, truncateStr(img.Src, 60))
		} else {
			fmt.Fprintf(&b, "- NO ALT (%s)\n", truncateStr(img.Src, 60))
		}
	}
	b.WriteString("\nHreflang Tags: ")
	if len(sig.HreflangTags) == 0 {
		b.WriteString("None\n")
	} else {
		var parts []string
		for _, t := range sig.HreflangTags {
			parts = append(parts, fmt.Sprintf("%s: %s", t.Hreflang, t.Href))
		}
		b.WriteString(strings.Join(parts, ", ") + "\n")
	}
	fmt.Fprintf(&b, "Sitemap Link: %s\n", orSentinel(sig.SitemapLink, "Not referenced"))

	b.WriteString("\n=== E-E-A-T & TRUST ===\n")
	fmt.Fprintf(&b, "Privacy Policy Link: %s\n", yesNo(sig.PrivacyLink))
	fmt.Fprintf(&b, "Terms Link: %s\n", yesNo(sig.TermsLink))
	fmt.Fprintf(&b, "Contact Page Link: %s\n", yesNo(sig.ContactLink))
	fmt.Fprintf(&b, "Copyright Year: %s\n", orSentinel(sig.CopyrightYear, "Not found"))

	b.WriteString("\n=== LOCAL & ENTITY SIGNALS ===\n")
	fmt.Fprintf(&b, "Email Links: %s\n", joinHrefs(sig.EmailLinks, "None"))
	fmt.Fprintf(&b, "Phone Links: %s\n", joinHrefs(sig.PhoneLinks, "None"))
	fmt.Fprintf(&b, "Social Media Links (%d):\n", len(sig.SocialLinks))
	if len(sig.SocialLinks) == 0 {
		b.WriteString(noneFound)
	}
	for _, l := range sig.SocialLinks {
		fmt.Fprintf(&b, "- %q -> %s\n", l.Text, l.Href)
	}

	return b.String()
}

// ComposeStructure renders the structure signal set.
func ComposeStructure(url string, sig extract.StructureSignals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Website URL: %s\n", url)
	fmt.Fprintf(&b, "Title: %s\n", sig.Title)
	fmt.Fprintf(&b, "Meta Description: %s\n", sig.MetaDescription)
	fmt.Fprintf(&b, "Viewport meta: %s\n", orSentinel(sig.ViewportMeta, notSet))

	fmt.Fprintf(&b, "\nNavigation Elements (%d nav regions):\n", len(sig.NavRegions))
	if len(sig.NavRegions) == 0 {
		b.WriteString("No navigation elements found\n")
	}
	for i, nav := range sig.NavRegions {
		fmt.Fprintf(&b, "Nav %d", i+1)
		if nav.AriaLabel != "" {
			fmt.Fprintf(&b, " (%s)", nav.AriaLabel)
		}
		fmt.Fprintf(&b, ": %d links\n", len(nav.Links))
		for _, l := range nav.Links {
			fmt.Fprintf(&b, "  %q -> %s\n", l.Text, l.Href)
		}
	}

	fmt.Fprintf(&b, "\nHeading Hierarchy (h1 count: %d):\n", sig.H1Count)
	if len(sig.Headings) == 0 {
		b.WriteString("No headings found\n")
	}
	for _, h := range sig.Headings {
		fmt.Fprintf(&b, "%s: %s\n", h.Tag, h.Text)
	}

	b.WriteString("\nLinks Summary:\n")
	fmt.Fprintf(&b, "- Total: %d\n", len(sig.Links))
	fmt.Fprintf(&b, "- Internal: %d\n", sig.InternalLinkCount)
	fmt.Fprintf(&b, "- External: %d\n", sig.ExternalLinkCount)
	fmt.Fprintf(&b, "- Vague anchor text (\"click here\", \"read more\", etc.): %d\n", len(sig.VagueAnchors))

	b.WriteString("\nSample Links:\n")
	for _, l := range sig.Links[:min(len(sig.Links), 50)] {
		fmt.Fprintf(&b, "- %q -> %s", l.Text, l.Href)
		if l.IsExternal {
			b.WriteString(" (external)")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nFooter Links (%d):\n", len(sig.FooterLinks))
	if len(sig.FooterLinks) == 0 {
		b.WriteString("No footer links found\n")
	}
	for _, l := range sig.FooterLinks {
		fmt.Fprintf(&b, "- %q -> %s\n", l.Text, l.Href)
	}

	fmt.Fprintf(&b, "\nBreadcrumbs: %s\n", strings.Join(orSlice(sig.Breadcrumbs, noneFound), " | "))

	fmt.Fprintf(&b, "\nImages (%d total):\n", len(sig.Images))
	if len(sig.Images) == 0 {
		b.WriteString("No images found\n")
	}
	for _, img := range sig.Images {
		size := "MISSING"
		if img.HasWidth && img.HasHeight {
			size = "yes"
		}
		fmt.Fprintf(&b, "- %s | width/height: %s | loading: %s\n",
			truncateStr(img.Src, 60), size, orSentinel(img.Loading, "default"))
	}

	fmt.Fprintf(&b, "\nHead Scripts (%d):\n", len(sig.HeadScripts))
	if len(sig.HeadScripts) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range sig.HeadScripts {
		fmt.Fprintf(&b, "- %s | async: %t | defer: %t\n", truncateStr(s.Src, 80), s.Async, s.Defer)
	}

	b.WriteString("\nResource Hints: ")
	if len(sig.ResourceHints) == 0 {
		b.WriteString(noneFound + "\n")
	} else {
		var parts []string
		for _, r := range sig.ResourceHints {
			parts = append(parts, fmt.Sprintf("%s(%s)", r.Rel, truncateStr(r.Href, 50)))
		}
		b.WriteString(strings.Join(parts, ", ") + "\n")
	}

	fmt.Fprintf(&b, "\nFont Display Rules: %s\n", joinOr(sig.FontDisplayRules, noneFound))

	fmt.Fprintf(&b, "\nThird-Party Scripts (%d):\n", len(sig.ThirdPartyScripts))
	if len(sig.ThirdPartyScripts) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range sig.ThirdPartyScripts {
		fmt.Fprintf(&b, "- %s\n", truncateStr(s, 80))
	}

	fmt.Fprintf(&b, "\nContent Sections (%d):\n", len(sig.Sections))
	if len(sig.Sections) == 0 {
		b.WriteString("No semantic sections found\n")
	}
	for _, s := range sig.Sections {
		b.WriteString("- <" + s.Tag + ">")
		if s.AriaLabel != "" {
			fmt.Fprintf(&b, " %q", s.AriaLabel)
		}
		if s.HeadingText != "" {
			fmt.Fprintf(&b, " heading: %q", s.HeadingText)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCTAs/Buttons: %s\n", joinOr(sig.CTAs, noneFound))

	fmt.Fprintf(&b, "\nContent Paragraphs (%d total, first 20):\n", len(sig.Paragraphs))
	for _, p := range capStrings(sig.Paragraphs, 20) {
		b.WriteString(p + "\n")
	}

	return b.String()
}

func writeMetaTags(b *strings.Builder, tags []extract.MetaTag) {
	if len(tags) == 0 {
		b.WriteString(noneFound + "\n")
		return
	}
	for _, t := range tags {
		fmt.Fprintf(b, "- %s: %s\n", t.Key, t.Content)
	}
}

func joinOr(items []string, sentinel string) string {
	if len(items) == 0 {
		return sentinel
	}
	return strings.Join(items, ", ")
}

func orSlice(items []string, sentinel string) []string {
	if len(items) == 0 {
		return []string{sentinel}
	}
	return items
}

func orSentinel(s, sentinel string) string {
	if s == "" {
		return sentinel
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func joinHrefs(links []extract.Link, sentinel string) string {
	if len(links) == 0 {
		return sentinel
	}
	var parts []string
	for _, l := range links {
		parts = append(parts, l.Href)
	}
	return strings.Join(parts, ", ")
}

func capStrings(items []string, n int) []string {
	return items[:min(len(items), n)]
}

func truncateStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
