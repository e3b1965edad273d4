package prompt

import (
	"strings"
	"testing"

	"github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/extract"
)

func mustTool(t *testing.T, s string) reports.Tool {
	t.Helper()
	tool, ok := reports.ParseTool(s)
	if !ok {
		t.Fatalf("unknown tool %q", s)
	}
	return tool
}

func TestComposeGeneralWithPricing(t *testing.T) {
	sig := extract.GeneralSignals{
		Title:           "Acme",
		MetaDescription: "Ship faster.",
		Headings:        []extract.Heading{{Tag: "h1", Text: "Acme"}},
		Paragraphs:      []string{"Acme automates releases."},
		Links:           []extract.Link{{Text: "Pricing", Href: "/pricing"}},
		Buttons:         []string{"Start free trial"},
		SignupSignals:   []string{"Start free trial"},
		Forms:           1,
	}

	got := ComposeGeneral("https://acme.dev", sig, "## Plans\nFree and Pro.")

	for _, want := range []string{
		"Website URL: https://acme.dev",
		"Title: Acme",
		"h1: Acme",
		"Signup Signals: Start free trial",
		"Login Signals: None found",
		"Demo Signals: None found",
		"Forms Found: 1",
		"Pricing Page Content:\n## Plans",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in composed content", want)
		}
	}
	if strings.Contains(got, "No dedicated pricing page found.") {
		t.Error("pricing sentinel present despite pricing content")
	}
}

func TestComposeGeneralWithoutPricing(t *testing.T) {
	got := ComposeGeneral("https://acme.dev", extract.GeneralSignals{}, "")
	if !strings.Contains(got, "No dedicated pricing page found.") {
		t.Error("missing pricing sentinel")
	}
}

func TestComposeAccessibilitySentinels(t *testing.T) {
	sig := extract.AccessibilitySignals{
		Images: []extract.Image{{Src: "/x.png", HasAlt: false}},
	}
	got := ComposeAccessibility("https://acme.dev", sig)

	for _, want := range []string{
		"HTML lang attribute: NOT SET",
		"Viewport meta: NOT SET",
		"NO ALT ATTRIBUTE (src: /x.png)",
		"No headings found",
		"Skip Links: None found",
		"No forms found",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in composed content", want)
		}
	}
}

func TestComposeSEOSections(t *testing.T) {
	sig := extract.SEOSignals{
		Title:       "Acme",
		H1Count:     0,
		SchemaTypes: nil,
	}
	got := ComposeSEO("https://acme.dev", sig)

	for _, want := range []string{
		"=== META & ON-PAGE ===",
		"=== SCHEMA & STRUCTURED DATA ===",
		"=== AI VISIBILITY SIGNALS ===",
		"=== TECHNICAL SEO ===",
		"=== E-E-A-T & TRUST ===",
		"=== LOCAL & ENTITY SIGNALS ===",
		`H1 Text: "NO H1 FOUND"`,
		"Schema Types Found: NONE",
		"Robots Meta: NOT SET (defaults to index, follow)",
		"Copyright Year: Not found",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in composed content", want)
		}
	}
}

func TestComposeStructure(t *testing.T) {
	sig := extract.StructureSignals{
		NavRegions: []extract.NavRegion{{AriaLabel: "Main", Links: []extract.Link{{Text: "Docs", Href: "/docs"}}}},
		H1Count:    1,
		Links:      []extract.StructureLink{{Text: "GitHub", Href: "https://github.com/acme", IsExternal: true}},
	}
	got := ComposeStructure("https://acme.dev", sig)

	for _, want := range []string{
		"Nav 1 (Main): 1 links",
		"Heading Hierarchy (h1 count: 1):",
		"(external)",
		"Breadcrumbs: None found",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in composed content", want)
		}
	}
}

func TestUserPromptLeadLines(t *testing.T) {
	tests := []struct {
		tool string
		want string
	}{
		{"plg", "Analyze this website for PLG readiness:"},
		{"accessibility", "Analyze this website for accessibility:"},
		{"structure", "Analyze this website's structure and information architecture:"},
		{"seo-aeo", "Analyze this website for SEO and AI Engine Optimisation:"},
	}
	for _, tt := range tests {
		got := UserPrompt(mustTool(t, tt.tool), "content")
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("UserPrompt(%s) lead = %q, want prefix %q", tt.tool, got, tt.want)
		}
	}
}
