package extract

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

const maxPricingContent = 3000

// PricingContent renders the main content region of a pricing page to
// markdown, capped so it cannot blow up the prompt. Returns "" when the
// page yields nothing usable.
func PricingContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, svg").Remove()

	region := doc.Find(`main, [role="main"], .pricing, #pricing, body`).First()
	regionHTML, err := region.Html()
	if err != nil || strings.TrimSpace(regionHTML) == "" {
		return ""
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(regionHTML)
	if err != nil {
		// fall back to collapsed plain text
		markdown = strings.Join(strings.Fields(region.Text()), " ")
	}
	markdown = strings.TrimSpace(markdown)
	return truncate(markdown, maxPricingContent)
}
