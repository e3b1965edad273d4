package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shrinkstudio/shrink-tools-api/internal/domain/ai"
	"github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/errs"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/ai/prompt"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/extract"
)

// Fetcher port for retrieving page HTML.
type Fetcher interface {
	Page(ctx context.Context, url string) (string, error)
	Pricing(ctx context.Context, url string) (string, error)
}

// SnapshotStore keeps the raw HTML a report was scored on. Optional.
type SnapshotStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the audit use-cases. Safe for concurrent use.
type Service struct {
	Repo      reports.Repository
	AI        ai.Client
	Fetcher   Fetcher
	Snapshots SnapshotStore
	Clock     Clock
	Logger    *slog.Logger
}

type AnalyzeCommand struct {
	URL  string
	Tool reports.Tool
}

// AnalyzeResult is the full report body plus persistence identifiers.
// ReportID and Slug are nil when the store was unavailable; the report
// itself is still returned.
type AnalyzeResult struct {
	reports.AuditReport
	ReportID *string `json:"reportId"`
	Slug     *string `json:"slug"`
}

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims the input and defaults the scheme to https. The
// hostname doubles as the site name for slug derivation.
func NormalizeURL(raw string) (normalized, siteName string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty url")
	}
	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if parsed.Hostname() == "" {
		return "", "", fmt.Errorf("url has no host")
	}
	return parsed.String(), parsed.Hostname(), nil
}

// Analyze runs the full pipeline for one URL: fetch, extract, score,
// persist. Persistence failures are swallowed so a visitor still gets
// their report even when the store is down.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	normalized, siteName, err := NormalizeURL(cmd.URL)
	if err != nil {
		return AnalyzeResult{}, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "That doesn't look like a URL. Try something like stripe.com",
			Cause:   err,
		}
	}

	html, err := s.Fetcher.Page(ctx, normalized)
	if err != nil {
		return AnalyzeResult{}, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "Couldn't reach that site. Check the URL and try again.",
			Cause:   err,
		}
	}

	content := s.composeContent(ctx, cmd.Tool, normalized, html)

	text, err := s.AI.Generate(ctx, prompt.SystemPrompt(cmd.Tool), prompt.UserPrompt(cmd.Tool, content))
	if err != nil {
		return AnalyzeResult{}, &errs.AppError{Kind: errs.UpstreamModel, Message: "text generation failed", Cause: err}
	}

	body, err := reports.ParseModelOutput(text)
	if err != nil {
		return AnalyzeResult{}, &errs.AppError{Kind: errs.BadModelOutput, Message: "unusable model output", Cause: err}
	}

	result := AnalyzeResult{AuditReport: *body}

	report, err := s.persist(ctx, normalized, siteName, cmd.Tool, html, body)
	if err != nil {
		s.Logger.Error("report save failed, returning unpersisted report",
			"url", normalized, "tool", cmd.Tool, "error", err)
		return result, nil
	}

	id := string(report.ID)
	result.ReportID = &id
	result.Slug = &report.Slug
	return result, nil
}

// composeContent extracts the per-tool signal set and renders the prompt
// content block.
func (s *Service) composeContent(ctx context.Context, tool reports.Tool, pageURL, html string) string {
	switch tool {
	case reports.ToolAccessibility:
		return prompt.ComposeAccessibility(pageURL, extract.Accessibility(html))
	case reports.ToolStructure:
		return prompt.ComposeStructure(pageURL, extract.Structure(html))
	case reports.ToolSEOAEO:
		return prompt.ComposeSEO(pageURL, extract.SEO(html))
	default:
		sig := extract.General(html)
		pricing := s.fetchPricing(ctx, pageURL)
		return prompt.ComposeGeneral(pageURL, sig, pricing)
	}
}

// fetchPricing GETs /pricing on the audited site, best-effort. A missing
// or failing pricing page never fails the audit.
func (s *Service) fetchPricing(ctx context.Context, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	pricingURL := base.ResolveReference(&url.URL{Path: "/pricing"}).String()

	html, err := s.Fetcher.Pricing(ctx, pricingURL)
	if err != nil {
		s.Logger.Debug("pricing page fetch failed", "url", pricingURL, "error", err)
		return ""
	}
	return extract.PricingContent(html)
}

// persist assigns an id and slug and saves the report. A slug conflict
// from a concurrent save is retried once with a recomputed suffix.
func (s *Service) persist(ctx context.Context, pageURL, siteName string, tool reports.Tool, html string, body *reports.AuditReport) (*reports.Report, error) {
	report := &reports.Report{
		ID:           reports.ReportID(uuid.New().String()),
		URL:          pageURL,
		SiteName:     siteName,
		Tool:         tool,
		OverallScore: body.OverallScore,
		Summary:      body.Summary,
		Categories:   body.Categories,
		Strengths:    body.Strengths,
		Improvements: body.Improvements,
		CreatedAt:    s.Clock.Now(),
	}

	base := reports.BaseSlug(siteName, tool)
	for attempt := 0; attempt < 2; attempt++ {
		latest, err := s.Repo.LatestSlugLike(ctx, base)
		if err != nil {
			return nil, err
		}
		report.Slug = reports.NextSlug(base, latest)
		report.SnapshotURL = s.snapshot(ctx, tool, report.Slug, html)

		err = s.Repo.Save(ctx, report)
		if err == nil {
			return report, nil
		}
		if err != reports.ErrSlugTaken || attempt == 1 {
			return nil, err
		}
	}
	return nil, reports.ErrSlugTaken
}

// snapshot uploads the audited HTML, best-effort.
func (s *Service) snapshot(ctx context.Context, tool reports.Tool, slug, html string) string {
	if s.Snapshots == nil {
		return ""
	}
	key := fmt.Sprintf("%s/%s.html", tool, slug)
	snapURL, err := s.Snapshots.UploadBytes(ctx, key, []byte(html), "text/html")
	if err != nil {
		s.Logger.Warn("snapshot upload failed", "key", key, "error", err)
		return ""
	}
	return snapURL
}

// GetBySlug ambil 1 report by slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*reports.Report, error) {
	return s.Repo.GetBySlug(ctx, slug)
}

// GetByID ambil 1 report by id
func (s *Service) GetByID(ctx context.Context, id reports.ReportID) (*reports.Report, error) {
	return s.Repo.GetByID(ctx, id)
}

// Latest ambil N report terakhir
func (s *Service) Latest(ctx context.Context, tool reports.Tool, limit int) ([]*reports.Report, error) {
	return s.Repo.Latest(ctx, tool, limit)
}
