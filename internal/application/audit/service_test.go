package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/errs"
)

type stubFetcher struct {
	page       string
	pageErr    error
	pricing    string
	pricingErr error
	pricingURL string
}

func (f *stubFetcher) Page(ctx context.Context, url string) (string, error) {
	return f.page, f.pageErr
}

func (f *stubFetcher) Pricing(ctx context.Context, url string) (string, error) {
	f.pricingURL = url
	if f.pricing == "" && f.pricingErr == nil {
		return "", errors.New("no pricing")
	}
	return f.pricing, f.pricingErr
}

type stubAI struct {
	text       string
	err        error
	userPrompt string
}

func (a *stubAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	a.userPrompt = userPrompt
	return a.text, a.err
}

type memRepo struct {
	saved       []*reports.Report
	latestSlug  string
	saveErrs    []error
	latestErr   error
	saveAttempt int
}

func (m *memRepo) Save(ctx context.Context, r *reports.Report) error {
	if m.saveAttempt < len(m.saveErrs) {
		err := m.saveErrs[m.saveAttempt]
		m.saveAttempt++
		if err != nil {
			return err
		}
	}
	copied := *r
	m.saved = append(m.saved, &copied)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id reports.ReportID) (*reports.Report, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, reports.ErrNotFound
}

func (m *memRepo) GetBySlug(ctx context.Context, slug string) (*reports.Report, error) {
	for _, r := range m.saved {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, reports.ErrNotFound
}

func (m *memRepo) LatestSlugLike(ctx context.Context, prefix string) (string, error) {
	return m.latestSlug, m.latestErr
}

func (m *memRepo) Latest(ctx context.Context, tool reports.Tool, limit int) ([]*reports.Report, error) {
	return m.saved, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func modelJSON() string {
	categories := make([]string, 7)
	for i := range categories {
		categories[i] = fmt.Sprintf(`{"name":"Category %d","score":60,"description":"ok"}`, i+1)
	}
	return fmt.Sprintf(`{
		"overallScore": 61,
		"summary": "Decent.",
		"categories": [%s],
		"strengths": [{"title":"s","impact":"HIGH","description":"d"}],
		"improvements": [{"title":"i","priority":"LOW","description":"d","recommendation":"r"}]
	}`, strings.Join(categories, ","))
}

func newService(repo *memRepo, fetcher Fetcher, aiClient *stubAI) *Service {
	return &Service{
		Repo:    repo,
		AI:      aiClient,
		Fetcher: fetcher,
		Clock:   fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	repo := &memRepo{}
	svc := newService(repo, &stubFetcher{page: "<html><body><h1>Acme</h1></body></html>"}, &stubAI{text: modelJSON()})

	result, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolPLG})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.OverallScore != 61 {
		t.Errorf("OverallScore = %d", result.OverallScore)
	}
	if result.ReportID == nil || result.Slug == nil {
		t.Fatal("expected persisted identifiers")
	}
	if *result.Slug != "acme-dev-plg-assessment" {
		t.Errorf("Slug = %q", *result.Slug)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.URL != "https://acme.dev" {
		t.Errorf("saved URL = %q, want scheme defaulted", saved.URL)
	}
	if saved.SiteName != "acme.dev" {
		t.Errorf("saved SiteName = %q", saved.SiteName)
	}
	if !saved.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", saved.CreatedAt)
	}
}

func TestAnalyzeFetchesPricingPage(t *testing.T) {
	fetcher := &stubFetcher{
		page:    "<html><body><h1>Acme</h1><a href=\"/about\">About</a></body></html>",
		pricing: "<html><body><main><p>Pro plan at $20/mo</p></main></body></html>",
	}
	aiClient := &stubAI{text: modelJSON()}
	svc := newService(&memRepo{}, fetcher, aiClient)

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolPLG})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// The pricing page is requested at /pricing on the audited site even
	// when the homepage never links to it.
	if fetcher.pricingURL != "https://acme.dev/pricing" {
		t.Errorf("pricing URL = %q, want https://acme.dev/pricing", fetcher.pricingURL)
	}
	if !strings.Contains(aiClient.userPrompt, "Pro plan at $20/mo") {
		t.Error("pricing content missing from prompt")
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	svc := newService(&memRepo{}, &stubFetcher{}, &stubAI{})

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "   ", Tool: reports.ToolPLG})
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.InvalidInput {
		t.Fatalf("error = %v, want InvalidInput", err)
	}
	if appErr.Message != "That doesn't look like a URL. Try something like stripe.com" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestAnalyzeUnreachable(t *testing.T) {
	svc := newService(&memRepo{}, &stubFetcher{pageErr: errors.New("dial tcp: timeout")}, &stubAI{})

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolPLG})
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.Unreachable {
		t.Fatalf("error = %v, want Unreachable", err)
	}
	if appErr.Message != "Couldn't reach that site. Check the URL and try again." {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestAnalyzeBadModelOutput(t *testing.T) {
	svc := newService(&memRepo{}, &stubFetcher{page: "<html></html>"}, &stubAI{text: "I cannot audit this site."})

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolSEOAEO})
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.BadModelOutput {
		t.Fatalf("error = %v, want BadModelOutput", err)
	}
}

func TestAnalyzeModelFailure(t *testing.T) {
	svc := newService(&memRepo{}, &stubFetcher{page: "<html></html>"}, &stubAI{err: errors.New("upstream 500")})

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolStructure})
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.UpstreamModel {
		t.Fatalf("error = %v, want UpstreamModel", err)
	}
}

func TestAnalyzeSurvivesStoreFailure(t *testing.T) {
	repo := &memRepo{latestErr: errors.New("connection refused")}
	svc := newService(repo, &stubFetcher{page: "<html></html>"}, &stubAI{text: modelJSON()})

	result, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolPLG})
	if err != nil {
		t.Fatalf("Analyze() error = %v, want swallowed store failure", err)
	}
	if result.ReportID != nil || result.Slug != nil {
		t.Error("expected nil identifiers when the store is down")
	}
	if result.OverallScore != 61 {
		t.Errorf("report body missing: OverallScore = %d", result.OverallScore)
	}
}

func TestAnalyzeRetriesSlugConflict(t *testing.T) {
	repo := &memRepo{saveErrs: []error{reports.ErrSlugTaken, nil}}
	svc := newService(repo, &stubFetcher{page: "<html></html>"}, &stubAI{text: modelJSON()})

	result, err := svc.Analyze(context.Background(), AnalyzeCommand{URL: "acme.dev", Tool: reports.ToolPLG})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Slug == nil {
		t.Fatal("expected a slug after retry")
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(repo.saved))
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantURL  string
		wantSite string
		wantErr  bool
	}{
		{"bare domain", "stripe.com", "https://stripe.com", "stripe.com", false},
		{"trims whitespace", "  stripe.com  ", "https://stripe.com", "stripe.com", false},
		{"keeps http", "http://stripe.com/pricing", "http://stripe.com/pricing", "stripe.com", false},
		{"keeps https path", "https://app.stripe.com/x?y=1", "https://app.stripe.com/x?y=1", "app.stripe.com", false},
		{"empty", "", "", "", true},
		{"whitespace only", "   ", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotSite, err := NormalizeURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			}
			if gotURL != tt.wantURL || gotSite != tt.wantSite {
				t.Errorf("NormalizeURL(%q) = (%q, %q), want (%q, %q)", tt.in, gotURL, gotSite, tt.wantURL, tt.wantSite)
			}
		})
	}
}
