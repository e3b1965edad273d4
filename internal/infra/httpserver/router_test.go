package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appaudit "github.com/shrinkstudio/shrink-tools-api/internal/application/audit"
	appleads "github.com/shrinkstudio/shrink-tools-api/internal/application/leadcapture"
	domleads "github.com/shrinkstudio/shrink-tools-api/internal/domain/leads"
	domain "github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/middleware"
)

type stubFetcher struct {
	page    string
	pageErr error
}

func (f *stubFetcher) Page(ctx context.Context, url string) (string, error) {
	return f.page, f.pageErr
}

func (f *stubFetcher) Pricing(ctx context.Context, url string) (string, error) {
	return "", errors.New("no pricing")
}

type stubAI struct {
	text string
	err  error
}

func (a *stubAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return a.text, a.err
}

type memRepo struct {
	saved   []*domain.Report
	saveErr error
}

func (m *memRepo) Save(ctx context.Context, r *domain.Report) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *r
	m.saved = append(m.saved, &copied)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) GetBySlug(ctx context.Context, slug string) (*domain.Report, error) {
	for _, r := range m.saved {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) LatestSlugLike(ctx context.Context, prefix string) (string, error) {
	return "", nil
}

func (m *memRepo) Latest(ctx context.Context, tool domain.Tool, limit int) ([]*domain.Report, error) {
	return m.saved, nil
}

type stubTracker struct {
	taskID string
	err    error
}

func (s *stubTracker) CreateTask(ctx context.Context, t domleads.Task) (string, error) {
	return s.taskID, s.err
}

func (s *stubTracker) Enabled() bool { return true }

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

func newTestServer(t *testing.T, repo *memRepo, fetcher appaudit.Fetcher, aiClient *stubAI) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditSvc := &appaudit.Service{
		Repo:    repo,
		AI:      aiClient,
		Fetcher: fetcher,
		Clock:   appaudit.SystemClock{},
		Logger:  logger,
	}
	leadsSvc := &appleads.Service{
		Repo:    repo,
		Tasks:   &stubTracker{taskID: "task_1"},
		BaseURL: "https://tools.shrink.studio",
		Logger:  logger,
	}
	srv := httptest.NewServer(NewRouter(auditSvc, leadsSvc, logger, map[string]middleware.HealthChecker{}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestAnalyzeEndpoint(t *testing.T) {
	repo := &memRepo{}
	srv := newTestServer(t, repo, &stubFetcher{page: "<html><h1>Acme</h1></html>"}, &stubAI{text: modelJSON()})

	resp, body := postJSON(t, srv.URL+"/api/analyze", `{"url":"acme.dev"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["overallScore"].(float64) != 61 {
		t.Errorf("overallScore = %v", body["overallScore"])
	}
	if body["slug"] != "acme-dev-plg-assessment" {
		t.Errorf("slug = %v", body["slug"])
	}
	if body["reportId"] == nil {
		t.Error("reportId missing")
	}
	if len(body["categories"].([]interface{})) != 7 {
		t.Errorf("categories = %v", body["categories"])
	}
}

func TestAnalyzeToolRoutes(t *testing.T) {
	for _, route := range []string{
		"/api/analyze-accessibility",
		"/api/analyze-structure",
		"/api/analyze-seo-aeo",
	} {
		t.Run(route, func(t *testing.T) {
			srv := newTestServer(t, &memRepo{}, &stubFetcher{page: "<html></html>"}, &stubAI{text: modelJSON()})
			resp, _ := postJSON(t, srv.URL+route, `{"url":"acme.dev"}`)
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
		})
	}
}

func TestAnalyzeBadURL(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{}, &stubAI{})

	resp, body := postJSON(t, srv.URL+"/api/analyze", `{"url":"   "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "That doesn't look like a URL. Try something like stripe.com" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAnalyzeUnreachable(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{pageErr: errors.New("timeout")}, &stubAI{})

	resp, body := postJSON(t, srv.URL+"/api/analyze", `{"url":"acme.dev"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Couldn't reach that site. Check the URL and try again." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAnalyzeModelFailureIsGeneric(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{page: "<html></html>"}, &stubAI{err: errors.New("secret upstream detail")})

	resp, body := postJSON(t, srv.URL+"/api/analyze", `{"url":"acme.dev"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Something went wrong on our end. Give it another go." {
		t.Errorf("error = %v", body["error"])
	}
	if strings.Contains(fmt.Sprint(body), "secret upstream detail") {
		t.Error("internal detail leaked to the response")
	}
}

func TestAnalyzeStoreDownStillReturnsReport(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("db down")}
	srv := newTestServer(t, repo, &stubFetcher{page: "<html></html>"}, &stubAI{text: modelJSON()})

	resp, body := postJSON(t, srv.URL+"/api/analyze", `{"url":"acme.dev"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["reportId"] != nil || body["slug"] != nil {
		t.Errorf("expected null identifiers, got reportId=%v slug=%v", body["reportId"], body["slug"])
	}
	if body["overallScore"].(float64) != 61 {
		t.Errorf("overallScore = %v", body["overallScore"])
	}
}

func TestLeadsEndpoint(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{}, &stubAI{})

	resp, body := postJSON(t, srv.URL+"/api/leads",
		`{"email":"jo@acme.dev","gdprConsent":true,"tool":"plg","url":"https://acme.dev"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["success"] != true || body["taskId"] != "task_1" {
		t.Errorf("body = %v", body)
	}
}

func TestLeadsValidation(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{}, &stubAI{})

	resp, body := postJSON(t, srv.URL+"/api/leads", `{"email":"jo@acme.dev","gdprConsent":false}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "GDPR consent is required." {
		t.Errorf("error = %v", body["error"])
	}

	resp2, body2 := postJSON(t, srv.URL+"/api/leads", `{"gdprConsent":true}`)
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp2.StatusCode)
	}
	if body2["success"] != false || body2["error"] != "Valid email is required." {
		t.Errorf("body = %v", body2)
	}
}

func TestReportLookup(t *testing.T) {
	repo := &memRepo{saved: []*domain.Report{{
		ID:        "id-1",
		Slug:      "acme-dev-plg-assessment",
		URL:       "https://acme.dev",
		Tool:      domain.ToolPLG,
		CreatedAt: time.Now(),
	}}}
	srv := newTestServer(t, repo, &stubFetcher{}, &stubAI{})

	resp, err := http.Get(srv.URL + "/api/reports/acme-dev-plg-assessment")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("slug lookup status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/api/reports/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("missing slug status = %d", resp2.StatusCode)
	}
}

func TestReportIDRedirect(t *testing.T) {
	repo := &memRepo{saved: []*domain.Report{{
		ID:   "id-1",
		Slug: "acme-dev-plg-assessment",
	}}}
	srv := newTestServer(t, repo, &stubFetcher{}, &stubAI{})

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(srv.URL + "/api/report/id-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/api/reports/acme-dev-plg-assessment" {
		t.Errorf("Location = %q", loc)
	}

	resp2, err := client.Get(srv.URL + "/api/report/unknown")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id status = %d", resp2.StatusCode)
	}
}

func TestLatestReports(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{}, &stubAI{})

	resp, err := http.Get(srv.URL + "/api/reports?limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/api/reports?tool=bogus")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus tool status = %d", resp2.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &memRepo{}, &stubFetcher{}, &stubAI{})

	for _, path := range []string{"/health", "/live", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}
