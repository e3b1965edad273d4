package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appaudit "github.com/shrinkstudio/shrink-tools-api/internal/application/audit"
	appleads "github.com/shrinkstudio/shrink-tools-api/internal/application/leadcapture"
	domleads "github.com/shrinkstudio/shrink-tools-api/internal/domain/leads"
	domain "github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/errs"
	"github.com/shrinkstudio/shrink-tools-api/internal/middleware"
)

const genericErrorMessage = "Something went wrong on our end. Give it another go."

type Router struct {
	auditSvc *appaudit.Service
	leadsSvc *appleads.Service
	logger   *slog.Logger
}

func NewRouter(auditSvc *appaudit.Service, leadsSvc *appleads.Service, logger *slog.Logger, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{auditSvc: auditSvc, leadsSvc: leadsSvc, logger: logger}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze(domain.ToolPLG)))
		rt.Post("/analyze-accessibility", r.wrap(r.handleAnalyze(domain.ToolAccessibility)))
		rt.Post("/analyze-structure", r.wrap(r.handleAnalyze(domain.ToolStructure)))
		rt.Post("/analyze-seo-aeo", r.wrap(r.handleAnalyze(domain.ToolSEOAEO)))
		rt.Post("/leads", r.wrap(r.handleLeads))
		rt.Get("/reports", r.wrap(r.handleLatest))
		rt.Get("/reports/{slug}", r.wrap(r.handleGetBySlug))
		rt.Get("/report/{id}", r.wrap(r.handleRedirectByID))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps application errors to user-facing responses. Internal detail
// is logged, never sent to the visitor.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Report not found.")
			return
		}

		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case errs.InvalidInput, errs.Unreachable:
				writeError(w, http.StatusBadRequest, appErr.Message)
				return
			}
		}

		r.logger.Error("request failed", "path", req.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
	}
}

// handleAnalyze builds the analyze handler for one audit profile.
func (r *Router) handleAnalyze(tool domain.Tool) handlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return &errs.AppError{
				Kind:    errs.InvalidInput,
				Message: "That doesn't look like a URL. Try something like stripe.com",
				Cause:   err,
			}
		}

		middleware.IncrementAudits()
		result, err := r.auditSvc.Analyze(req.Context(), appaudit.AnalyzeCommand{URL: body.URL, Tool: tool})
		if err != nil {
			middleware.IncrementAuditsFailed()
			return err
		}

		return writeJSON(w, http.StatusOK, result)
	}
}

// POST /api/leads
// Validation failures carry success:false so the gate client can branch on
// it, unlike the plain error body the other routes use.
func (r *Router) handleLeads(w http.ResponseWriter, req *http.Request) error {
	var lead domleads.Lead
	if err := json.NewDecoder(req.Body).Decode(&lead); err != nil {
		return writeLeadError(w, "Valid email is required.")
	}

	result, err := r.leadsSvc.Capture(req.Context(), lead)
	if err != nil {
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.Kind == errs.InvalidInput {
			return writeLeadError(w, appErr.Message)
		}
		return err
	}

	middleware.IncrementLeads()
	return writeJSON(w, http.StatusOK, result)
}

func writeLeadError(w http.ResponseWriter, message string) error {
	return writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// GET /api/reports/{slug}
func (r *Router) handleGetBySlug(w http.ResponseWriter, req *http.Request) error {
	slug := chi.URLParam(req, "slug")
	report, err := r.auditSvc.GetBySlug(req.Context(), slug)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

// GET /api/report/{id} redirects legacy id links to the slug route.
func (r *Router) handleRedirectByID(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	report, err := r.auditSvc.GetByID(req.Context(), domain.ReportID(id))
	if err != nil {
		return err
	}
	if report.Slug == "" {
		return domain.ErrNotFound
	}
	http.Redirect(w, req, "/api/reports/"+report.Slug, http.StatusPermanentRedirect)
	return nil
}

// GET /api/reports?tool=&limit=
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	var tool domain.Tool
	if t := req.URL.Query().Get("tool"); t != "" {
		parsed, ok := domain.ParseTool(t)
		if !ok {
			return &errs.AppError{Kind: errs.InvalidInput, Message: "Unknown tool."}
		}
		tool = parsed
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.auditSvc.Latest(req.Context(), tool, limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Report{}
	}
	return writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
