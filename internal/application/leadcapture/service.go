package leadcapture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shrinkstudio/shrink-tools-api/internal/domain/leads"
	"github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	"github.com/shrinkstudio/shrink-tools-api/internal/errs"
)

// Service forwards captured leads to the task tracker. Leads are never
// stored locally; the tracker is the system of record.
type Service struct {
	Repo    reports.Repository // used only to resolve the report link
	Tasks   leads.Tracker
	BaseURL string
	Logger  *slog.Logger
}

type CaptureResult struct {
	Success bool    `json:"success"`
	TaskID  *string `json:"taskId,omitempty"`
}

const taskStatus = "lead in"

// Capture validates the lead and pushes it to the tracker. Everything
// past validation is best-effort: a tracker outage must never cost the
// visitor their report, so delivery failures still return success.
func (s *Service) Capture(ctx context.Context, lead leads.Lead) (CaptureResult, error) {
	if err := lead.Validate(); err != nil {
		msg := "Valid email is required."
		if err == leads.ErrConsentMissing {
			msg = "GDPR consent is required."
		}
		return CaptureResult{}, &errs.AppError{Kind: errs.InvalidInput, Message: msg, Cause: err}
	}

	if s.Tasks == nil || !s.Tasks.Enabled() {
		s.Logger.Warn("lead tracker not configured, dropping lead", "email", lead.Email)
		return CaptureResult{Success: true}, nil
	}

	task := s.buildTask(ctx, lead)
	taskID, err := s.Tasks.CreateTask(ctx, task)
	if err != nil {
		s.Logger.Error("lead delivery failed", "email", lead.Email, "error", err)
		return CaptureResult{Success: true}, nil
	}

	return CaptureResult{Success: true, TaskID: &taskID}, nil
}

func (s *Service) buildTask(ctx context.Context, lead leads.Lead) leads.Task {
	company := lead.Company
	if strings.TrimSpace(company) == "" {
		company = "Not provided"
	}

	var b strings.Builder
	b.WriteString("Lead from Shrink Tools\n\n")
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Company: %s\n", company)
	fmt.Fprintf(&b, "URL analysed: %s\n", lead.URL)
	fmt.Fprintf(&b, "Tool: %s\n", lead.Tool)
	fmt.Fprintf(&b, "Overall score: %d/100\n", lead.OverallScore)
	b.WriteString("GDPR consent: Yes\n")
	fmt.Fprintf(&b, "Mailing list opt-in: %s\n", yesNo(lead.MailingListOptIn))
	fmt.Fprintf(&b, "Captured: %s\n", lead.Timestamp.Format("2 Jan 2006 15:04 MST"))

	if link := s.reportLink(ctx, lead.ReportID); link != "" {
		fmt.Fprintf(&b, "\nReport: %s\n", link)
	}

	name := lead.Company
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}

	return leads.Task{
		Name:        fmt.Sprintf("%s - %s", name, lead.Email),
		Description: b.String(),
		Status:      taskStatus,
		Tags:        []string{lead.Tool},
	}
}

// reportLink prefers the public slug URL and falls back to the id path.
// Lookup failures degrade to the id path rather than blocking delivery.
func (s *Service) reportLink(ctx context.Context, reportID string) string {
	if reportID == "" {
		return ""
	}
	if s.Repo != nil {
		rep, err := s.Repo.GetByID(ctx, reports.ReportID(reportID))
		if err == nil && rep.Slug != "" {
			return fmt.Sprintf("%s/%s", s.BaseURL, rep.Slug)
		}
	}
	return fmt.Sprintf("%s/report/%s", s.BaseURL, reportID)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
