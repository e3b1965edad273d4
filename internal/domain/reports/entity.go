package reports

import (
	"time"
)

// ID tipe untuk Report
type ReportID string

// Tool enum, one per audit profile
type Tool string

const (
	ToolPLG           Tool = "plg"
	ToolAccessibility Tool = "accessibility"
	ToolStructure     Tool = "structure"
	ToolSEOAEO        Tool = "seo-aeo"
)

// ParseTool maps a route/request tool string onto the enum.
func ParseTool(s string) (Tool, bool) {
	switch Tool(s) {
	case ToolPLG, ToolAccessibility, ToolStructure, ToolSEOAEO:
		return Tool(s), true
	}
	return "", false
}

// Impact / priority labels used by strengths and improvements
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"

	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// CategoryScore value object, 7 per report
type CategoryScore struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

type Strength struct {
	Title       string `json:"title"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type Improvement struct {
	Title          string `json:"title"`
	Priority       string `json:"priority"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// AuditReport is the model-produced body of a report, before persistence.
type AuditReport struct {
	OverallScore int             `json:"overallScore"`
	Summary      string          `json:"summary"`
	Categories   []CategoryScore `json:"categories"`
	Strengths    []Strength      `json:"strengths"`
	Improvements []Improvement   `json:"improvements"`
}

// Aggregate Root: Report
type Report struct {
	ID           ReportID        `json:"id"`
	Slug         string          `json:"slug"`
	URL          string          `json:"url"`
	SiteName     string          `json:"site_name"`
	Tool         Tool            `json:"tool"`
	OverallScore int             `json:"overall_score"`
	Summary      string          `json:"summary"`
	Categories   []CategoryScore `json:"categories"`
	Strengths    []Strength      `json:"strengths"`
	Improvements []Improvement   `json:"improvements"`
	SnapshotURL  string          `json:"snapshot_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Body returns the audit portion of a persisted report.
func (r *Report) Body() AuditReport {
	return AuditReport{
		OverallScore: r.OverallScore,
		Summary:      r.Summary,
		Categories:   r.Categories,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
	}
}
