package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBadModelOutput is returned when the model response is not parseable
// JSON or violates the report schema (7 categories, 0-100 scores).
var ErrBadModelOutput = errors.New("model output does not match report schema")

const numCategories = 7

// ParseModelOutput turns the raw model response into an AuditReport.
// Responses wrapped in a ``` or ```json fence parse identically to the
// bare JSON.
func ParseModelOutput(text string) (*AuditReport, error) {
	jsonText := stripFence(text)

	var report AuditReport
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}

// Validate enforces the schema contract the model is prompted with.
// Impact and priority labels are normalised to upper case.
func (a *AuditReport) Validate() error {
	if a.OverallScore < 0 || a.OverallScore > 100 {
		return fmt.Errorf("%w: overallScore %d out of range", ErrBadModelOutput, a.OverallScore)
	}
	if len(a.Categories) != numCategories {
		return fmt.Errorf("%w: got %d categories, want %d", ErrBadModelOutput, len(a.Categories), numCategories)
	}
	for _, c := range a.Categories {
		if c.Score < 0 || c.Score > 100 {
			return fmt.Errorf("%w: category %q score %d out of range", ErrBadModelOutput, c.Name, c.Score)
		}
	}
	if len(a.Strengths) == 0 || len(a.Strengths) > 6 {
		return fmt.Errorf("%w: got %d strengths", ErrBadModelOutput, len(a.Strengths))
	}
	if len(a.Improvements) == 0 || len(a.Improvements) > 6 {
		return fmt.Errorf("%w: got %d improvements", ErrBadModelOutput, len(a.Improvements))
	}
	for i := range a.Strengths {
		a.Strengths[i].Impact = strings.ToUpper(a.Strengths[i].Impact)
	}
	for i := range a.Improvements {
		a.Improvements[i].Priority = strings.ToUpper(a.Improvements[i].Priority)
	}
	return nil
}

// stripFence removes an optional markdown code fence (```json or ```)
// wrapping the response body.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
