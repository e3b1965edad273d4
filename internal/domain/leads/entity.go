package leads

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidEmail   = errors.New("valid email is required")
	ErrConsentMissing = errors.New("gdpr consent is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lead is a gate submission, forwarded once to the task tracker and
// never stored locally.
type Lead struct {
	Email            string    `json:"email"`
	Company          string    `json:"company"`
	URL              string    `json:"url"`
	OverallScore     int       `json:"overallScore"`
	GDPRConsent      bool      `json:"gdprConsent"`
	MailingListOptIn bool      `json:"mailingListOptIn"`
	Tool             string    `json:"tool"`
	Timestamp        time.Time `json:"timestamp"`
	ReportID         string    `json:"reportId,omitempty"`
}

// Validate rejects leads before any outbound call is made.
func (l *Lead) Validate() error {
	if !emailPattern.MatchString(l.Email) {
		return ErrInvalidEmail
	}
	if !l.GDPRConsent {
		return ErrConsentMissing
	}
	return nil
}
