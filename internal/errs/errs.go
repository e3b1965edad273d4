package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request was malformed (HTTP 400).
	InvalidInput
	// Unreachable indicates the target URL could not be fetched (HTTP 400,
	// friendly message — the visitor typed the URL).
	Unreachable
	// UpstreamModel indicates the text-generation call failed (HTTP 500).
	UpstreamModel
	// BadModelOutput indicates the model response violated the report
	// schema contract (HTTP 500, detail server-logged only).
	BadModelOutput
	// Persistence indicates a store failure. Always caught and swallowed;
	// the caller still gets the report with null identifiers.
	Persistence
	// LeadDelivery indicates the task-tracker call failed. Swallowed.
	LeadDelivery
)

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
