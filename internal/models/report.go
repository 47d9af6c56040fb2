package models

// ErrorReport is one client-side error log entry. The cache keeps the most
// recent MaxErrorReports entries.
type ErrorReport struct {
	Message   string         `json:"message"`
	Stack     string         `json:"stack,omitempty"`
	Timestamp int64          `json:"timestamp"`
	URL       string         `json:"url"`
	UserAgent string         `json:"userAgent"`
	Context   map[string]any `json:"context,omitempty"`
}

const MaxErrorReports = 50
