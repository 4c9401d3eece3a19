package models

import "time"

// Notice kinds.
const (
	NoticeUploadSucceeded = "UPLOAD_SUCCEEDED"
	NoticeUploadFailed    = "UPLOAD_FAILED"
	NoticeReportSaved     = "REPORT_SAVED"
	NoticeReportFailed    = "REPORT_FAILED"
	NoticeLoginFailed     = "LOGIN_FAILED"
	NoticeSessionExpired  = "SESSION_EXPIRED"
)

// Notice is a user-visible acknowledgment of an operation outcome.
type Notice struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Kind       string    `json:"kind"`    // UPLOAD_SUCCEEDED | UPLOAD_FAILED | REPORT_SAVED | ...
	Message    string    `json:"message"` // human-readable
	Metadata   any       `json:"metadata,omitempty"`
}
