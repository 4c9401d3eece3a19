package models

// ViewState is everything the dashboard renders at one instant.
type ViewState struct {
	Authenticated bool             `json:"authenticated"`
	History       []HistoryEntry   `json:"history"`
	PendingFile   string           `json:"pending_file,omitempty"`
	CanSubmit     bool             `json:"can_submit"`
	Active        *ActiveAnalytics `json:"active,omitempty"`
	LastNotice    *Notice          `json:"last_notice,omitempty"`
}
