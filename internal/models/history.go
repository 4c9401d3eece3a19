package models

import "time"

// HistoryEntry is one previously uploaded dataset as listed by the backend.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	File       string    `json:"file,omitempty"` // server-side URL of the stored CSV
}

// FileRef points at a local file waiting to be uploaded.
type FileRef struct {
	Name string `json:"name"` // name announced to the backend
	Path string `json:"path"`
}
