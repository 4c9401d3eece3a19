package service

import (
	"chemviz/internal/models"
)

// DashboardService assembles the read-only view from the state containers.
type DashboardService struct {
	session   Session
	history   History
	uploads   Uploads
	projector Projector
	notices   Notices
}

func NewDashboardService(session Session, history History, uploads Uploads, projector Projector, notices Notices) *DashboardService {
	return &DashboardService{
		session:   session,
		history:   history,
		uploads:   uploads,
		projector: projector,
		notices:   notices,
	}
}

// Snapshot returns the current view. Unauthenticated views carry nothing
// but the last notice.
func (s *DashboardService) Snapshot() models.ViewState {
	v := models.ViewState{History: []models.HistoryEntry{}}
	if n, ok := s.notices.Latest(); ok {
		v.LastNotice = &n
	}
	if !s.session.Authenticated() {
		return v
	}

	v.Authenticated = true
	v.History = s.history.List()
	if ref, ok := s.uploads.Pending(); ok {
		v.PendingFile = ref.Name
		v.CanSubmit = true
	}
	if a, ok := s.projector.Active(); ok {
		v.Active = &a
	}
	return v
}
