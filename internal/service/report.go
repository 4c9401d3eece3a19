package service

import (
	"context"
	"errors"
	"fmt"

	"chemviz/internal/logger"
	"chemviz/internal/models"
)

var errNoSaver = errors.New("no report saver")

// ReportService downloads PDF reports. Nothing reaches the saver unless the
// download succeeded.
type ReportService struct {
	backend   Backend
	session   *SessionService
	projector Projector
	notices   Notices
	log       *logger.Logger
}

func NewReportService(backend Backend, session *SessionService, projector Projector, notices Notices, log *logger.Logger) *ReportService {
	return &ReportService{
		backend:   backend,
		session:   session,
		projector: projector,
		notices:   notices,
		log:       logger.OrNop(log),
	}
}

// ReportName is the name a report for dataset filename is saved under.
func ReportName(filename string) string {
	return "report_" + filename + ".pdf"
}

// Download fetches the report of entry id and hands it to dst.
func (s *ReportService) Download(ctx context.Context, dst Saver, id int64, filename string) (string, error) {
	if dst == nil {
		return "", errNoSaver
	}
	token, err := s.session.require()
	if err != nil {
		return "", err
	}
	name := ReportName(filename)

	data, err := s.backend.Report(ctx, token, id)
	if err != nil {
		s.fail(ctx, id, name, err)
		s.session.rejected(ctx, err)
		return "", err
	}

	loc, err := dst.Save(ctx, name, data)
	if err != nil {
		err = fmt.Errorf("save %s: %w", name, err)
		s.fail(ctx, id, name, err)
		return "", err
	}

	s.log.Infow("report_saved", "id", id, "location", loc, "bytes", len(data))
	s.notices.Record(ctx, models.NoticeReportSaved, "Report saved: "+name, map[string]any{"id": id, "location": loc})
	return loc, nil
}

// DownloadActive downloads the report of the active analytics result using
// the history identifier it was selected by.
func (s *ReportService) DownloadActive(ctx context.Context, dst Saver) (string, error) {
	active, ok := s.projector.Active()
	if !ok {
		return "", ErrNoActiveAnalytics
	}
	return s.Download(ctx, dst, active.EntryID, active.Filename)
}

func (s *ReportService) fail(ctx context.Context, id int64, name string, err error) {
	s.log.Errorw("report_download_failed", "id", id, "err", err)
	s.notices.Record(ctx, models.NoticeReportFailed, "Download failed: "+name, map[string]any{"id": id, "error": err.Error()})
}
