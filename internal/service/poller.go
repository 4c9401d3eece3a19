package service

import (
	"context"
	"time"

	"chemviz/internal/logger"
)

// HistoryPoller keeps the history cache fresh while a dashboard is served,
// so uploads made from other clients show up.
type HistoryPoller struct {
	session Session
	history History
	log     *logger.Logger
}

func NewHistoryPoller(session Session, history History, log *logger.Logger) *HistoryPoller {
	return &HistoryPoller{session: session, history: history, log: logger.OrNop(log)}
}

// Run refreshes at the given interval until ctx is canceled. Ticks while
// unauthenticated are skipped.
func (p *HistoryPoller) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		return
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !p.session.Authenticated() {
				continue
			}
			// failures are logged by the history service; the next tick retries
			_ = p.history.Refresh(ctx)
		}
	}
}
