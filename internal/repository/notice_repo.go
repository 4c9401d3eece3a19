package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chemviz/internal/models"

	"github.com/google/uuid"
)

type NoticeSQLite struct {
	db *sql.DB
}

func NewNoticeSQLite(db *sql.DB) *NoticeSQLite { return &NoticeSQLite{db: db} }

var _ NoticeRepo = (*NoticeSQLite)(nil)

const (
	insertNoticeSQL = `INSERT INTO notices (id, occurred_at, kind, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectNoticeSQL = `SELECT id, occurred_at, kind, message, meta FROM notices`
)

// Append inserts a notice. If ID or OccurredAt are empty, they're set.
func (r *NoticeSQLite) Append(ctx context.Context, n models.Notice) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	} else {
		n.OccurredAt = n.OccurredAt.UTC()
	}

	var metaPtr *string
	if n.Metadata != nil {
		if b, err := json.Marshal(n.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertNoticeSQL,
		n.ID,
		n.OccurredAt,
		normalizeKind(n.Kind),
		n.Message,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert notice %s: %w", n.ID, err)
	}
	return nil
}

// List returns notices filtered by [from, to] (inclusive) and/or kind, oldest first.
func (r *NoticeSQLite) List(ctx context.Context, from, to time.Time, kind string) ([]models.Notice, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if kind = normalizeKind(kind); kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, kind)
	}

	q := selectNoticeSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select notices: %w", err)
	}
	defer rows.Close()

	out := make([]models.Notice, 0, 16)
	for rows.Next() {
		var n models.Notice
		var metaStr sql.NullString
		if err := rows.Scan(&n.ID, &n.OccurredAt, &n.Kind, &n.Message, &metaStr); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		n.OccurredAt = n.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				n.Metadata = v
			} else {
				n.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeKind(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
