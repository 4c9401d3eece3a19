package repository

import (
	"context"
	"database/sql"
	"time"

	"chemviz/internal/models"
)

// CredentialRepo is the durable home of the session credential.
type CredentialRepo interface {
	Save(ctx context.Context, token string) error
	// Load returns "" when no credential is stored.
	Load(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// NoticeRepo is an append-only log of acknowledgments.
type NoticeRepo interface {
	Append(ctx context.Context, n models.Notice) error
	List(ctx context.Context, from, to time.Time, kind string) ([]models.Notice, error)
}

type Repository struct {
	Credentials CredentialRepo
	Notices     NoticeRepo
}

// NewRepository builds sqlite-backed repositories. sealer may be nil, in
// which case the credential is stored as-is.
func NewRepository(db *sql.DB, sealer *Sealer) *Repository {
	return &Repository{
		Credentials: NewCredentialSQLite(db, sealer),
		Notices:     NewNoticeSQLite(db),
	}
}
