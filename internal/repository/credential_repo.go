package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type CredentialSQLite struct {
	db     *sql.DB
	sealer *Sealer
}

func NewCredentialSQLite(db *sql.DB, sealer *Sealer) *CredentialSQLite {
	return &CredentialSQLite{db: db, sealer: sealer}
}

// Ensure implementation of CredentialRepo interface at compile time.
var _ CredentialRepo = (*CredentialSQLite)(nil)

const (
	credentialKey = "token"

	upsertCredentialSQL = `INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	selectCredentialSQL = `SELECT value FROM credentials WHERE key = ?`
	deleteCredentialSQL = `DELETE FROM credentials WHERE key = ?`
)

// Save stores token under the single credential key, replacing any previous one.
func (r *CredentialSQLite) Save(ctx context.Context, token string) error {
	value, err := r.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, upsertCredentialSQL, credentialKey, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" if none is stored.
func (r *CredentialSQLite) Load(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectCredentialSQL, credentialKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("select credential: %w", err)
	}
	token, err := r.sealer.Open(value)
	if err != nil {
		return "", fmt.Errorf("open credential: %w", err)
	}
	return token, nil
}

// Delete erases the stored token. Deleting a missing token is not an error.
func (r *CredentialSQLite) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteCredentialSQL, credentialKey); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
