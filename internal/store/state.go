package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/talia-baeva/slotline/internal/db"
)

// Durable state keys. All three are cleared together only by a successful
// completion or an explicit full reset; the draft key alone is rewritten many
// times per session.
const (
	KeyRegistrationToken = "registration_token"
	KeySelectedPlan      = "selected_plan"
	KeyOnboardingDraft   = "onboarding_draft"
)

// ErrNotFound indicates the requested state key has no stored value.
var ErrNotFound = errors.New("state key not found")

// StateRepo is the key-value store backing all durable wizard state.
// Values are JSON documents.
type StateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLiteStateRepo implements StateRepo on the app_state table.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a StateRepo backed by the given DBTX, which may
// be a *sql.DB or a transaction.
func NewSQLiteStateRepo(dbtx db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: dbtx}
}

func (r *SQLiteStateRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading state key %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStateRepo) Put(ctx context.Context, key string, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing state key %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting state key %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every wizard state key in one transaction, so a crash
// between deletes can never leave a token without its plan or vice versa.
func ClearAll(ctx context.Context, uow db.UnitOfWork) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteStateRepo(tx)
		for _, key := range []string{KeyRegistrationToken, KeySelectedPlan, KeyOnboardingDraft} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
