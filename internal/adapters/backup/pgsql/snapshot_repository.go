// Package pgsql stores the journal snapshot as a single JSON row in
// Postgres, giving the store a crash-recovery point that outlives the
// process. Writes overwrite the previous snapshot; last writer wins.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/money_managemet_app/internal/core/ports/repositories"
)

// snapshotRowID pins the table to a single row.
const snapshotRowID = 1

// SnapshotRepository implements the backup bridge against Postgres.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

var _ portsrepo.BackupBridge = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository using the provided pool.
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get implements repositories.BackupBridge. A missing row means no snapshot
// has been taken yet and yields an empty slice.
func (r *SnapshotRepository) Get(ctx context.Context) ([]domain.JournalEntry, error) {
	query := `SELECT payload FROM ledger_snapshots WHERE id = $1`

	var payload []byte
	err := r.db.QueryRow(ctx, query, snapshotRowID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.JournalEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger snapshot: %w", err)
	}

	var entries []domain.JournalEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ledger snapshot: %w", err)
	}
	return entries, nil
}

// Replace implements repositories.BackupBridge.
func (r *SnapshotRepository) Replace(ctx context.Context, entries []domain.JournalEntry) error {
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}

	query := `
		INSERT INTO ledger_snapshots (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, query, snapshotRowID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write ledger snapshot: %w", err)
	}
	return nil
}
