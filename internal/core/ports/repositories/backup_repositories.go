package repositories

import (
	"context"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
)

// BackupBridge is the external crash-recovery snapshot service. The journal
// store reads the last snapshot once at startup and replaces it wholesale at
// shutdown (and on reset). Last writer wins; there is no merge.
type BackupBridge interface {
	// Get returns the entries of the last saved snapshot. A bridge with no
	// snapshot yet returns an empty slice, not an error.
	Get(ctx context.Context) ([]domain.JournalEntry, error)

	// Replace overwrites the stored snapshot with the given entries.
	Replace(ctx context.Context, entries []domain.JournalEntry) error
}
