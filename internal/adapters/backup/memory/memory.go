// Package memory provides an in-process backup bridge used for development
// and tests, where snapshots do not need to survive the process.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/money_managemet_app/internal/core/ports/repositories"
)

// Bridge holds the last snapshot in memory.
type Bridge struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
}

var _ portsrepo.BackupBridge = (*Bridge)(nil)

// New constructs an empty in-memory bridge.
func New() *Bridge {
	return &Bridge{}
}

// Get implements repositories.BackupBridge.
func (b *Bridge) Get(_ context.Context) ([]domain.JournalEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.JournalEntry, len(b.entries))
	for i, entry := range b.entries {
		out[i] = entry.Clone()
	}
	return out, nil
}

// Replace implements repositories.BackupBridge.
func (b *Bridge) Replace(_ context.Context, entries []domain.JournalEntry) error {
	stored := make([]domain.JournalEntry, len(entries))
	for i, entry := range entries {
		stored[i] = entry.Clone()
	}
	b.mu.Lock()
	b.entries = stored
	b.mu.Unlock()
	return nil
}
