package services

import (
	"context"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	"github.com/SscSPs/money_managemet_app/internal/dto"
)

// JournalReaderSvc defines the query operations over the journal store.
// Readers may run concurrently with each other; they never observe a
// half-applied write.
type JournalReaderSvc interface {
	// AllEntries returns every entry across all date buckets.
	AllEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// FindByReferenceNumber looks an entry up by its business reference.
	FindByReferenceNumber(ctx context.Context, referenceNumber string) (*domain.JournalEntry, error)

	// FindByID looks an entry up by its internal id.
	FindByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindByDate returns entries whose bucket agrees on every supplied
	// component of the partial date.
	FindByDate(ctx context.Context, query domain.PartialDate) ([]domain.JournalEntry, error)

	// FindByDateRange returns entries whose bucket falls within the range,
	// inclusive on both ends after expanding each bound to a full day.
	FindByDateRange(ctx context.Context, from, to domain.PartialDate) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines the mutating operations. All writes are serialized
// with respect to each other.
type JournalWriterSvc interface {
	// CreateJournalEntry validates and stores a new entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error)

	// UpdateJournalEntry applies a patch to an unposted entry, moving it
	// between date buckets when the transaction date changes.
	UpdateJournalEntry(ctx context.Context, entryID string, patch dto.JournalEntryPatch, actor string) (*domain.JournalEntry, error)

	// ResetAll clears the whole store and synchronizes the backup to empty.
	ResetAll(ctx context.Context) []domain.JournalEntry
}

// JournalSvcFacade combines all journal store operations.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// JournalImporterSvc consumes flat rows and builds journal entries in bulk,
// isolating failures to the offending reference number.
type JournalImporterSvc interface {
	Import(ctx context.Context, rows []dto.ImportRow, actor string) (*dto.ImportResult, error)
}
