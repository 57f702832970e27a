package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/money_managemet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// JournalStore is the single logical owner of the ledger state: a mapping
// from date keys to ordered lists of journal entries.
//
// Mutations take the write lock, so create/update/reset are strictly
// serialized. Buckets are copy-on-write: a write always publishes a fresh
// slice and never touches a published one, so readers that captured bucket
// references under the read lock can keep filtering them after the lock is
// released, one goroutine per bucket, without ever observing a half-applied
// write.
type JournalStore struct {
	mu      sync.RWMutex
	buckets map[domain.DateKey][]domain.JournalEntry

	factory *EntryFactory
	backup  portsrepo.BackupBridge
}

// Ensure JournalStore implements the journal service facade.
var _ portssvc.JournalSvcFacade = (*JournalStore)(nil)

// NewJournalStore creates an empty store. Call Restore to adopt the last
// backup snapshot before serving traffic.
func NewJournalStore(factory *EntryFactory, backup portsrepo.BackupBridge) *JournalStore {
	return &JournalStore{
		buckets: make(map[domain.DateKey][]domain.JournalEntry),
		factory: factory,
		backup:  backup,
	}
}

// Restore adopts the backup bridge's last snapshot as the initial state.
func (s *JournalStore) Restore(ctx context.Context) error {
	entries, err := s.backup.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read backup snapshot: %w", err)
	}

	buckets := make(map[domain.DateKey][]domain.JournalEntry)
	for _, entry := range entries {
		key := entry.DateKey()
		buckets[key] = append(buckets[key], entry.Clone())
	}

	s.mu.Lock()
	s.buckets = buckets
	s.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Journal store restored from backup", "entries", len(entries))
	return nil
}

// Snapshot pushes the current state to the backup bridge unconditionally.
// Last writer wins; there is no merge.
func (s *JournalStore) Snapshot(ctx context.Context) error {
	entries, _ := s.AllEntries(ctx)
	if err := s.backup.Replace(ctx, entries); err != nil {
		return fmt.Errorf("failed to write backup snapshot: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Journal store snapshot saved", "entries", len(entries))
	return nil
}

// CreateJournalEntry checks reference uniqueness, delegates assembly to the
// factory and prepends the new entry to its date bucket (most recent first).
// The duplicate check runs before the factory so a conflicting request never
// pays for validation.
func (s *JournalStore) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	ref := strings.TrimSpace(req.ReferenceNumber)
	if s.findByRefLocked(ref) != nil {
		logger.Warn("Duplicate reference number on create", "reference_number", ref)
		return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateReferenceNumber, ref)
	}

	entry, err := s.factory.CreateEntry(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	key := entry.DateKey()
	s.buckets[key] = prepend(s.buckets[key], *entry)

	logger.Info("Journal entry created",
		"entry_id", entry.EntryID,
		"reference_number", entry.ReferenceNumber,
		"date_key", key.String())
	out := entry.Clone()
	return &out, nil
}

// UpdateJournalEntry applies a patch through the factory. When the
// transaction date moved, the entry leaves its old bucket and joins the new
// one; otherwise it is replaced in place, matched by id either way.
func (s *JournalStore) UpdateJournalEntry(ctx context.Context, entryID string, patch dto.JournalEntryPatch, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(entryID) == "" {
		return nil, fmt.Errorf("%w: empty entry id", apperrors.ErrInvalidID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findByIDLocked(entryID)
	if current == nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}

	updated, err := s.factory.UpdateEntry(ctx, *current, patch, actor)
	if err != nil {
		return nil, err
	}

	oldKey := current.DateKey()
	newKey := updated.DateKey()
	if oldKey == newKey {
		s.buckets[oldKey] = replaceByID(s.buckets[oldKey], *updated)
	} else {
		s.buckets[oldKey] = removeByID(s.buckets[oldKey], entryID)
		if len(s.buckets[oldKey]) == 0 {
			delete(s.buckets, oldKey)
		}
		s.buckets[newKey] = prepend(s.buckets[newKey], *updated)
	}

	logger.Info("Journal entry updated",
		"entry_id", updated.EntryID,
		"moved_bucket", oldKey != newKey,
		"posted", updated.Posted)
	out := updated.Clone()
	return &out, nil
}

// ResetAll clears the whole mapping and synchronizes the backup to empty.
// It always succeeds; a backup failure is logged, not surfaced, because the
// in-memory state is already gone.
func (s *JournalStore) ResetAll(ctx context.Context) []domain.JournalEntry {
	s.mu.Lock()
	s.buckets = make(map[domain.DateKey][]domain.JournalEntry)
	s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.backup.Replace(ctx, nil); err != nil {
		logger.Error("Failed to sync backup after reset", "error", err.Error())
	}
	logger.Info("Journal store reset")
	return []domain.JournalEntry{}
}

// AllEntries returns every entry, buckets in chronological order, entries in
// their in-bucket order (most recent first).
func (s *JournalStore) AllEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	buckets := s.capturedBuckets()
	return collectBuckets(ctx, buckets, func(domain.DateKey) bool { return true }), nil
}

// FindByReferenceNumber scans all buckets for the entry with the given
// business reference.
func (s *JournalStore) FindByReferenceNumber(ctx context.Context, referenceNumber string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(referenceNumber) == "" {
		return nil, fmt.Errorf("%w: empty reference number", apperrors.ErrInvalidReferenceNumber)
	}

	s.mu.RLock()
	entry := s.findByRefLocked(referenceNumber)
	s.mu.RUnlock()

	if entry == nil {
		return nil, fmt.Errorf("%w: reference number %q", apperrors.ErrNotFound, referenceNumber)
	}
	out := entry.Clone()
	return &out, nil
}

// FindByID scans all buckets for the entry with the given internal id.
func (s *JournalStore) FindByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(entryID) == "" {
		return nil, fmt.Errorf("%w: empty entry id", apperrors.ErrInvalidID)
	}

	s.mu.RLock()
	entry := s.findByIDLocked(entryID)
	s.mu.RUnlock()

	if entry == nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	out := entry.Clone()
	return &out, nil
}

// FindByDate matches every bucket that agrees on the supplied components of
// the partial date. Bucket filtering fans out one goroutine per bucket.
func (s *JournalStore) FindByDate(ctx context.Context, query domain.PartialDate) ([]domain.JournalEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	buckets := s.capturedBuckets()
	return collectBuckets(ctx, buckets, query.Matches), nil
}

// FindByDateRange returns entries between the two bounds, inclusive on both
// ends. Each bound expands to a whole day: from at start of day, to at end of
// day, with missing components widened the same way.
func (s *JournalStore) FindByDateRange(ctx context.Context, from, to domain.PartialDate) ([]domain.JournalEntry, error) {
	lower, err := from.LowerBound()
	if err != nil {
		return nil, err
	}
	upper, err := to.UpperBound()
	if err != nil {
		return nil, err
	}

	buckets := s.capturedBuckets()
	return collectBuckets(ctx, buckets, func(k domain.DateKey) bool {
		day := k.StartOfDay()
		return !day.Before(lower) && !day.After(upper)
	}), nil
}

// --- internals ---

type bucketRef struct {
	key     domain.DateKey
	entries []domain.JournalEntry
}

// capturedBuckets snapshots bucket references under the read lock, sorted
// chronologically. The slices are never mutated after publication, so they
// stay safe to read once the lock is gone.
func (s *JournalStore) capturedBuckets() []bucketRef {
	s.mu.RLock()
	refs := make([]bucketRef, 0, len(s.buckets))
	for key, entries := range s.buckets {
		refs = append(refs, bucketRef{key: key, entries: entries})
	}
	s.mu.RUnlock()

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].key.StartOfDay().Before(refs[j].key.StartOfDay())
	})
	return refs
}

// collectBuckets clones the matching buckets concurrently, one goroutine per
// bucket, and reassembles them in chronological bucket order.
func collectBuckets(ctx context.Context, buckets []bucketRef, match func(domain.DateKey) bool) []domain.JournalEntry {
	results := make([][]domain.JournalEntry, len(buckets))
	var wg sync.WaitGroup
	for i, ref := range buckets {
		if !match(ref.key) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, entries []domain.JournalEntry) {
			defer wg.Done()
			cloned := make([]domain.JournalEntry, len(entries))
			for j, entry := range entries {
				cloned[j] = entry.Clone()
			}
			results[i] = cloned
		}(i, ref.entries)
	}
	wg.Wait()

	out := make([]domain.JournalEntry, 0)
	for _, chunk := range results {
		out = append(out, chunk...)
	}
	return out
}

func (s *JournalStore) findByRefLocked(referenceNumber string) *domain.JournalEntry {
	for _, bucket := range s.buckets {
		for i := range bucket {
			if bucket[i].ReferenceNumber == referenceNumber {
				return &bucket[i]
			}
		}
	}
	return nil
}

func (s *JournalStore) findByIDLocked(entryID string) *domain.JournalEntry {
	for _, bucket := range s.buckets {
		for i := range bucket {
			if bucket[i].EntryID == entryID {
				return &bucket[i]
			}
		}
	}
	return nil
}

// prepend publishes a fresh bucket slice with the entry at the front.
func prepend(bucket []domain.JournalEntry, entry domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(bucket)+1)
	out = append(out, entry)
	return append(out, bucket...)
}

// replaceByID publishes a fresh bucket slice with the entry swapped in at its
// original position.
func replaceByID(bucket []domain.JournalEntry, entry domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(bucket))
	copy(out, bucket)
	for i := range out {
		if out[i].EntryID == entry.EntryID {
			out[i] = entry
			break
		}
	}
	return out
}

// removeByID publishes a fresh bucket slice without the given entry.
func removeByID(bucket []domain.JournalEntry, entryID string) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(bucket))
	for _, e := range bucket {
		if e.EntryID != entryID {
			out = append(out, e)
		}
	}
	return out
}
