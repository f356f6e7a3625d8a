package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makuta3933/budget/internal/core"
)

// Repository persists the full transaction sequence as one serialized
// payload under a single named slot.
type Repository interface {
	// Load returns the stored payload. ok is false when the slot does not
	// exist, which is a valid initial state.
	Load(ctx context.Context) (payload []byte, ok bool, err error)
	Save(ctx context.Context, payload []byte) error
	// Delete removes the slot entirely, distinct from saving an empty
	// sequence.
	Delete(ctx context.Context) error
}

// Store owns the authoritative in-memory transaction sequence and mirrors
// it to the repository after every mutation. Persistence is best effort:
// a failed write is logged and the in-memory state stays authoritative for
// the rest of the session.
type Store struct {
	mu    sync.Mutex
	repo  Repository
	items []core.Transaction
	now   func() time.Time
}

// Input is a transaction before the store assigns it an id.
type Input struct {
	Date       string
	Amount     int64
	Type       core.TransactionType
	CategoryID string
	Note       string
}

// Patch carries a partial update; nil fields are left untouched. The id is
// never patchable.
type Patch struct {
	Date       *string
	Amount     *int64
	Type       *core.TransactionType
	CategoryID *string
	Note       *string
}

// NewStore builds a store seeded from the repository. A missing slot starts
// empty; a corrupt or invalid payload is logged and discarded so startup
// never halts on bad data.
func NewStore(ctx context.Context, repo Repository) *Store {
	s := &Store{repo: repo, now: time.Now}
	s.items = loadInitial(ctx, repo)
	return s
}

func loadInitial(ctx context.Context, repo Repository) []core.Transaction {
	payload, ok, err := repo.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed reading stored transactions, starting empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		slog.WarnContext(ctx, "Stored transactions are not valid JSON, starting empty", "error", err)
		return nil
	}
	items, err := core.DecodeTransactions(raw)
	if err != nil {
		slog.WarnContext(ctx, "Stored transactions failed validation, starting empty", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "Loaded stored transactions", "count", len(items))
	return items
}

// Add validates the input, assigns a fresh UUID and appends the record.
func (s *Store) Add(ctx context.Context, in Input) (core.Transaction, error) {
	t := core.Transaction{
		ID:         uuid.NewString(),
		Date:       in.Date,
		Amount:     in.Amount,
		Type:       in.Type,
		CategoryID: in.CategoryID,
		Note:       in.Note,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, t)
	s.mu.Unlock()

	s.persist(ctx)
	return t, nil
}

// Update merges the patch into the record with the given id. It reports
// whether a record was found; an unknown id is a no-op, never an error.
func (s *Store) Update(ctx context.Context, id string, p Patch) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if p.Date != nil {
			s.items[i].Date = *p.Date
		}
		if p.Amount != nil {
			s.items[i].Amount = *p.Amount
		}
		if p.Type != nil {
			s.items[i].Type = *p.Type
		}
		if p.CategoryID != nil {
			s.items[i].CategoryID = *p.CategoryID
		}
		if p.Note != nil {
			s.items[i].Note = *p.Note
		}
		found = true
		break
	}
	s.mu.Unlock()

	if found {
		s.persist(ctx)
	}
	return found
}

// Delete removes the record with the given id, keeping the order of the
// remaining records. It reports whether a removal occurred.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persist(ctx)
	}
	return found
}

// Clear empties the sequence and removes the storage slot itself.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed removing stored transactions", "error", err)
	}
}

// All returns a copy of the sequence in store order.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) snapshotLocked() []core.Transaction {
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// persist rewrites the whole sequence into the repository slot. Errors are
// logged, not returned: the in-memory view stays consistent regardless.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		slog.ErrorContext(ctx, "Failed encoding transactions", "error", err)
		return
	}
	if err := s.repo.Save(ctx, payload); err != nil {
		slog.ErrorContext(ctx, "Failed persisting transactions", "error", err, "count", len(snapshot))
	}
}
