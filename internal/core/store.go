package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotStore is the persistence collaborator port. The store saves the full
// snapshot after every successful mutation (fire-and-forget: a failed save is
// logged and never surfaced to the caller) and loads it once at startup.
type SnapshotStore interface {
	// Load returns the previously saved snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}

// Store holds the in-memory collections of all six entity types and is the
// single source of truth. Mutations that touch derived fields route through
// the quote and maintenance services in this package; the store never lets a
// caller set a derived field directly.
type Store struct {
	mu      sync.Mutex
	persist SnapshotStore // nil means in-memory only
	now     func() time.Time
	newID   func() string

	clients     []Client
	technicians []Technician
	quotes      []Quote
	visits      []Visit
	reports     []ExecutionReport
	maintenance []MaintenanceAlert
}

// NewStore constructs a store backed by the given persistence collaborator,
// loading the prior snapshot or seeding the default one on first run.
func NewStore(ctx context.Context, persist SnapshotStore) (*Store, error) {
	s := NewMemStore()
	s.persist = persist
	if persist == nil {
		return s, nil
	}
	snap, err := persist.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		seed := DefaultSnapshot()
		snap = &seed
	}
	s.importSnapshot(*snap)
	s.flush(ctx)
	return s, nil
}

// NewMemStore constructs an empty store with no persistence, for tests and
// ephemeral sessions.
func NewMemStore() *Store {
	return &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Store) importSnapshot(snap Snapshot) {
	s.clients = append([]Client(nil), snap.Clients...)
	s.technicians = append([]Technician(nil), snap.Technicians...)
	s.quotes = make([]Quote, len(snap.Quotes))
	for i, q := range snap.Quotes {
		s.quotes[i] = cloneQuote(q)
	}
	s.visits = append([]Visit(nil), snap.Visits...)
	s.reports = append([]ExecutionReport(nil), snap.Reports...)
	s.maintenance = append([]MaintenanceAlert(nil), snap.Maintenance...)
}

func (s *Store) exportLocked() Snapshot {
	snap := Snapshot{
		Clients:     append([]Client(nil), s.clients...),
		Technicians: append([]Technician(nil), s.technicians...),
		Quotes:      make([]Quote, len(s.quotes)),
		Visits:      append([]Visit(nil), s.visits...),
		Reports:     append([]ExecutionReport(nil), s.reports...),
		Maintenance: append([]MaintenanceAlert(nil), s.maintenance...),
	}
	for i, q := range s.quotes {
		snap.Quotes[i] = cloneQuote(q)
	}
	return snap
}

// Export returns a deep copy of the full store state.
func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

// flush saves the current snapshot through the persistence collaborator.
// Must be called with the lock held. Save failures do not fail the mutation:
// the in-memory state is authoritative and the operation has already applied.
func (s *Store) flush(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(ctx, s.exportLocked()); err != nil {
		log.Printf("snapshot save failed: %v", err)
	}
}

func cloneQuote(q Quote) Quote {
	q.ServiceTypes = append([]ServiceType(nil), q.ServiceTypes...)
	q.Items = append([]QuoteItem(nil), q.Items...)
	return q
}

// ── lookups (lock held) ──────────────────────────────────────────────────────

func (s *Store) findClient(id string) *Client {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return &s.clients[i]
		}
	}
	return nil
}

func (s *Store) findTechnician(id string) *Technician {
	for i := range s.technicians {
		if s.technicians[i].ID == id {
			return &s.technicians[i]
		}
	}
	return nil
}

func (s *Store) findQuote(id string) *Quote {
	for i := range s.quotes {
		if s.quotes[i].ID == id || s.quotes[i].Number == id {
			return &s.quotes[i]
		}
	}
	return nil
}

func (s *Store) findVisit(id string) *Visit {
	for i := range s.visits {
		if s.visits[i].ID == id {
			return &s.visits[i]
		}
	}
	return nil
}

func (s *Store) findReport(id string) *ExecutionReport {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return &s.reports[i]
		}
	}
	return nil
}

func (s *Store) findAlert(id string) *MaintenanceAlert {
	for i := range s.maintenance {
		if s.maintenance[i].ID == id {
			return &s.maintenance[i]
		}
	}
	return nil
}

// nextQuoteNumber assigns the human-readable sequential number, e.g. "2026-3".
func (s *Store) nextQuoteNumber() string {
	return fmt.Sprintf("%d-%d", s.now().Year(), len(s.quotes)+1)
}

// ── client & technician master data ──────────────────────────────────────────

// RegisterClient adds a new client and returns it with its assigned id.
func (s *Store) RegisterClient(ctx context.Context, c Client) (Client, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Client{}, fmt.Errorf("%w: client name must not be empty", ErrInvalidItem)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID()
	s.clients = append(s.clients, c)
	s.flush(ctx)
	return c, nil
}

// UpdateClient replaces the stored client with the same id.
func (s *Store) UpdateClient(ctx context.Context, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.findClient(c.ID)
	if existing == nil {
		return fmt.Errorf("%w: client %s", ErrNotFound, c.ID)
	}
	*existing = c
	s.flush(ctx)
	return nil
}

// RegisterTechnician adds a new technician and returns it with its assigned id.
func (s *Store) RegisterTechnician(ctx context.Context, t Technician) (Technician, error) {
	if strings.TrimSpace(t.Name) == "" {
		return Technician{}, fmt.Errorf("%w: technician name must not be empty", ErrInvalidItem)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newID()
	s.technicians = append(s.technicians, t)
	s.flush(ctx)
	return t, nil
}

// UpdateTechnician replaces the stored technician with the same id.
func (s *Store) UpdateTechnician(ctx context.Context, t Technician) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.findTechnician(t.ID)
	if existing == nil {
		return fmt.Errorf("%w: technician %s", ErrNotFound, t.ID)
	}
	*existing = t
	s.flush(ctx)
	return nil
}

// ── reads ────────────────────────────────────────────────────────────────────

func (s *Store) Clients() []Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Client(nil), s.clients...)
}

func (s *Store) Client(id string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findClient(id); c != nil {
		return *c, nil
	}
	return Client{}, fmt.Errorf("%w: client %s", ErrNotFound, id)
}

func (s *Store) Technicians() []Technician {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Technician(nil), s.technicians...)
}

func (s *Store) Technician(id string) (Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findTechnician(id); t != nil {
		return *t, nil
	}
	return Technician{}, fmt.Errorf("%w: technician %s", ErrNotFound, id)
}

func (s *Store) Quotes() []Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Quote, len(s.quotes))
	for i, q := range s.quotes {
		out[i] = cloneQuote(q)
	}
	return out
}

// Quote resolves a quote by opaque id or human-readable number.
func (s *Store) Quote(ref string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q := s.findQuote(ref); q != nil {
		return cloneQuote(*q), nil
	}
	return Quote{}, fmt.Errorf("%w: quote %s", ErrNotFound, ref)
}

func (s *Store) Visits() []Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Visit(nil), s.visits...)
}

func (s *Store) Visit(id string) (Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.findVisit(id); v != nil {
		return *v, nil
	}
	return Visit{}, fmt.Errorf("%w: visit %s", ErrNotFound, id)
}

func (s *Store) Reports() []ExecutionReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ExecutionReport(nil), s.reports...)
}

func (s *Store) Report(id string) (ExecutionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.findReport(id); r != nil {
		return *r, nil
	}
	return ExecutionReport{}, fmt.Errorf("%w: report %s", ErrNotFound, id)
}

func (s *Store) MaintenanceAlerts() []MaintenanceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MaintenanceAlert(nil), s.maintenance...)
}

func (s *Store) MaintenanceAlert(id string) (MaintenanceAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.findAlert(id); a != nil {
		return *a, nil
	}
	return MaintenanceAlert{}, fmt.Errorf("%w: maintenance alert %s", ErrNotFound, id)
}
