package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// VisitService governs scheduling and the visit state machine.
type VisitService struct {
	store *Store
}

func NewVisitService(store *Store) *VisitService {
	return &VisitService{store: store}
}

// ScheduleVisit creates a Pending visit for an existing client and technician.
// When no address is given, the client's current address is copied in as a
// one-time snapshot.
func (s *VisitService) ScheduleVisit(ctx context.Context, clientID, technicianID, date, at, description, address string) (Visit, error) {
	if strings.TrimSpace(description) == "" {
		return Visit{}, fmt.Errorf("%w: visit description must not be empty", ErrInvalidItem)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	client := st.findClient(clientID)
	if client == nil {
		return Visit{}, fmt.Errorf("%w: client %s", ErrUnknownReference, clientID)
	}
	if st.findTechnician(technicianID) == nil {
		return Visit{}, fmt.Errorf("%w: technician %s", ErrUnknownReference, technicianID)
	}
	if date == "" {
		date = st.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return Visit{}, fmt.Errorf("%w: visit date %q", ErrInvalidDate, date)
	}
	if at == "" {
		at = "08:00"
	}
	if address == "" {
		address = client.Address
	}

	v := Visit{
		ID:           st.newID(),
		ClientID:     clientID,
		TechnicianID: technicianID,
		Date:         date,
		Time:         at,
		Description:  description,
		Status:       VisitPending,
		Address:      address,
	}
	st.visits = append(st.visits, v)
	st.flush(ctx)
	return v, nil
}

// TransitionStatus advances the visit state machine. Completed and Cancelled
// are terminal; every move not in the table fails and leaves state unchanged.
func (s *VisitService) TransitionStatus(ctx context.Context, visitID string, target VisitStatus) (Visit, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	v := st.findVisit(visitID)
	if v == nil {
		return Visit{}, fmt.Errorf("%w: visit %s", ErrNotFound, visitID)
	}
	if !transitionAllowed(visitTransitions[v.Status], target) {
		return Visit{}, fmt.Errorf("%w: visit %s cannot move %s → %s", ErrIllegalTransition, v.ID, v.Status, target)
	}
	v.Status = target
	st.flush(ctx)
	return *v, nil
}

// UpdateAddress edits the visit's address snapshot. The client record is not
// touched; the two addresses evolve independently after creation.
func (s *VisitService) UpdateAddress(ctx context.Context, visitID, address string) (Visit, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	v := st.findVisit(visitID)
	if v == nil {
		return Visit{}, fmt.Errorf("%w: visit %s", ErrNotFound, visitID)
	}
	v.Address = address
	st.flush(ctx)
	return *v, nil
}
