package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MaintenanceService derives alert statuses from the calendar and advances the
// recurring schedule when a cycle completes.
type MaintenanceService struct {
	store *Store
}

func NewMaintenanceService(store *Store) *MaintenanceService {
	return &MaintenanceService{store: store}
}

// RegisterSystem creates a recurring maintenance obligation for a client's
// installed system. The next due date is the last service date plus the fixed
// six-month interval.
func (s *MaintenanceService) RegisterSystem(ctx context.Context, clientID, systemType, lastMaintenanceDate string) (MaintenanceAlert, error) {
	if strings.TrimSpace(systemType) == "" {
		return MaintenanceAlert{}, fmt.Errorf("%w: system type must not be empty", ErrInvalidItem)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.findClient(clientID) == nil {
		return MaintenanceAlert{}, fmt.Errorf("%w: client %s", ErrUnknownReference, clientID)
	}

	last := st.now()
	if lastMaintenanceDate != "" {
		parsed, err := time.Parse("2006-01-02", lastMaintenanceDate)
		if err != nil {
			return MaintenanceAlert{}, fmt.Errorf("%w: last maintenance date %q", ErrInvalidDate, lastMaintenanceDate)
		}
		last = parsed
	}
	next := addMonthsClamped(last, MaintenanceIntervalMonths)

	a := MaintenanceAlert{
		ID:                  st.newID(),
		ClientID:            clientID,
		SystemType:          systemType,
		LastMaintenanceDate: last.Format("2006-01-02"),
		NextMaintenanceDate: next.Format("2006-01-02"),
		Status:              DeriveStatus(st.now(), next),
	}
	st.maintenance = append(st.maintenance, a)
	st.flush(ctx)
	return a, nil
}

// CompleteCycle records a finished maintenance intervention and reschedules the
// next one six calendar months out. The alert lands in Upcoming, not Done:
// maintenance recurs indefinitely, so Done is only momentary confirmation.
// Completing twice with the same date is idempotent.
func (s *MaintenanceService) CompleteCycle(ctx context.Context, alertID, completionDate string) (MaintenanceAlert, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	a := st.findAlert(alertID)
	if a == nil {
		return MaintenanceAlert{}, fmt.Errorf("%w: maintenance alert %s", ErrNotFound, alertID)
	}

	completed := st.now()
	if completionDate != "" {
		parsed, err := time.Parse("2006-01-02", completionDate)
		if err != nil {
			return MaintenanceAlert{}, fmt.Errorf("%w: completion date %q", ErrInvalidDate, completionDate)
		}
		completed = parsed
	}
	last, err := time.Parse("2006-01-02", a.LastMaintenanceDate)
	if err == nil && completed.Before(last) {
		return MaintenanceAlert{}, fmt.Errorf("%w: completion %s precedes last maintenance %s",
			ErrInvalidDate, completed.Format("2006-01-02"), a.LastMaintenanceDate)
	}

	a.LastMaintenanceDate = completed.Format("2006-01-02")
	a.NextMaintenanceDate = addMonthsClamped(completed, MaintenanceIntervalMonths).Format("2006-01-02")
	a.Status = MaintenanceUpcoming
	st.flush(ctx)
	return *a, nil
}

// RefreshStatuses is the scheduling pass: it re-derives every alert's status
// from today's date, normalizing any lingering Done markers.
func (s *MaintenanceService) RefreshStatuses(ctx context.Context) []MaintenanceAlert {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	today := st.now()
	changed := false
	for i := range st.maintenance {
		a := &st.maintenance[i]
		next, err := time.Parse("2006-01-02", a.NextMaintenanceDate)
		if err != nil {
			continue
		}
		derived := DeriveStatus(today, next)
		if a.Status != derived {
			a.Status = derived
			changed = true
		}
	}
	if changed {
		st.flush(ctx)
	}
	return append([]MaintenanceAlert(nil), st.maintenance...)
}

// DeriveStatus computes the resting status for a due date: Overdue strictly
// after the due date, Upcoming otherwise. The "due soon" warning window is a
// presentation concern and is not modeled here.
func DeriveStatus(today, nextDue time.Time) MaintenanceStatus {
	if dateOnly(today).After(dateOnly(nextDue)) {
		return MaintenanceOverdue
	}
	return MaintenanceUpcoming
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped adds calendar months preserving the day-of-month where the
// target month has it, clamping to month-end otherwise (Aug 31 + 6 → Feb 28/29).
// time.AddDate alone would normalize the overflow into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if lastDay := firstOfTarget.AddDate(0, 1, -1).Day(); day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
