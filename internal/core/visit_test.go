package core_test

import (
	"context"
	"errors"
	"testing"

	"fieldservice-agent/internal/core"
)

func newVisitFixture(t *testing.T) (*core.Store, *core.VisitService, core.Client, core.Technician) {
	t.Helper()
	ctx := context.Background()
	store := core.NewMemStore()
	client, err := store.RegisterClient(ctx, core.Client{Name: "Edificio Horizonte", Address: "Av. Siempre Viva 123"})
	if err != nil {
		t.Fatalf("register client: %v", err)
	}
	tech, err := store.RegisterTechnician(ctx, core.Technician{Name: "Juan Pérez", Specialty: "CCTV y Seguridad"})
	if err != nil {
		t.Fatalf("register technician: %v", err)
	}
	return store, core.NewVisitService(store), client, tech
}

func TestScheduleVisit_Defaults(t *testing.T) {
	ctx := context.Background()
	_, svc, client, tech := newVisitFixture(t)

	v, err := svc.ScheduleVisit(ctx, client.ID, tech.ID, "2026-09-10", "10:30", "Mantenimiento preventivo anual CCTV", "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if v.Status != core.VisitPending {
		t.Errorf("status = %s, want Pending", v.Status)
	}
	if v.Address != client.Address {
		t.Errorf("address = %q, want client address snapshot %q", v.Address, client.Address)
	}
}

func TestScheduleVisit_References(t *testing.T) {
	ctx := context.Background()
	_, svc, client, tech := newVisitFixture(t)

	if _, err := svc.ScheduleVisit(ctx, "ghost", tech.ID, "", "", "revisión", ""); !errors.Is(err, core.ErrUnknownReference) {
		t.Errorf("unknown client err = %v, want ErrUnknownReference", err)
	}
	if _, err := svc.ScheduleVisit(ctx, client.ID, "ghost", "", "", "revisión", ""); !errors.Is(err, core.ErrUnknownReference) {
		t.Errorf("unknown technician err = %v, want ErrUnknownReference", err)
	}
	if _, err := svc.ScheduleVisit(ctx, client.ID, tech.ID, "", "", "  ", ""); !errors.Is(err, core.ErrInvalidItem) {
		t.Errorf("blank description err = %v, want ErrInvalidItem", err)
	}
}

func TestVisitAddress_IndependentOfClient(t *testing.T) {
	ctx := context.Background()
	store, svc, client, tech := newVisitFixture(t)

	v, err := svc.ScheduleVisit(ctx, client.ID, tech.ID, "", "", "instalación de cámaras", "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	// Changing the client address afterward must not touch the visit snapshot.
	client.Address = "Carrera 7 #45-10"
	if err := store.UpdateClient(ctx, client); err != nil {
		t.Fatalf("update client: %v", err)
	}
	got, err := store.Visit(v.ID)
	if err != nil {
		t.Fatalf("get visit: %v", err)
	}
	if got.Address != "Av. Siempre Viva 123" {
		t.Errorf("visit address re-synced to %q; snapshot must stay fixed", got.Address)
	}

	// And the visit address edits never flow back to the client.
	if _, err := svc.UpdateAddress(ctx, v.ID, "Bodega norte, módulo 3"); err != nil {
		t.Fatalf("update visit address: %v", err)
	}
	c, err := store.Client(client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if c.Address != "Carrera 7 #45-10" {
		t.Errorf("client address mutated to %q by a visit edit", c.Address)
	}
}

func TestVisitTransitionTable_Exhaustive(t *testing.T) {
	ctx := context.Background()
	all := []core.VisitStatus{core.VisitPending, core.VisitConfirmed, core.VisitInProgress, core.VisitCompleted, core.VisitCancelled}
	legal := map[core.VisitStatus]map[core.VisitStatus]bool{
		core.VisitPending:    {core.VisitConfirmed: true, core.VisitCancelled: true},
		core.VisitConfirmed:  {core.VisitInProgress: true, core.VisitCancelled: true},
		core.VisitInProgress: {core.VisitCompleted: true, core.VisitCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				store, svc, client, tech := newVisitFixture(t)
				v := visitInStatus(t, svc, client.ID, tech.ID, from)

				got, err := svc.TransitionStatus(ctx, v.ID, to)
				if legal[from][to] {
					if err != nil {
						t.Fatalf("legal transition failed: %v", err)
					}
					if got.Status != to {
						t.Fatalf("status = %s, want %s", got.Status, to)
					}
					return
				}
				if !errors.Is(err, core.ErrIllegalTransition) {
					t.Fatalf("err = %v, want ErrIllegalTransition", err)
				}
				after, getErr := store.Visit(v.ID)
				if getErr != nil {
					t.Fatalf("reload: %v", getErr)
				}
				if after.Status != from {
					t.Fatalf("failed transition mutated status: %s → %s", from, after.Status)
				}
			})
		}
	}
}

// visitInStatus walks a fresh visit into the requested state through legal moves.
func visitInStatus(t *testing.T, svc *core.VisitService, clientID, techID string, status core.VisitStatus) core.Visit {
	t.Helper()
	ctx := context.Background()
	v, err := svc.ScheduleVisit(ctx, clientID, techID, "", "", "revisión técnica", "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	var path []core.VisitStatus
	switch status {
	case core.VisitPending:
	case core.VisitConfirmed:
		path = []core.VisitStatus{core.VisitConfirmed}
	case core.VisitInProgress:
		path = []core.VisitStatus{core.VisitConfirmed, core.VisitInProgress}
	case core.VisitCompleted:
		path = []core.VisitStatus{core.VisitConfirmed, core.VisitInProgress, core.VisitCompleted}
	case core.VisitCancelled:
		path = []core.VisitStatus{core.VisitCancelled}
	}
	for _, step := range path {
		if v, err = svc.TransitionStatus(ctx, v.ID, step); err != nil {
			t.Fatalf("to %s: %v", step, err)
		}
	}
	return v
}

func TestVisitLifecycle_ReferenceScenario(t *testing.T) {
	ctx := context.Background()
	_, svc, client, tech := newVisitFixture(t)

	v, err := svc.ScheduleVisit(ctx, client.ID, tech.ID, "", "", "diagnóstico de red", "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := svc.TransitionStatus(ctx, v.ID, core.VisitConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := svc.TransitionStatus(ctx, v.ID, core.VisitPending); !errors.Is(err, core.ErrIllegalTransition) {
		t.Fatalf("back to Pending err = %v, want ErrIllegalTransition", err)
	}
}
