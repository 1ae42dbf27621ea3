package core_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fieldservice-agent/internal/core"

	"github.com/shopspring/decimal"
)

// jsonSnapshotStore keeps the latest snapshot as marshaled JSON, forcing every
// Load through the same codec the real persistence adapters use.
type jsonSnapshotStore struct {
	data    []byte
	saveErr error
	saves   int
}

func (f *jsonSnapshotStore) Load(ctx context.Context) (*core.Snapshot, error) {
	if f.data == nil {
		return nil, nil
	}
	var snap core.Snapshot
	if err := json.Unmarshal(f.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (f *jsonSnapshotStore) Save(ctx context.Context, snap core.Snapshot) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	f.data = data
	return nil
}

func (f *jsonSnapshotStore) Close() error { return nil }

func TestNewStore_SeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	persist := &jsonSnapshotStore{}

	store, err := core.NewStore(ctx, persist)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if len(store.Clients()) == 0 {
		t.Errorf("first run should seed clients")
	}
	if len(store.Technicians()) == 0 {
		t.Errorf("first run should seed technicians")
	}
	if persist.saves == 0 {
		t.Errorf("seed snapshot was never flushed")
	}
}

func TestStore_RoundTripThroughSnapshot(t *testing.T) {
	ctx := context.Background()
	persist := &jsonSnapshotStore{}

	store, err := core.NewStore(ctx, persist)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	client := store.Clients()[0]
	tech := store.Technicians()[0]

	quotes := core.NewQuoteService(store)
	q, err := quotes.CreateQuote(ctx, client.ID, "2026-08-20", []core.ServiceType{core.ServiceSale}, core.QuoteStatusDraft, "", "")
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if _, err := quotes.AddItem(ctx, q.ID, "Sensor de movimiento", 4, decimal.NewFromInt(85000)); err != nil {
		t.Fatalf("add item: %v", err)
	}
	visits := core.NewVisitService(store)
	v, err := visits.ScheduleVisit(ctx, client.ID, tech.ID, "2026-09-02", "14:00", "instalación de sensores", "")
	if err != nil {
		t.Fatalf("schedule visit: %v", err)
	}
	if _, err := core.NewReportService(store).CreateReport(ctx, core.ReportInput{
		VisitID:    v.ID,
		Activities: "Instalación y pruebas de 4 sensores.",
	}); err != nil {
		t.Fatalf("create report: %v", err)
	}
	if _, err := core.NewMaintenanceService(store).RegisterSystem(ctx, client.ID, "Alarma", "2026-03-01"); err != nil {
		t.Fatalf("register system: %v", err)
	}

	// A fresh store over the same persistence must reconstruct identical state.
	reloaded, err := core.NewStore(ctx, persist)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	before, err := json.Marshal(store.Export())
	if err != nil {
		t.Fatalf("marshal original: %v", err)
	}
	after, err := json.Marshal(reloaded.Export())
	if err != nil {
		t.Fatalf("marshal reloaded: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("snapshot round trip changed state:\n before: %s\n after:  %s", before, after)
	}

	got, err := reloaded.Quote(q.Number)
	if err != nil {
		t.Fatalf("quote by number after reload: %v", err)
	}
	if !got.Total.Equal(decimal.NewFromInt(404600)) {
		t.Errorf("reloaded total = %s, want 404600", got.Total)
	}
}

func TestStore_SaveFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	persist := &jsonSnapshotStore{saveErr: errors.New("disk full")}

	store, err := core.NewStore(ctx, persist)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	c, err := store.RegisterClient(ctx, core.Client{Name: "Parqueadero Central"})
	if err != nil {
		t.Fatalf("register despite save failure: %v", err)
	}
	if _, err := store.Client(c.ID); err != nil {
		t.Fatalf("client missing after failed save: %v", err)
	}
}

func TestStore_RegistrationValidation(t *testing.T) {
	ctx := context.Background()
	store := core.NewMemStore()

	if _, err := store.RegisterClient(ctx, core.Client{Name: "  "}); !errors.Is(err, core.ErrInvalidItem) {
		t.Errorf("blank client name err = %v, want ErrInvalidItem", err)
	}
	if _, err := store.RegisterTechnician(ctx, core.Technician{}); !errors.Is(err, core.ErrInvalidItem) {
		t.Errorf("blank technician name err = %v, want ErrInvalidItem", err)
	}
	if err := store.UpdateClient(ctx, core.Client{ID: "ghost", Name: "X"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("update unknown client err = %v, want ErrNotFound", err)
	}
	if err := store.UpdateTechnician(ctx, core.Technician{ID: "ghost", Name: "X"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("update unknown technician err = %v, want ErrNotFound", err)
	}
	if _, err := store.Quote("2099-1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown quote err = %v, want ErrNotFound", err)
	}
}
