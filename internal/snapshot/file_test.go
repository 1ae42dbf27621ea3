package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"

	"fieldservice-agent/internal/core"
	"fieldservice-agent/internal/snapshot"

	"github.com/shopspring/decimal"
)

func sampleSnapshot() core.Snapshot {
	return core.Snapshot{
		Clients: []core.Client{{ID: "c1", Name: "Hotel Mirador", NIT: "900123456-7"}},
		Technicians: []core.Technician{
			{ID: "t1", Name: "Laura Díaz", Specialty: "Redes"},
		},
		Quotes: []core.Quote{{
			ID:       "q1",
			Number:   "2026-1",
			ClientID: "c1",
			Date:     "2026-08-20",
			Items: []core.QuoteItem{
				{ID: "i1", Description: "Punto de red certificado", Quantity: 6, UnitPrice: decimal.NewFromInt(45000)},
			},
			LaborCost:       decimal.NewFromInt(120000),
			SubtotalItems:   decimal.NewFromInt(270000),
			SubtotalGeneral: decimal.NewFromInt(390000),
			IVA:             decimal.NewFromInt(74100),
			Total:           decimal.NewFromInt(464100),
			Status:          core.QuoteSent,
		}},
		Visits: []core.Visit{{ID: "v1", ClientID: "c1", TechnicianID: "t1", Date: "2026-09-01", Time: "08:00", Description: "cableado", Status: core.VisitPending}},
		Maintenance: []core.MaintenanceAlert{{
			ID: "m1", ClientID: "c1", SystemType: "Red de datos",
			LastMaintenanceDate: "2026-03-01", NextMaintenanceDate: "2026-09-01",
			Status: core.MaintenanceUpcoming,
		}},
	}
}

func assertRoundTrip(t *testing.T, store core.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if first != nil {
		t.Fatalf("empty backend returned a snapshot")
	}

	want := sampleSnapshot()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatalf("saved snapshot not found")
	}
	if len(got.Clients) != 1 || got.Clients[0].Name != "Hotel Mirador" {
		t.Errorf("clients did not survive: %+v", got.Clients)
	}
	if len(got.Quotes) != 1 {
		t.Fatalf("quotes = %d, want 1", len(got.Quotes))
	}
	q := got.Quotes[0]
	if q.Number != "2026-1" || q.Status != core.QuoteSent {
		t.Errorf("quote identity lost: %+v", q)
	}
	if !q.Total.Equal(decimal.NewFromInt(464100)) {
		t.Errorf("total = %s, want 464100", q.Total)
	}
	if len(got.Maintenance) != 1 || got.Maintenance[0].NextMaintenanceDate != "2026-09-01" {
		t.Errorf("maintenance did not survive: %+v", got.Maintenance)
	}

	// A second save overwrites, not appends.
	want.Clients = append(want.Clients, core.Client{ID: "c2", Name: "Colegio San José"})
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Clients) != 2 {
		t.Errorf("clients after overwrite = %d, want 2", len(got.Clients))
	}

	if err := store.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := snapshot.NewFileStore(filepath.Join(t.TempDir(), "data", "state.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	assertRoundTrip(t, store)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := snapshot.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	assertRoundTrip(t, store)
}

func TestOpen_MemoryDriver(t *testing.T) {
	t.Setenv("FIELDSERVICE_STORE_DRIVER", "memory")
	store, err := snapshot.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store != nil {
		t.Errorf("memory driver must return a nil store")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Setenv("FIELDSERVICE_STORE_DRIVER", "cassette-tape")
	if _, err := snapshot.Open(context.Background()); err == nil {
		t.Fatalf("unknown driver accepted")
	}
}
