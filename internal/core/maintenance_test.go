package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice-agent/internal/core"
)

func newMaintenanceFixture(t *testing.T) (*core.Store, *core.MaintenanceService, core.Client) {
	t.Helper()
	store := core.NewMemStore()
	client, err := store.RegisterClient(context.Background(), core.Client{Name: "Clínica Salud Total"})
	if err != nil {
		t.Fatalf("register client: %v", err)
	}
	return store, core.NewMaintenanceService(store), client
}

func TestRegisterSystem_SchedulesSixMonthsOut(t *testing.T) {
	ctx := context.Background()
	_, svc, client := newMaintenanceFixture(t)

	a, err := svc.RegisterSystem(ctx, client.ID, "CCTV", "2024-01-31")
	if err != nil {
		t.Fatalf("register system: %v", err)
	}
	if a.NextMaintenanceDate != "2024-07-31" {
		t.Errorf("next = %s, want 2024-07-31", a.NextMaintenanceDate)
	}

	if _, err := svc.RegisterSystem(ctx, "ghost", "CCTV", ""); !errors.Is(err, core.ErrUnknownReference) {
		t.Errorf("unknown client err = %v, want ErrUnknownReference", err)
	}
	if _, err := svc.RegisterSystem(ctx, client.ID, "  ", ""); !errors.Is(err, core.ErrInvalidItem) {
		t.Errorf("blank system err = %v, want ErrInvalidItem", err)
	}
	if _, err := svc.RegisterSystem(ctx, client.ID, "CCTV", "31/01/2024"); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
}

func TestCompleteCycle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		last       string
		completion string
		wantNext   string
		wantErr    error
	}{
		{"reference scenario", "2024-01-31", "2024-01-31", "2024-07-31", nil},
		{"month-end clamp into February", "2024-01-15", "2024-08-31", "2025-02-28", nil},
		{"leap-year February", "2023-06-15", "2023-08-31", "2024-02-29", nil},
		{"mid-month preserved", "2024-01-10", "2024-03-14", "2024-09-14", nil},
		{"completion before last service", "2024-05-01", "2024-04-30", "", core.ErrInvalidDate},
		{"unparseable completion", "2024-05-01", "mayo 1", "", core.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc, client := newMaintenanceFixture(t)
			a, err := svc.RegisterSystem(ctx, client.ID, "Red de datos", tt.last)
			if err != nil {
				t.Fatalf("register: %v", err)
			}

			got, err := svc.CompleteCycle(ctx, a.ID, tt.completion)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("complete: %v", err)
			}
			if got.LastMaintenanceDate != tt.completion {
				t.Errorf("last = %s, want %s", got.LastMaintenanceDate, tt.completion)
			}
			if got.NextMaintenanceDate != tt.wantNext {
				t.Errorf("next = %s, want %s", got.NextMaintenanceDate, tt.wantNext)
			}
			if got.Status != core.MaintenanceUpcoming {
				t.Errorf("status = %s, want Upcoming (Done never rests)", got.Status)
			}
		})
	}
}

func TestCompleteCycle_Idempotent(t *testing.T) {
	ctx := context.Background()
	_, svc, client := newMaintenanceFixture(t)

	a, err := svc.RegisterSystem(ctx, client.ID, "CCTV", "2024-01-31")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	first, err := svc.CompleteCycle(ctx, a.ID, "2024-07-15")
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	second, err := svc.CompleteCycle(ctx, a.ID, "2024-07-15")
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if first.NextMaintenanceDate != second.NextMaintenanceDate {
		t.Errorf("repeated completion drifted: %s then %s", first.NextMaintenanceDate, second.NextMaintenanceDate)
	}
	if second.NextMaintenanceDate != "2025-01-15" {
		t.Errorf("next = %s, want 2025-01-15", second.NextMaintenanceDate)
	}
}

func TestDeriveStatus(t *testing.T) {
	day := func(s string) time.Time {
		t.Helper()
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name  string
		today string
		next  string
		want  core.MaintenanceStatus
	}{
		{"well before due", "2024-01-01", "2024-06-01", core.MaintenanceUpcoming},
		{"on the due date", "2024-06-01", "2024-06-01", core.MaintenanceUpcoming},
		{"day after due", "2024-06-02", "2024-06-01", core.MaintenanceOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.DeriveStatus(day(tt.today), day(tt.next)); got != tt.want {
				t.Errorf("DeriveStatus(%s, %s) = %s, want %s", tt.today, tt.next, got, tt.want)
			}
		})
	}
}

func TestRefreshStatuses_NormalizesAll(t *testing.T) {
	ctx := context.Background()
	_, svc, client := newMaintenanceFixture(t)

	overdue, err := svc.RegisterSystem(ctx, client.ID, "CCTV", "2020-01-01")
	if err != nil {
		t.Fatalf("register overdue: %v", err)
	}
	upcoming, err := svc.RegisterSystem(ctx, client.ID, "Control de acceso", time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("register upcoming: %v", err)
	}

	alerts := svc.RefreshStatuses(ctx)
	byID := map[string]core.MaintenanceStatus{}
	for _, a := range alerts {
		byID[a.ID] = a.Status
	}
	if byID[overdue.ID] != core.MaintenanceOverdue {
		t.Errorf("stale alert status = %s, want Overdue", byID[overdue.ID])
	}
	if byID[upcoming.ID] != core.MaintenanceUpcoming {
		t.Errorf("fresh alert status = %s, want Upcoming", byID[upcoming.ID])
	}
}
