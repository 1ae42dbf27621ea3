package core_test

import (
	"errors"
	"testing"

	"fieldservice-agent/internal/core"
)

func validDraft() core.QuoteDraft {
	return core.QuoteDraft{
		ClientName:   "Clínica Salud Total",
		ServiceTypes: []string{"Instalación"},
		Items: []core.DraftItem{
			{Description: "Cámara domo 4MP", Quantity: 2, UnitPrice: "100000"},
		},
		LaborCost:  "30000",
		Confidence: 0.9,
	}
}

func TestDraftNormalize(t *testing.T) {
	d := core.QuoteDraft{
		ClientName: "  Clínica Salud Total  ",
		Items: []core.DraftItem{
			{Description: " Cámara ", Quantity: 1, UnitPrice: "null"},
		},
		LaborCost: "",
	}
	d.Normalize()
	if d.ClientName != "Clínica Salud Total" {
		t.Errorf("client name = %q", d.ClientName)
	}
	if d.Items[0].Description != "Cámara" {
		t.Errorf("description = %q", d.Items[0].Description)
	}
	if d.Items[0].UnitPrice != "0" {
		t.Errorf("null unit price should become 0, got %q", d.Items[0].UnitPrice)
	}
	if d.LaborCost != "0" {
		t.Errorf("empty labor cost should become 0, got %q", d.LaborCost)
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*core.QuoteDraft)
		wantErr error
	}{
		{"valid", func(d *core.QuoteDraft) {}, nil},
		{"no client", func(d *core.QuoteDraft) { d.ClientName = "" }, core.ErrUnknownReference},
		{"no items", func(d *core.QuoteDraft) { d.Items = nil }, core.ErrInvalidItem},
		{"blank item", func(d *core.QuoteDraft) { d.Items[0].Description = "" }, core.ErrInvalidItem},
		{"zero quantity", func(d *core.QuoteDraft) { d.Items[0].Quantity = 0 }, core.ErrInvalidItem},
		{"garbled price", func(d *core.QuoteDraft) { d.Items[0].UnitPrice = "cien mil" }, core.ErrInvalidAmount},
		{"negative price", func(d *core.QuoteDraft) { d.Items[0].UnitPrice = "-5" }, core.ErrInvalidAmount},
		{"garbled labor", func(d *core.QuoteDraft) { d.LaborCost = "n/a" }, core.ErrInvalidAmount},
		{"negative labor", func(d *core.QuoteDraft) { d.LaborCost = "-1" }, core.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseServiceType(t *testing.T) {
	tests := []struct {
		in   string
		want core.ServiceType
	}{
		{"venta", core.ServiceSale},
		{"VENTA", core.ServiceSale},
		{"Mantenimiento", core.ServiceMaintenance},
		{"instalacion", core.ServiceInstallation},
		{"Instalación", core.ServiceInstallation},
	}
	for _, tt := range tests {
		got, err := core.ParseServiceType(tt.in)
		if err != nil {
			t.Errorf("ParseServiceType(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseServiceType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := core.ParseServiceType("plomería"); !errors.Is(err, core.ErrInvalidItem) {
		t.Errorf("unknown type err = %v, want ErrInvalidItem", err)
	}
}

func TestParseStatuses(t *testing.T) {
	if got, err := core.ParseQuoteStatus("approved"); err != nil || got != core.QuoteApproved {
		t.Errorf("ParseQuoteStatus(approved) = %s, %v", got, err)
	}
	if got, err := core.ParseQuoteStatus("aprobada"); err != nil || got != core.QuoteApproved {
		t.Errorf("ParseQuoteStatus(aprobada) = %s, %v", got, err)
	}
	if _, err := core.ParseQuoteStatus("archived"); err == nil {
		t.Errorf("unknown quote status accepted")
	}
	if got, err := core.ParseVisitStatus("inprogress"); err != nil || got != core.VisitInProgress {
		t.Errorf("ParseVisitStatus(inprogress) = %s, %v", got, err)
	}
	if _, err := core.ParseVisitStatus("paused"); err == nil {
		t.Errorf("unknown visit status accepted")
	}
}
