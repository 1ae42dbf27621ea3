package pdf_test

import (
	"bytes"
	"strings"
	"testing"

	"fieldservice-agent/internal/core"
	"fieldservice-agent/internal/pdf"

	"github.com/shopspring/decimal"
)

func sampleQuote() (core.Quote, core.Client) {
	client := core.Client{ID: "c1", Name: "Clínica Salud Total", NIT: "900123456-7"}
	q := core.Quote{
		ID:       "q1",
		Number:   "2026-1",
		ClientID: client.ID,
		Date:     "2026-08-20",
		ServiceTypes: []core.ServiceType{
			core.ServiceInstallation,
		},
		Items: []core.QuoteItem{
			{ID: "i1", Description: "Cámara domo 4MP", Quantity: 2, UnitPrice: decimal.NewFromInt(100000)},
			{ID: "i2", Description: "Fuente regulada", Quantity: 1, UnitPrice: decimal.NewFromInt(50000)},
		},
		LaborCost:            decimal.NewFromInt(30000),
		SubtotalItems:        decimal.NewFromInt(250000),
		SubtotalGeneral:      decimal.NewFromInt(280000),
		IVA:                  decimal.NewFromInt(53200),
		Total:                decimal.NewFromInt(333200),
		Status:               core.QuoteSent,
		Observations:         core.DefaultQuoteObservations,
		CommercialConditions: core.DefaultCommercialConditions,
	}
	return q, client
}

func TestQuotePDF(t *testing.T) {
	g := pdf.New("SITEC Ingeniería", "901234567-8", "Bancolombia Ahorros 123-456789-01")
	q, client := sampleQuote()

	out, err := g.QuotePDF(q, client)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
	if len(out) < 1000 {
		t.Errorf("suspiciously small document: %d bytes", len(out))
	}
}

func TestReportPDF(t *testing.T) {
	g := pdf.New("", "", "")
	out, err := g.ReportPDF(
		core.ExecutionReport{
			ID: "r1", VisitID: "v1", ClientID: "c1", Date: "2026-08-25",
			Activities:          "Instalación de 2 cámaras domo y configuración del NVR.",
			EquipmentIntervened: "NVR Hikvision 8 canales",
			WarrantyMonths:      12,
			ClientSignature:     "María Rodríguez",
		},
		core.Visit{ID: "v1", Address: "Calle 100 #15-20", Date: "2026-08-25"},
		core.Client{ID: "c1", Name: "Clínica Salud Total"},
		core.Technician{ID: "t1", Name: "Juan Pérez"},
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$ 0"},
		{950, "$ 950"},
		{30000, "$ 30.000"},
		{333200, "$ 333.200"},
		{1234567, "$ 1.234.567"},
		{-50000, "$ -50.000"},
	}
	for _, tt := range tests {
		if got := pdf.FormatCOP(decimal.NewFromInt(tt.in)); got != tt.want {
			t.Errorf("FormatCOP(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteMessage(t *testing.T) {
	q, client := sampleQuote()
	msg := pdf.QuoteMessage(q, client, "SITEC Ingeniería")

	for _, want := range []string{
		"Clínica Salud Total",
		"cotización 2026-1",
		"Cámara domo 4MP x2",
		"*Total: $ 333.200*",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestMaintenanceReminder(t *testing.T) {
	a := core.MaintenanceAlert{
		SystemType:          "CCTV",
		LastMaintenanceDate: "2026-01-15",
		NextMaintenanceDate: "2026-07-15",
		Status:              core.MaintenanceOverdue,
	}
	msg := pdf.MaintenanceReminder(a, core.Client{Name: "Hotel Mirador"}, "SITEC Ingeniería")
	for _, want := range []string{"Hotel Mirador", "CCTV", "2026-07-15", "vencido", "2026-01-15"} {
		if !strings.Contains(msg, want) {
			t.Errorf("reminder missing %q:\n%s", want, msg)
		}
	}
}
