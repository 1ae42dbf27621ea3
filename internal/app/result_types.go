package app

import (
	"fieldservice-agent/internal/core"

	"github.com/shopspring/decimal"
)

// ClientResult is returned by single-client operations.
type ClientResult struct {
	Client *core.Client
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client
}

// TechnicianResult is returned by CreateTechnician.
type TechnicianResult struct {
	Technician *core.Technician
}

// TechnicianListResult is returned by ListTechnicians.
type TechnicianListResult struct {
	Technicians []core.Technician
}

// QuoteResult is returned by quote lifecycle operations.
type QuoteResult struct {
	Quote      *core.Quote
	ClientName string
}

// QuoteListResult is returned by ListQuotes. ClientNames maps client ids to
// display names for every quote in the list.
type QuoteListResult struct {
	Quotes      []core.Quote
	ClientNames map[string]string
}

// VisitResult is returned by visit lifecycle operations.
type VisitResult struct {
	Visit          *core.Visit
	ClientName     string
	TechnicianName string
}

// VisitListResult is returned by ListVisits.
type VisitListResult struct {
	Visits          []core.Visit
	ClientNames     map[string]string
	TechnicianNames map[string]string
}

// ReportResult is returned by report operations.
type ReportResult struct {
	Report     *core.ExecutionReport
	ClientName string
}

// ReportListResult is returned by ListReports.
type ReportListResult struct {
	Reports     []core.ExecutionReport
	ClientNames map[string]string
}

// MaintenanceResult is returned by maintenance operations.
type MaintenanceResult struct {
	Alert      *core.MaintenanceAlert
	ClientName string
}

// MaintenanceListResult is returned by ListMaintenance with statuses freshly
// re-derived.
type MaintenanceListResult struct {
	Alerts      []core.MaintenanceAlert
	ClientNames map[string]string
}

// SummaryResult is the dashboard snapshot.
type SummaryResult struct {
	ClientCount        int
	TechnicianCount    int
	QuotesByStatus     map[core.QuoteStatus]int
	ApprovedTotal      decimal.Decimal
	OpenVisits         int
	ReportCount        int
	OverdueMaintenance int
}

// DocumentResult carries a rendered file ready to write to disk.
type DocumentResult struct {
	FileName string
	Data     []byte
}

// MessageResult carries share-ready text.
type MessageResult struct {
	Text string
}

// AIQuoteResult is returned by DraftQuote.
type AIQuoteResult struct {
	Draft                *core.QuoteDraft
	ClarificationMessage string
	IsClarification      bool
}
