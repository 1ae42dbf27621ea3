package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ListClients returns all registered clients.
	ListClients(ctx context.Context) (*ClientListResult, error)

	// GetClient returns a single client by id.
	GetClient(ctx context.Context, id string) (*ClientResult, error)

	// CreateClient registers a new client.
	CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResult, error)

	// UpdateClient replaces the stored client with the same id.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*ClientResult, error)

	// ListTechnicians returns all registered technicians.
	ListTechnicians(ctx context.Context) (*TechnicianListResult, error)

	// CreateTechnician registers a new technician.
	CreateTechnician(ctx context.Context, req CreateTechnicianRequest) (*TechnicianResult, error)

	// ListQuotes returns all quotes with client names resolved for display.
	ListQuotes(ctx context.Context) (*QuoteListResult, error)

	// GetQuote resolves a quote by opaque id or human number such as "2026-3".
	GetQuote(ctx context.Context, ref string) (*QuoteResult, error)

	// CreateQuote creates a quote, applying its initial items and labor cost.
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResult, error)

	// AddQuoteItem appends a priced line to an editable quote.
	AddQuoteItem(ctx context.Context, ref string, item QuoteItemInput) (*QuoteResult, error)

	// RemoveQuoteItem removes a line from an editable quote.
	RemoveQuoteItem(ctx context.Context, ref, itemID string) (*QuoteResult, error)

	// SetQuoteLaborCost replaces the labor cost of an editable quote.
	SetQuoteLaborCost(ctx context.Context, ref string, value decimal.Decimal) (*QuoteResult, error)

	// TransitionQuote moves a quote along Draft → Sent → Approved/Rejected.
	TransitionQuote(ctx context.Context, ref, status string) (*QuoteResult, error)

	// ListVisits returns all visits with client and technician names resolved.
	ListVisits(ctx context.Context) (*VisitListResult, error)

	// ScheduleVisit books a technician visit for a client.
	ScheduleVisit(ctx context.Context, req ScheduleVisitRequest) (*VisitResult, error)

	// TransitionVisit moves a visit along its lifecycle.
	TransitionVisit(ctx context.Context, id, status string) (*VisitResult, error)

	// UpdateVisitAddress edits the visit's address snapshot.
	UpdateVisitAddress(ctx context.Context, id, address string) (*VisitResult, error)

	// ListReports returns all execution reports.
	ListReports(ctx context.Context) (*ReportListResult, error)

	// GetReport returns a single execution report by id.
	GetReport(ctx context.Context, id string) (*ReportResult, error)

	// CreateReport records the work performed during a visit.
	CreateReport(ctx context.Context, req CreateReportRequest) (*ReportResult, error)

	// ListMaintenance re-derives every alert status and returns all alerts.
	ListMaintenance(ctx context.Context) (*MaintenanceListResult, error)

	// RegisterSystem enrolls a client system into the preventive cycle.
	RegisterSystem(ctx context.Context, req RegisterSystemRequest) (*MaintenanceResult, error)

	// CompleteMaintenance records a completed service and reschedules six months out.
	CompleteMaintenance(ctx context.Context, id, completionDate string) (*MaintenanceResult, error)

	// GetSummary returns the dashboard counters.
	GetSummary(ctx context.Context) (*SummaryResult, error)

	// ExportQuotePDF renders a quote as a PDF document.
	ExportQuotePDF(ctx context.Context, ref string) (*DocumentResult, error)

	// ExportReportPDF renders an execution report as a PDF document.
	ExportReportPDF(ctx context.Context, id string) (*DocumentResult, error)

	// QuoteShareMessage builds the text the operator forwards with a quote.
	QuoteShareMessage(ctx context.Context, ref string) (*MessageResult, error)

	// MaintenanceReminderMessage builds the preventive-maintenance follow-up text.
	MaintenanceReminderMessage(ctx context.Context, id string) (*MessageResult, error)

	// DraftQuote sends a natural language request to the AI agent and returns
	// either a quote draft for review or a clarification request.
	DraftQuote(ctx context.Context, text string) (*AIQuoteResult, error)

	// CommitDraft turns a reviewed AI draft into a real Draft quote.
	CommitDraft(ctx context.Context, draft DraftQuoteRequest) (*QuoteResult, error)
}
