package app

import (
	"context"
	"fmt"
	"strings"

	"fieldservice-agent/internal/ai"
	"fieldservice-agent/internal/core"
	"fieldservice-agent/internal/pdf"

	"github.com/shopspring/decimal"
)

type appService struct {
	store       *core.Store
	quotes      *core.QuoteService
	visits      *core.VisitService
	maintenance *core.MaintenanceService
	reports     *core.ReportService
	docs        *pdf.Generator
	agent       ai.AgentService // nil when no API key is configured
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(store *core.Store, docs *pdf.Generator, agent ai.AgentService) ApplicationService {
	return &appService{
		store:       store,
		quotes:      core.NewQuoteService(store),
		visits:      core.NewVisitService(store),
		maintenance: core.NewMaintenanceService(store),
		reports:     core.NewReportService(store),
		docs:        docs,
		agent:       agent,
	}
}

// ── clients & technicians ────────────────────────────────────────────────────

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	return &ClientListResult{Clients: s.store.Clients()}, nil
}

func (s *appService) GetClient(ctx context.Context, id string) (*ClientResult, error) {
	c, err := s.store.Client(id)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: &c}, nil
}

func (s *appService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResult, error) {
	c, err := s.store.RegisterClient(ctx, core.Client{
		Name:          req.Name,
		NIT:           req.NIT,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: &c}, nil
}

func (s *appService) UpdateClient(ctx context.Context, req UpdateClientRequest) (*ClientResult, error) {
	c := core.Client{
		ID:            req.ID,
		Name:          req.Name,
		NIT:           req.NIT,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
	}
	if err := s.store.UpdateClient(ctx, c); err != nil {
		return nil, err
	}
	return &ClientResult{Client: &c}, nil
}

func (s *appService) ListTechnicians(ctx context.Context) (*TechnicianListResult, error) {
	return &TechnicianListResult{Technicians: s.store.Technicians()}, nil
}

func (s *appService) CreateTechnician(ctx context.Context, req CreateTechnicianRequest) (*TechnicianResult, error) {
	t, err := s.store.RegisterTechnician(ctx, core.Technician{
		Name:      req.Name,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}
	return &TechnicianResult{Technician: &t}, nil
}

// ── quotes ───────────────────────────────────────────────────────────────────

func (s *appService) ListQuotes(ctx context.Context) (*QuoteListResult, error) {
	return &QuoteListResult{Quotes: s.store.Quotes(), ClientNames: s.clientNames()}, nil
}

func (s *appService) GetQuote(ctx context.Context, ref string) (*QuoteResult, error) {
	q, err := s.store.Quote(ref)
	if err != nil {
		return nil, err
	}
	return s.quoteResult(q), nil
}

func (s *appService) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResult, error) {
	types, err := parseServiceTypes(req.ServiceTypes)
	if err != nil {
		return nil, err
	}
	var status core.QuoteStatus
	if req.Status != "" {
		if status, err = core.ParseQuoteStatus(req.Status); err != nil {
			return nil, err
		}
	}
	q, err := s.quotes.CreateQuote(ctx, req.ClientID, req.Date, types, status, req.Observations, req.CommercialConditions)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if q, err = s.quotes.AddItem(ctx, q.ID, item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if !req.LaborCost.IsZero() {
		if q, err = s.quotes.SetLaborCost(ctx, q.ID, req.LaborCost); err != nil {
			return nil, err
		}
	}
	return s.quoteResult(q), nil
}

func (s *appService) AddQuoteItem(ctx context.Context, ref string, item QuoteItemInput) (*QuoteResult, error) {
	q, err := s.quotes.AddItem(ctx, ref, item.Description, item.Quantity, item.UnitPrice)
	if err != nil {
		return nil, err
	}
	return s.quoteResult(q), nil
}

func (s *appService) RemoveQuoteItem(ctx context.Context, ref, itemID string) (*QuoteResult, error) {
	q, err := s.quotes.RemoveItem(ctx, ref, itemID)
	if err != nil {
		return nil, err
	}
	return s.quoteResult(q), nil
}

func (s *appService) SetQuoteLaborCost(ctx context.Context, ref string, value decimal.Decimal) (*QuoteResult, error) {
	q, err := s.quotes.SetLaborCost(ctx, ref, value)
	if err != nil {
		return nil, err
	}
	return s.quoteResult(q), nil
}

func (s *appService) TransitionQuote(ctx context.Context, ref, status string) (*QuoteResult, error) {
	target, err := core.ParseQuoteStatus(status)
	if err != nil {
		return nil, err
	}
	q, err := s.quotes.TransitionStatus(ctx, ref, target)
	if err != nil {
		return nil, err
	}
	return s.quoteResult(q), nil
}

// ── visits ───────────────────────────────────────────────────────────────────

func (s *appService) ListVisits(ctx context.Context) (*VisitListResult, error) {
	return &VisitListResult{
		Visits:          s.store.Visits(),
		ClientNames:     s.clientNames(),
		TechnicianNames: s.technicianNames(),
	}, nil
}

func (s *appService) ScheduleVisit(ctx context.Context, req ScheduleVisitRequest) (*VisitResult, error) {
	v, err := s.visits.ScheduleVisit(ctx, req.ClientID, req.TechnicianID, req.Date, req.Time, req.Description, req.Address)
	if err != nil {
		return nil, err
	}
	return s.visitResult(v), nil
}

func (s *appService) TransitionVisit(ctx context.Context, id, status string) (*VisitResult, error) {
	target, err := core.ParseVisitStatus(status)
	if err != nil {
		return nil, err
	}
	v, err := s.visits.TransitionStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}
	return s.visitResult(v), nil
}

func (s *appService) UpdateVisitAddress(ctx context.Context, id, address string) (*VisitResult, error) {
	v, err := s.visits.UpdateAddress(ctx, id, address)
	if err != nil {
		return nil, err
	}
	return s.visitResult(v), nil
}

// ── reports ──────────────────────────────────────────────────────────────────

func (s *appService) ListReports(ctx context.Context) (*ReportListResult, error) {
	return &ReportListResult{Reports: s.store.Reports(), ClientNames: s.clientNames()}, nil
}

func (s *appService) GetReport(ctx context.Context, id string) (*ReportResult, error) {
	r, err := s.store.Report(id)
	if err != nil {
		return nil, err
	}
	return s.reportResult(r), nil
}

func (s *appService) CreateReport(ctx context.Context, req CreateReportRequest) (*ReportResult, error) {
	r, err := s.reports.CreateReport(ctx, core.ReportInput{
		VisitID:             req.VisitID,
		QuoteID:             req.QuoteID,
		Date:                req.Date,
		Activities:          req.Activities,
		EquipmentIntervened: req.EquipmentIntervened,
		Observations:        req.Observations,
		WarrantyMonths:      req.WarrantyMonths,
		ClientSignature:     req.ClientSignature,
	})
	if err != nil {
		return nil, err
	}
	return s.reportResult(r), nil
}

// ── maintenance ──────────────────────────────────────────────────────────────

func (s *appService) ListMaintenance(ctx context.Context) (*MaintenanceListResult, error) {
	return &MaintenanceListResult{
		Alerts:      s.maintenance.RefreshStatuses(ctx),
		ClientNames: s.clientNames(),
	}, nil
}

func (s *appService) RegisterSystem(ctx context.Context, req RegisterSystemRequest) (*MaintenanceResult, error) {
	a, err := s.maintenance.RegisterSystem(ctx, req.ClientID, req.SystemType, req.LastMaintenanceDate)
	if err != nil {
		return nil, err
	}
	return s.maintenanceResult(a), nil
}

func (s *appService) CompleteMaintenance(ctx context.Context, id, completionDate string) (*MaintenanceResult, error) {
	a, err := s.maintenance.CompleteCycle(ctx, id, completionDate)
	if err != nil {
		return nil, err
	}
	return s.maintenanceResult(a), nil
}

// ── dashboard ────────────────────────────────────────────────────────────────

func (s *appService) GetSummary(ctx context.Context) (*SummaryResult, error) {
	out := &SummaryResult{
		ClientCount:     len(s.store.Clients()),
		TechnicianCount: len(s.store.Technicians()),
		QuotesByStatus:  map[core.QuoteStatus]int{},
		ReportCount:     len(s.store.Reports()),
	}
	for _, q := range s.store.Quotes() {
		out.QuotesByStatus[q.Status]++
		if q.Status == core.QuoteApproved {
			out.ApprovedTotal = out.ApprovedTotal.Add(q.Total)
		}
	}
	for _, v := range s.store.Visits() {
		if !v.Status.Terminal() {
			out.OpenVisits++
		}
	}
	for _, a := range s.maintenance.RefreshStatuses(ctx) {
		if a.Status == core.MaintenanceOverdue {
			out.OverdueMaintenance++
		}
	}
	return out, nil
}

// ── documents & messages ─────────────────────────────────────────────────────

func (s *appService) ExportQuotePDF(ctx context.Context, ref string) (*DocumentResult, error) {
	q, err := s.store.Quote(ref)
	if err != nil {
		return nil, err
	}
	client, err := s.store.Client(q.ClientID)
	if err != nil {
		return nil, err
	}
	data, err := s.docs.QuotePDF(q, client)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{FileName: fmt.Sprintf("cotizacion-%s.pdf", q.Number), Data: data}, nil
}

func (s *appService) ExportReportPDF(ctx context.Context, id string) (*DocumentResult, error) {
	r, err := s.store.Report(id)
	if err != nil {
		return nil, err
	}
	visit, err := s.store.Visit(r.VisitID)
	if err != nil {
		return nil, err
	}
	client, err := s.store.Client(r.ClientID)
	if err != nil {
		return nil, err
	}
	tech, err := s.store.Technician(visit.TechnicianID)
	if err != nil {
		return nil, err
	}
	data, err := s.docs.ReportPDF(r, visit, client, tech)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{FileName: fmt.Sprintf("informe-%s.pdf", r.Date), Data: data}, nil
}

func (s *appService) QuoteShareMessage(ctx context.Context, ref string) (*MessageResult, error) {
	q, err := s.store.Quote(ref)
	if err != nil {
		return nil, err
	}
	client, err := s.store.Client(q.ClientID)
	if err != nil {
		return nil, err
	}
	return &MessageResult{Text: pdf.QuoteMessage(q, client, s.docs.CompanyName)}, nil
}

func (s *appService) MaintenanceReminderMessage(ctx context.Context, id string) (*MessageResult, error) {
	a, err := s.store.MaintenanceAlert(id)
	if err != nil {
		return nil, err
	}
	client, err := s.store.Client(a.ClientID)
	if err != nil {
		return nil, err
	}
	return &MessageResult{Text: pdf.MaintenanceReminder(a, client, s.docs.CompanyName)}, nil
}

// ── AI drafting ──────────────────────────────────────────────────────────────

func (s *appService) DraftQuote(ctx context.Context, text string) (*AIQuoteResult, error) {
	if s.agent == nil {
		return nil, fmt.Errorf("AI drafting disabled: OPENAI_API_KEY not set")
	}
	var list strings.Builder
	for _, c := range s.store.Clients() {
		fmt.Fprintf(&list, "- %s\n", c.Name)
	}
	resp, err := s.agent.DraftQuote(ctx, text, list.String())
	if err != nil {
		return nil, err
	}
	if resp.IsClarificationRequest {
		return &AIQuoteResult{IsClarification: true, ClarificationMessage: resp.Clarification.Message}, nil
	}
	return &AIQuoteResult{Draft: resp.Draft}, nil
}

func (s *appService) CommitDraft(ctx context.Context, draft DraftQuoteRequest) (*QuoteResult, error) {
	client, ok := s.findClientByName(draft.ClientName)
	if !ok {
		return nil, fmt.Errorf("%w: client %q", core.ErrUnknownReference, draft.ClientName)
	}
	req := CreateQuoteRequest{
		ClientID:     client.ID,
		ServiceTypes: draft.ServiceTypes,
		Items:        draft.Items,
		LaborCost:    draft.LaborCost,
		Observations: draft.Observations,
	}
	return s.CreateQuote(ctx, req)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *appService) findClientByName(name string) (core.Client, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, c := range s.store.Clients() {
		if strings.ToLower(c.Name) == want {
			return c, true
		}
	}
	return core.Client{}, false
}

func (s *appService) clientNames() map[string]string {
	out := map[string]string{}
	for _, c := range s.store.Clients() {
		out[c.ID] = c.Name
	}
	return out
}

func (s *appService) technicianNames() map[string]string {
	out := map[string]string{}
	for _, t := range s.store.Technicians() {
		out[t.ID] = t.Name
	}
	return out
}

func (s *appService) quoteResult(q core.Quote) *QuoteResult {
	name := ""
	if c, err := s.store.Client(q.ClientID); err == nil {
		name = c.Name
	}
	return &QuoteResult{Quote: &q, ClientName: name}
}

func (s *appService) visitResult(v core.Visit) *VisitResult {
	out := &VisitResult{Visit: &v}
	if c, err := s.store.Client(v.ClientID); err == nil {
		out.ClientName = c.Name
	}
	if t, err := s.store.Technician(v.TechnicianID); err == nil {
		out.TechnicianName = t.Name
	}
	return out
}

func (s *appService) reportResult(r core.ExecutionReport) *ReportResult {
	name := ""
	if c, err := s.store.Client(r.ClientID); err == nil {
		name = c.Name
	}
	return &ReportResult{Report: &r, ClientName: name}
}

func (s *appService) maintenanceResult(a core.MaintenanceAlert) *MaintenanceResult {
	name := ""
	if c, err := s.store.Client(a.ClientID); err == nil {
		name = c.Name
	}
	return &MaintenanceResult{Alert: &a, ClientName: name}
}

func parseServiceTypes(in []string) ([]core.ServiceType, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]core.ServiceType, 0, len(in))
	for _, s := range in {
		st, err := core.ParseServiceType(s)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}
