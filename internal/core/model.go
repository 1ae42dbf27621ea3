package core

import "github.com/shopspring/decimal"

// IVARate is the fixed Colombian VAT rate applied to every quote.
// It is a business policy constant, not per-quote configuration.
var IVARate = decimal.NewFromFloat(0.19)

// MaintenanceIntervalMonths is the fixed preventive-maintenance cycle length.
const MaintenanceIntervalMonths = 6

type ServiceType string

const (
	ServiceSale         ServiceType = "Venta"
	ServiceMaintenance  ServiceType = "Mantenimiento"
	ServiceInstallation ServiceType = "Instalación"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "Draft"
	QuoteSent     QuoteStatus = "Sent"
	QuoteApproved QuoteStatus = "Approved"
	QuoteRejected QuoteStatus = "Rejected"
)

// quoteTransitions is the exhaustive legality table for quote status changes.
// Approved and Rejected are terminal and deliberately absent as keys.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteSent},
	QuoteSent:  {QuoteApproved, QuoteRejected},
}

// Terminal reports whether no further status change or mutation is allowed.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteApproved || s == QuoteRejected
}

type VisitStatus string

const (
	VisitPending    VisitStatus = "Pending"
	VisitConfirmed  VisitStatus = "Confirmed"
	VisitInProgress VisitStatus = "InProgress"
	VisitCompleted  VisitStatus = "Completed"
	VisitCancelled  VisitStatus = "Cancelled"
)

// visitTransitions encodes the monotonic Pending → Confirmed → InProgress → Completed
// progression, with Cancelled reachable from any non-terminal state.
var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitPending:    {VisitConfirmed, VisitCancelled},
	VisitConfirmed:  {VisitInProgress, VisitCancelled},
	VisitInProgress: {VisitCompleted, VisitCancelled},
}

// Terminal reports whether the visit has reached a final state.
func (s VisitStatus) Terminal() bool {
	return s == VisitCompleted || s == VisitCancelled
}

type MaintenanceStatus string

const (
	MaintenanceUpcoming MaintenanceStatus = "Upcoming"
	MaintenanceOverdue  MaintenanceStatus = "Overdue"
	// MaintenanceDone is a momentary confirmation only. CompleteCycle immediately
	// reschedules to Upcoming; Done survives in snapshots written by older data
	// and is normalized away by the next scheduling pass.
	MaintenanceDone MaintenanceStatus = "Done"
)

type Client struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NIT           string `json:"nit"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
}

type Technician struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// QuoteItem is a single priced line owned by exactly one quote.
type QuoteItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// LineTotal returns quantity × unit price.
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Quote is a priced proposal for a client. The four derived fields are always
// recomputed from Items and LaborCost inside the quote service before the store
// persists; they are never writable by callers.
type Quote struct {
	ID                   string          `json:"id"`
	Number               string          `json:"number"`
	ClientID             string          `json:"clientId"`
	Date                 string          `json:"date"` // YYYY-MM-DD
	ServiceTypes         []ServiceType   `json:"serviceTypes"`
	Items                []QuoteItem     `json:"items"`
	LaborCost            decimal.Decimal `json:"laborCost"`
	SubtotalItems        decimal.Decimal `json:"subtotalItems"`
	SubtotalGeneral      decimal.Decimal `json:"subtotalGeneral"`
	IVA                  decimal.Decimal `json:"iva"`
	Total                decimal.Decimal `json:"total"`
	Status               QuoteStatus     `json:"status"`
	Observations         string          `json:"observations,omitempty"`
	CommercialConditions string          `json:"commercialConditions,omitempty"`
}

type Visit struct {
	ID           string      `json:"id"`
	ClientID     string      `json:"clientId"`
	TechnicianID string      `json:"technicianId"`
	Date         string      `json:"date"` // YYYY-MM-DD
	Time         string      `json:"time"` // HH:MM
	Description  string      `json:"description"`
	Status       VisitStatus `json:"status"`
	// Address is snapshotted from the client at creation time and independently
	// editable afterward; it is never re-synced from the client record.
	Address string `json:"address"`
}

// ExecutionReport records work actually performed during a visit. ClientID is a
// denormalized copy of the visit's client, fixed at creation. QuoteID, when set,
// is immutable proof of which approved proposal authorized the work.
type ExecutionReport struct {
	ID                  string `json:"id"`
	VisitID             string `json:"visitId"`
	ClientID            string `json:"clientId"`
	QuoteID             string `json:"quoteId,omitempty"`
	Date                string `json:"date"` // YYYY-MM-DD
	Activities          string `json:"activities"`
	EquipmentIntervened string `json:"equipmentIntervened"`
	Observations        string `json:"observations"`
	WarrantyMonths      int    `json:"warrantyMonths"`
	ClientSignature     string `json:"clientSignature,omitempty"`
}

type MaintenanceAlert struct {
	ID                  string            `json:"id"`
	ClientID            string            `json:"clientId"`
	SystemType          string            `json:"systemType"`
	LastMaintenanceDate string            `json:"lastMaintenanceDate"` // YYYY-MM-DD
	NextMaintenanceDate string            `json:"nextMaintenanceDate"` // YYYY-MM-DD
	Status              MaintenanceStatus `json:"status"`
}

// Snapshot is the full persisted state of the record store: all six collections.
// Field names match the original data file layout for round-trip fidelity.
type Snapshot struct {
	Clients     []Client           `json:"clients"`
	Technicians []Technician       `json:"technicians"`
	Quotes      []Quote            `json:"quotes"`
	Visits      []Visit            `json:"visits"`
	Reports     []ExecutionReport  `json:"reports"`
	Maintenance []MaintenanceAlert `json:"maintenance"`
}

// Default free-text blocks applied when a quote is created with blank texts.
const (
	DefaultQuoteObservations = "- Cliente suministra todos los accesos requeridos de altura, escaleras, manlift, andamios, etc.\n" +
		"- No incluye recargo de trabajo nocturno, ni presencia de personal siso, de ser necesario o requerido, el costo será asumido por el cliente.\n" +
		"- Tiempo de trabajo estimado: 7 días.\n" +
		"- No incluye canaletas, tuberías y puntos de corriente."

	DefaultCommercialConditions = "Moneda: Pesos colombianos\n" +
		"Forma de pago: 50% anticipo – 50% contra entrega\n" +
		"Vigencia: 15 días\n" +
		"Garantía: Un (1) año en equipos.\n" +
		"Entrega: Sujeta a disponibilidad."
)

// DefaultSnapshot returns the seed state used when the persistence collaborator
// has no prior snapshot: the two standing clients and two technicians the
// business operated with before this system existed.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Clients: []Client{
			{ID: "1", Name: "Clínica Salud Total", NIT: "900.123.456-1", Address: "Calle 100 #15-20", Phone: "3001234567", Email: "mantenimiento@saludtotal.com", ContactPerson: "Ing. Carlos Ruiz"},
			{ID: "2", Name: "Edificio Horizonte", NIT: "800.987.654-2", Address: "Av. Siempre Viva 123", Phone: "3117654321", Email: "admin@horizonte.com", ContactPerson: "Marta Lucia"},
		},
		Technicians: []Technician{
			{ID: "t1", Name: "Juan Pérez", Specialty: "CCTV y Seguridad", Phone: "3001112233", Email: "juan.perez@sitec.com"},
			{ID: "t2", Name: "Andrés Gómez", Specialty: "Redes y Telecomunicaciones", Phone: "3004445566", Email: "andres.gomez@sitec.com"},
		},
	}
}
