package app

import "github.com/shopspring/decimal"

// CreateClientRequest is the input for registering a new client.
type CreateClientRequest struct {
	Name          string
	NIT           string
	Address       string
	Phone         string
	Email         string
	ContactPerson string
}

// UpdateClientRequest is the input for editing an existing client.
type UpdateClientRequest struct {
	ID            string
	Name          string
	NIT           string
	Address       string
	Phone         string
	Email         string
	ContactPerson string
}

// CreateTechnicianRequest is the input for registering a new technician.
type CreateTechnicianRequest struct {
	Name      string
	Specialty string
	Phone     string
	Email     string
}

// QuoteItemInput is a single line within a CreateQuoteRequest or AddQuoteItem.
type QuoteItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateQuoteRequest is the input for creating a new quote.
// Date is YYYY-MM-DD; empty means today. Status may be "Draft" or "Sent";
// empty means Draft. Blank text blocks receive the standard wording.
type CreateQuoteRequest struct {
	ClientID             string
	Date                 string
	ServiceTypes         []string
	Status               string
	Observations         string
	CommercialConditions string
	Items                []QuoteItemInput
	LaborCost            decimal.Decimal
}

// ScheduleVisitRequest is the input for booking a technician visit.
// Address empty means "snapshot the client's address".
type ScheduleVisitRequest struct {
	ClientID     string
	TechnicianID string
	Date         string // YYYY-MM-DD, empty means today
	Time         string // HH:MM, empty means 08:00
	Description  string
	Address      string
}

// CreateReportRequest is the input for recording an execution report.
// QuoteID is optional; when set it may be an id or a quote number and the
// quote must be Approved.
type CreateReportRequest struct {
	VisitID             string
	QuoteID             string
	Date                string // YYYY-MM-DD, empty means today
	Activities          string
	EquipmentIntervened string
	Observations        string
	WarrantyMonths      int
	ClientSignature     string
}

// RegisterSystemRequest is the input for enrolling a client system into the
// six-month preventive cycle.
type RegisterSystemRequest struct {
	ClientID            string
	SystemType          string
	LastMaintenanceDate string // YYYY-MM-DD, empty means today
}

// DraftQuoteRequest is a reviewed AI draft being committed as a real quote.
type DraftQuoteRequest struct {
	ClientName   string
	ServiceTypes []string
	Items        []QuoteItemInput
	LaborCost    decimal.Decimal
	Observations string
}
