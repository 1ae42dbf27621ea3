package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ReportService ties execution reports to visits and, optionally, to the
// approved quote that authorized the work.
type ReportService struct {
	store *Store
}

func NewReportService(store *Store) *ReportService {
	return &ReportService{store: store}
}

// ReportInput carries the operator-supplied fields of a new execution report.
// ClientID is never part of the input: it is copied from the referenced visit
// at creation and fixed from then on.
type ReportInput struct {
	VisitID             string
	QuoteID             string // optional; must reference an Approved quote
	Date                string // YYYY-MM-DD, defaults to today
	Activities          string
	EquipmentIntervened string
	Observations        string
	WarrantyMonths      int
	ClientSignature     string
}

// CreateReport validates linkage rules and records the report. Creating a
// second report against the same visit is permitted.
func (s *ReportService) CreateReport(ctx context.Context, in ReportInput) (ExecutionReport, error) {
	if strings.TrimSpace(in.Activities) == "" {
		return ExecutionReport{}, ErrEmptyActivities
	}
	if in.WarrantyMonths < 0 {
		return ExecutionReport{}, fmt.Errorf("%w: warranty months must not be negative", ErrInvalidAmount)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	visit := st.findVisit(in.VisitID)
	if visit == nil {
		return ExecutionReport{}, fmt.Errorf("%w: visit %s", ErrUnknownReference, in.VisitID)
	}
	if in.QuoteID != "" {
		quote := st.findQuote(in.QuoteID)
		if quote == nil {
			return ExecutionReport{}, fmt.Errorf("%w: quote %s", ErrUnknownReference, in.QuoteID)
		}
		if quote.Status != QuoteApproved {
			return ExecutionReport{}, fmt.Errorf("%w: quote %s is %s", ErrQuoteNotApproved, quote.Number, quote.Status)
		}
		// Store the canonical id even when the caller passed the human number.
		in.QuoteID = quote.ID
	}

	date := in.Date
	if date == "" {
		date = st.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return ExecutionReport{}, fmt.Errorf("%w: report date %q", ErrInvalidDate, date)
	}

	r := ExecutionReport{
		ID:                  st.newID(),
		VisitID:             visit.ID,
		ClientID:            visit.ClientID,
		QuoteID:             in.QuoteID,
		Date:                date,
		Activities:          in.Activities,
		EquipmentIntervened: in.EquipmentIntervened,
		Observations:        in.Observations,
		WarrantyMonths:      in.WarrantyMonths,
		ClientSignature:     in.ClientSignature,
	}
	st.reports = append(st.reports, r)
	st.flush(ctx)
	return r, nil
}
