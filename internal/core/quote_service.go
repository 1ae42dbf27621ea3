package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteService owns every mutation of quotes and their line items. It is the
// only path through which derived totals are written, so they can never drift
// from the items and labor cost they are computed from.
type QuoteService struct {
	store *Store
}

func NewQuoteService(store *Store) *QuoteService {
	return &QuoteService{store: store}
}

// CreateQuote registers a new quote for an existing client. Status may be
// Draft or Sent; empty means Draft. Blank observation and condition texts
// receive the standard defaults.
func (s *QuoteService) CreateQuote(ctx context.Context, clientID, date string, serviceTypes []ServiceType, status QuoteStatus, observations, conditions string) (Quote, error) {
	if status == "" {
		status = QuoteStatusDraft
	}
	if status != QuoteStatusDraft && status != QuoteSent {
		return Quote{}, fmt.Errorf("%w: a quote starts as Draft or Sent, not %s", ErrIllegalTransition, status)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.findClient(clientID) == nil {
		return Quote{}, fmt.Errorf("%w: client %s", ErrUnknownReference, clientID)
	}
	if date == "" {
		date = st.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return Quote{}, fmt.Errorf("%w: quote date %q", ErrInvalidDate, date)
	}
	if strings.TrimSpace(observations) == "" {
		observations = DefaultQuoteObservations
	}
	if strings.TrimSpace(conditions) == "" {
		conditions = DefaultCommercialConditions
	}

	q := Quote{
		ID:                   st.newID(),
		Number:               st.nextQuoteNumber(),
		ClientID:             clientID,
		Date:                 date,
		ServiceTypes:         append([]ServiceType(nil), serviceTypes...),
		Status:               status,
		Observations:         observations,
		CommercialConditions: conditions,
	}
	recompute(&q)
	st.quotes = append(st.quotes, q)
	st.flush(ctx)
	return cloneQuote(q), nil
}

// AddItem appends a line item and recomputes all derived fields.
func (s *QuoteService) AddItem(ctx context.Context, quoteRef, description string, quantity int, unitPrice decimal.Decimal) (Quote, error) {
	if strings.TrimSpace(description) == "" {
		return Quote{}, fmt.Errorf("%w: description must not be empty", ErrInvalidItem)
	}
	if quantity <= 0 {
		return Quote{}, fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidItem, quantity)
	}
	if unitPrice.IsNegative() {
		return Quote{}, fmt.Errorf("%w: unit price must not be negative, got %s", ErrInvalidItem, unitPrice)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	q, err := s.mutableQuote(quoteRef)
	if err != nil {
		return Quote{}, err
	}
	q.Items = append(q.Items, QuoteItem{
		ID:          st.newID(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	recompute(q)
	st.flush(ctx)
	return cloneQuote(*q), nil
}

// RemoveItem deletes a line item if present; an unknown item id is a no-op.
func (s *QuoteService) RemoveItem(ctx context.Context, quoteRef, itemID string) (Quote, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	q, err := s.mutableQuote(quoteRef)
	if err != nil {
		return Quote{}, err
	}
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			recompute(q)
			st.flush(ctx)
			break
		}
	}
	return cloneQuote(*q), nil
}

// SetLaborCost replaces the labor cost and recomputes all derived fields.
func (s *QuoteService) SetLaborCost(ctx context.Context, quoteRef string, value decimal.Decimal) (Quote, error) {
	if value.IsNegative() {
		return Quote{}, fmt.Errorf("%w: labor cost must not be negative, got %s", ErrInvalidAmount, value)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	q, err := s.mutableQuote(quoteRef)
	if err != nil {
		return Quote{}, err
	}
	q.LaborCost = value
	recompute(q)
	st.flush(ctx)
	return cloneQuote(*q), nil
}

// TransitionStatus applies one of the legal lifecycle moves:
// Draft→Sent, Sent→Approved, Sent→Rejected. Anything else fails and leaves
// the quote untouched.
func (s *QuoteService) TransitionStatus(ctx context.Context, quoteRef string, target QuoteStatus) (Quote, error) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	q := st.findQuote(quoteRef)
	if q == nil {
		return Quote{}, fmt.Errorf("%w: quote %s", ErrNotFound, quoteRef)
	}
	if q.Status.Terminal() {
		return Quote{}, fmt.Errorf("%w (%w): quote %s is %s", ErrQuoteLocked, ErrIllegalTransition, q.Number, q.Status)
	}
	if !transitionAllowed(quoteTransitions[q.Status], target) {
		return Quote{}, fmt.Errorf("%w: quote %s cannot move %s → %s", ErrIllegalTransition, q.Number, q.Status, target)
	}
	q.Status = target
	st.flush(ctx)
	return cloneQuote(*q), nil
}

// mutableQuote resolves a quote for item/labor mutation, rejecting terminal ones.
// Must be called with the store lock held.
func (s *QuoteService) mutableQuote(ref string) (*Quote, error) {
	q := s.store.findQuote(ref)
	if q == nil {
		return nil, fmt.Errorf("%w: quote %s", ErrNotFound, ref)
	}
	if q.Status.Terminal() {
		return nil, fmt.Errorf("%w: quote %s is %s", ErrQuoteLocked, q.Number, q.Status)
	}
	return q, nil
}

// recompute derives all four monetary fields from items and labor cost.
// Applied on every mutation so stored values are never stale:
//
//	subtotalItems   = Σ quantity × unitPrice
//	subtotalGeneral = subtotalItems + laborCost
//	iva             = subtotalGeneral × 0.19
//	total           = subtotalGeneral + iva
func recompute(q *Quote) {
	subtotal := decimal.Zero
	for _, it := range q.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	q.SubtotalItems = subtotal
	q.SubtotalGeneral = subtotal.Add(q.LaborCost)
	q.IVA = q.SubtotalGeneral.Mul(IVARate)
	q.Total = q.SubtotalGeneral.Add(q.IVA)
}

func transitionAllowed[S ~string](targets []S, target S) bool {
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}
