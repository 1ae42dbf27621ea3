package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DraftItem is a single proposed line in an AI-generated quote draft.
// Amounts are strings so the structured-output schema stays exact.
type DraftItem struct {
	Description string `json:"description" jsonschema_description:"Short description of the equipment or supply being quoted"`
	Quantity    int    `json:"quantity" jsonschema_description:"Number of units, always a positive integer"`
	UnitPrice   string `json:"unit_price" jsonschema_description:"Unit price in Colombian pesos as a plain decimal string, e.g. '100000'"`
}

// QuoteDraft is the AI-generated quote proposal. It is only a suggestion: the
// operator reviews it and the quote service applies the usual validation and
// derived-field computation when it is committed.
type QuoteDraft struct {
	ClientName   string      `json:"client_name" jsonschema_description:"The exact client name from the provided client list"`
	ServiceTypes []string    `json:"service_types" jsonschema_description:"Applicable service categories: Venta, Mantenimiento or Instalación"`
	Items        []DraftItem `json:"items" jsonschema_description:"Proposed line items, at least one"`
	LaborCost    string      `json:"labor_cost" jsonschema_description:"Labor cost in Colombian pesos as a plain decimal string; '0' if not mentioned"`
	Observations string      `json:"observations" jsonschema_description:"Technical observations to print on the quote; empty string to use the standard text"`
	Confidence   float64     `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning    string      `json:"reasoning" jsonschema_description:"Explanation of how the request was interpreted"`
}

// ClarificationRequest is returned by the AI when the request is missing
// critical information such as the client or any priced item.
type ClarificationRequest struct {
	Message string `json:"message" jsonschema_description:"A question asking the operator for the missing details"`
}

// DraftResponse wraps the AI output to branch between a usable draft and a
// clarification request. Exactly one of the two is set.
type DraftResponse struct {
	IsClarificationRequest bool                  `json:"is_clarification_request" jsonschema_description:"Set to true ONLY if you lack enough information to draft a quote"`
	Clarification          *ClarificationRequest `json:"clarification,omitempty" jsonschema_description:"Required if is_clarification_request is true"`
	Draft                  *QuoteDraft           `json:"draft,omitempty" jsonschema_description:"Required if is_clarification_request is false"`
}

// Normalize cleans up common LLM formatting issues before validation.
func (d *QuoteDraft) Normalize() {
	d.ClientName = strings.TrimSpace(d.ClientName)
	if v := strings.ToLower(strings.TrimSpace(d.LaborCost)); v == "" || v == "null" {
		d.LaborCost = "0"
	}
	for i := range d.Items {
		it := &d.Items[i]
		it.Description = strings.TrimSpace(it.Description)
		if v := strings.ToLower(strings.TrimSpace(it.UnitPrice)); v == "" || v == "null" {
			it.UnitPrice = "0"
		}
	}
}

// Validate enforces the same preconditions the quote service will apply, so a
// bad draft is rejected before the operator ever sees it.
func (d *QuoteDraft) Validate() error {
	if d.ClientName == "" {
		return fmt.Errorf("%w: draft must name a client", ErrUnknownReference)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: draft must contain at least one item", ErrInvalidItem)
	}
	for _, it := range d.Items {
		if it.Description == "" {
			return fmt.Errorf("%w: item description must not be empty", ErrInvalidItem)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be > 0 for %q", ErrInvalidItem, it.Description)
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return fmt.Errorf("%w: unit price %q for %q", ErrInvalidAmount, it.UnitPrice, it.Description)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: unit price must not be negative for %q", ErrInvalidAmount, it.Description)
		}
	}
	labor, err := decimal.NewFromString(d.LaborCost)
	if err != nil {
		return fmt.Errorf("%w: labor cost %q", ErrInvalidAmount, d.LaborCost)
	}
	if labor.IsNegative() {
		return fmt.Errorf("%w: labor cost must not be negative", ErrInvalidAmount)
	}
	return nil
}
