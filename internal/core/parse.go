package core

import (
	"fmt"
	"strings"
)

// ParseServiceType matches user input to a service category, accepting
// case-insensitive and accent-free spellings.
func ParseServiceType(s string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "venta", "sale":
		return ServiceSale, nil
	case "mantenimiento", "maintenance":
		return ServiceMaintenance, nil
	case "instalación", "instalacion", "installation":
		return ServiceInstallation, nil
	}
	return "", fmt.Errorf("%w: service type %q", ErrInvalidItem, s)
}

// ParseQuoteStatus matches user input to a quote status.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft", "borrador":
		return QuoteStatusDraft, nil
	case "sent", "enviada":
		return QuoteSent, nil
	case "approved", "aprobada":
		return QuoteApproved, nil
	case "rejected", "rechazada":
		return QuoteRejected, nil
	}
	return "", fmt.Errorf("%w: quote status %q", ErrIllegalTransition, s)
}

// ParseVisitStatus matches user input to a visit status.
func ParseVisitStatus(s string) (VisitStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendiente":
		return VisitPending, nil
	case "confirmed", "confirmada":
		return VisitConfirmed, nil
	case "inprogress", "in-progress", "en-curso", "encurso":
		return VisitInProgress, nil
	case "completed", "completada":
		return VisitCompleted, nil
	case "cancelled", "canceled", "cancelada":
		return VisitCancelled, nil
	}
	return "", fmt.Errorf("%w: visit status %q", ErrIllegalTransition, s)
}
