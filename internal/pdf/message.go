package pdf

import (
	"fmt"
	"strings"

	"fieldservice-agent/internal/core"

	"github.com/shopspring/decimal"
)

// FormatCOP renders an amount in Colombian peso style: no decimals, dot as
// the thousands separator, e.g. $ 1.234.500.
func FormatCOP(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "$ -" + b.String()
	}
	return "$ " + b.String()
}

// QuoteMessage builds the text the operator forwards to the client together
// with the quote document.
func QuoteMessage(q core.Quote, client core.Client, companyName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Buen día %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Adjuntamos la cotización %s del %s:\n\n", q.Number, q.Date)
	for _, it := range q.Items {
		fmt.Fprintf(&b, "• %s x%d — %s\n", it.Description, it.Quantity, FormatCOP(it.LineTotal()))
	}
	if !q.LaborCost.IsZero() {
		fmt.Fprintf(&b, "• Mano de obra — %s\n", FormatCOP(q.LaborCost))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\nIVA 19%%: %s\n*Total: %s*\n\n", FormatCOP(q.SubtotalGeneral), FormatCOP(q.IVA), FormatCOP(q.Total))
	fmt.Fprintf(&b, "Quedamos atentos a su aprobación.\n%s", companyName)
	return b.String()
}

// MaintenanceReminder builds the text for a preventive-maintenance follow-up.
func MaintenanceReminder(a core.MaintenanceAlert, client core.Client, companyName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Buen día %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Le recordamos que el mantenimiento preventivo de su sistema %s está programado para el %s", a.SystemType, a.NextMaintenanceDate)
	if a.Status == core.MaintenanceOverdue {
		b.WriteString(" y se encuentra vencido")
	}
	fmt.Fprintf(&b, ". El último servicio se realizó el %s.\n\n", a.LastMaintenanceDate)
	fmt.Fprintf(&b, "¿Le agendamos la visita?\n%s", companyName)
	return b.String()
}
