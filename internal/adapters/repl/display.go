package repl

import (
	"fmt"
	"strings"
	"time"

	"fieldservice-agent/internal/app"
	"fieldservice-agent/internal/core"
	"fieldservice-agent/internal/pdf"
)

func printClients(result *app.ClientListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Println("  CLIENTS")
	fmt.Println(strings.Repeat("=", 78))
	if len(result.Clients) == 0 {
		fmt.Println("  No clients registered.")
		fmt.Println(strings.Repeat("=", 78))
		return
	}
	fmt.Printf("  %-8s %-26s %-16s %-12s %s\n", "ID", "NAME", "NIT", "PHONE", "CONTACT")
	fmt.Println(strings.Repeat("-", 78))
	for _, c := range result.Clients {
		fmt.Printf("  %-8s %-26s %-16s %-12s %s\n", c.ID, c.Name, c.NIT, c.Phone, c.ContactPerson)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printTechnicians(result *app.TechnicianListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("  TECHNICIANS")
	fmt.Println(strings.Repeat("=", 72))
	if len(result.Technicians) == 0 {
		fmt.Println("  No technicians registered.")
		fmt.Println(strings.Repeat("=", 72))
		return
	}
	fmt.Printf("  %-8s %-22s %-28s %s\n", "ID", "NAME", "SPECIALTY", "PHONE")
	fmt.Println(strings.Repeat("-", 72))
	for _, t := range result.Technicians {
		fmt.Printf("  %-8s %-22s %-28s %s\n", t.ID, t.Name, t.Specialty, t.Phone)
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printQuotes(result *app.QuoteListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("  QUOTES")
	fmt.Println(strings.Repeat("=", 80))
	if len(result.Quotes) == 0 {
		fmt.Println("  No quotes yet.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-10s %-24s %-10s %-12s %14s\n", "NUMBER", "CLIENT", "DATE", "STATUS", "TOTAL")
	fmt.Println(strings.Repeat("-", 80))
	for _, q := range result.Quotes {
		fmt.Printf("  %-10s %-24s %-10s %-12s %14s\n",
			q.Number, result.ClientNames[q.ClientID], q.Date, q.Status, pdf.FormatCOP(q.Total))
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printQuoteDetail(result *app.QuoteResult) {
	q := result.Quote
	fmt.Println()
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("  Quote:    %s\n", q.Number)
	fmt.Printf("  Client:   %s\n", result.ClientName)
	fmt.Printf("  Date:     %s\n", q.Date)
	fmt.Printf("  Status:   %s\n", q.Status)
	if len(q.ServiceTypes) > 0 {
		types := make([]string, len(q.ServiceTypes))
		for i, st := range q.ServiceTypes {
			types[i] = string(st)
		}
		fmt.Printf("  Service:  %s\n", strings.Join(types, ", "))
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("  %-10s %-32s %5s %14s\n", "ITEM", "DESCRIPTION", "QTY", "TOTAL")
	fmt.Println(strings.Repeat("-", 70))
	for _, it := range q.Items {
		fmt.Printf("  %-10s %-32s %5d %14s\n", shortID(it.ID), it.Description, it.Quantity, pdf.FormatCOP(it.LineTotal()))
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("  %-49s %14s\n", "Subtotal items", pdf.FormatCOP(q.SubtotalItems))
	fmt.Printf("  %-49s %14s\n", "Labor", pdf.FormatCOP(q.LaborCost))
	fmt.Printf("  %-49s %14s\n", "Subtotal", pdf.FormatCOP(q.SubtotalGeneral))
	fmt.Printf("  %-49s %14s\n", "IVA 19%", pdf.FormatCOP(q.IVA))
	fmt.Printf("  %-49s %14s\n", "TOTAL", pdf.FormatCOP(q.Total))
	fmt.Println(strings.Repeat("-", 70))
}

func printVisits(result *app.VisitListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 86))
	fmt.Println("  VISITS")
	fmt.Println(strings.Repeat("=", 86))
	if len(result.Visits) == 0 {
		fmt.Println("  No visits scheduled.")
		fmt.Println(strings.Repeat("=", 86))
		return
	}
	fmt.Printf("  %-10s %-10s %-6s %-22s %-18s %-12s\n", "ID", "DATE", "TIME", "CLIENT", "TECHNICIAN", "STATUS")
	fmt.Println(strings.Repeat("-", 86))
	for _, v := range result.Visits {
		fmt.Printf("  %-10s %-10s %-6s %-22s %-18s %-12s\n",
			shortID(v.ID), v.Date, v.Time, result.ClientNames[v.ClientID], result.TechnicianNames[v.TechnicianID], v.Status)
	}
	fmt.Println(strings.Repeat("=", 86))
}

func printReports(result *app.ReportListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("  EXECUTION REPORTS")
	fmt.Println(strings.Repeat("=", 80))
	if len(result.Reports) == 0 {
		fmt.Println("  No reports recorded.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-10s %-10s %-24s %-9s %s\n", "ID", "DATE", "CLIENT", "WARRANTY", "ACTIVITIES")
	fmt.Println(strings.Repeat("-", 80))
	for _, r := range result.Reports {
		warranty := "-"
		if r.WarrantyMonths > 0 {
			warranty = fmt.Sprintf("%d mo", r.WarrantyMonths)
		}
		fmt.Printf("  %-10s %-10s %-24s %-9s %s\n",
			shortID(r.ID), r.Date, result.ClientNames[r.ClientID], warranty, truncate(r.Activities, 28))
	}
	fmt.Println(strings.Repeat("=", 80))
}

// dueSoonDays is the look-ahead window flagged in the maintenance listing.
const dueSoonDays = 15

func printMaintenance(result *app.MaintenanceListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 84))
	fmt.Println("  MAINTENANCE ALERTS")
	fmt.Println(strings.Repeat("=", 84))
	if len(result.Alerts) == 0 {
		fmt.Println("  No systems enrolled.")
		fmt.Println(strings.Repeat("=", 84))
		return
	}
	fmt.Printf("  %-10s %-22s %-20s %-12s %-10s %s\n", "ID", "CLIENT", "SYSTEM", "NEXT DUE", "STATUS", "")
	fmt.Println(strings.Repeat("-", 84))
	today := time.Now()
	for _, a := range result.Alerts {
		flag := ""
		if a.Status == core.MaintenanceOverdue {
			flag = "!! OVERDUE"
		} else if due, err := time.Parse("2006-01-02", a.NextMaintenanceDate); err == nil {
			if days := int(due.Sub(today).Hours() / 24); days >= 0 && days <= dueSoonDays {
				flag = fmt.Sprintf("due in %d days", days)
			}
		}
		fmt.Printf("  %-10s %-22s %-20s %-12s %-10s %s\n",
			shortID(a.ID), result.ClientNames[a.ClientID], a.SystemType, a.NextMaintenanceDate, a.Status, flag)
	}
	fmt.Println(strings.Repeat("=", 84))
}

func printSummary(result *app.SummaryResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 56))
	fmt.Println("  SUMMARY")
	fmt.Println(strings.Repeat("=", 56))
	fmt.Printf("  Clients:             %d\n", result.ClientCount)
	fmt.Printf("  Technicians:         %d\n", result.TechnicianCount)
	for _, status := range []core.QuoteStatus{core.QuoteStatusDraft, core.QuoteSent, core.QuoteApproved, core.QuoteRejected} {
		if n := result.QuotesByStatus[status]; n > 0 {
			fmt.Printf("  Quotes %-13s %d\n", string(status)+":", n)
		}
	}
	fmt.Printf("  Approved total:      %s\n", pdf.FormatCOP(result.ApprovedTotal))
	fmt.Printf("  Open visits:         %d\n", result.OpenVisits)
	fmt.Printf("  Reports:             %d\n", result.ReportCount)
	fmt.Printf("  Overdue maintenance: %d\n", result.OverdueMaintenance)
	fmt.Println(strings.Repeat("=", 56))
}

func printDraft(d *core.QuoteDraft) {
	fmt.Printf("\nCLIENT:     %s\n", d.ClientName)
	if len(d.ServiceTypes) > 0 {
		fmt.Printf("SERVICE:    %s\n", strings.Join(d.ServiceTypes, ", "))
	}
	fmt.Printf("REASONING:  %s\n", d.Reasoning)
	fmt.Printf("CONFIDENCE: %.2f\n", d.Confidence)
	fmt.Println("ITEMS:")
	for _, it := range d.Items {
		fmt.Printf("  %-40s x%-4d @ %s\n", it.Description, it.Quantity, it.UnitPrice)
	}
	if d.LaborCost != "" && d.LaborCost != "0" {
		fmt.Printf("LABOR:      %s\n", d.LaborCost)
	}
}

func printHelp() {
	fmt.Println(`
Commands:
  /clients                                        list clients
  /new-client                                     register a client
  /techs                                          list technicians
  /new-tech                                       register a technician

  /quotes                                         list quotes
  /quote <ref>                                    show one quote
  /new-quote <client-id>                          create a quote interactively
  /add-item <ref> <qty> <price> <description...>  add a line
  /remove-item <ref> <item-id>                    remove a line
  /labor <ref> <value>                            set labor cost
  /send /approve /reject <ref>                    move the quote along
  /quote-pdf <ref>                                export as PDF
  /quote-msg <ref>                                share message

  /visits                                         list visits
  /new-visit <client-id> <tech-id>                schedule a visit
  /visit-status <id> <status>                     move the visit along
  /visit-address <id> <address...>                edit the visit address

  /reports                                        list execution reports
  /new-report <visit-id>                          record a report
  /report-pdf <id>                                export as PDF

  /maintenance                                    list alerts (statuses refreshed)
  /new-system <client-id> <last-date|-> <type...> enroll a system
  /complete <alert-id> [date]                     record a completed service
  /reminder <alert-id>                            follow-up message

  /summary                                        dashboard counters
  /exit                                           quit

Anything without a leading slash is sent to the AI quote assistant.`)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
