package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"fieldservice-agent/internal/app"
	"fieldservice-agent/internal/core"

	"github.com/shopspring/decimal"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	raw, _ := reader.ReadString('\n')
	return strings.TrimSpace(raw)
}

// handleNewClient runs an interactive client registration session.
func handleNewClient(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService) {
	name := prompt(reader, "Name: ")
	if name == "" {
		fmt.Println("Cancelled.")
		return
	}
	req := app.CreateClientRequest{
		Name:          name,
		NIT:           prompt(reader, "NIT (optional): "),
		Address:       prompt(reader, "Address: "),
		Phone:         prompt(reader, "Phone: "),
		Email:         prompt(reader, "Email: "),
		ContactPerson: prompt(reader, "Contact person: "),
	}
	result, err := svc.CreateClient(ctx, req)
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		return
	}
	fmt.Printf("Client registered with id %s.\n", result.Client.ID)
}

// handleNewTechnician runs an interactive technician registration session.
func handleNewTechnician(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService) {
	name := prompt(reader, "Name: ")
	if name == "" {
		fmt.Println("Cancelled.")
		return
	}
	result, err := svc.CreateTechnician(ctx, app.CreateTechnicianRequest{
		Name:      name,
		Specialty: prompt(reader, "Specialty: "),
		Phone:     prompt(reader, "Phone: "),
		Email:     prompt(reader, "Email: "),
	})
	if err != nil {
		fmt.Printf("Error creating technician: %v\n", err)
		return
	}
	fmt.Printf("Technician registered with id %s.\n", result.Technician.ID)
}

// handleNewQuote runs an interactive quote creation session.
func handleNewQuote(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, clientID string) {
	fmt.Printf("Creating quote for client: %s\n", clientID)
	fmt.Println("Enter items. Type 'done' when finished, 'cancel' to abort.")
	fmt.Println("Format per line: <quantity> <unit-price> <description...>")
	fmt.Println("  Example: 2 100000 Cámara domo 4MP")

	var items []app.QuoteItemInput
	lineNum := 1
	for {
		raw := prompt(reader, fmt.Sprintf("  Item %d: ", lineNum))
		if strings.ToLower(raw) == "cancel" {
			fmt.Println("Quote creation cancelled.")
			return
		}
		if strings.ToLower(raw) == "done" {
			break
		}
		if raw == "" {
			continue
		}

		parts := strings.Fields(raw)
		if len(parts) < 3 {
			fmt.Println("  Invalid format. Use: <quantity> <unit-price> <description...>")
			continue
		}
		qty, err := parsePositiveInt(parts[0])
		if err != nil {
			fmt.Println("  Invalid quantity.")
			continue
		}
		price, err := decimal.NewFromString(parts[1])
		if err != nil || price.IsNegative() {
			fmt.Println("  Invalid price.")
			continue
		}
		items = append(items, app.QuoteItemInput{
			Description: strings.Join(parts[2:], " "),
			Quantity:    qty,
			UnitPrice:   price,
		})
		lineNum++
	}

	var labor decimal.Decimal
	if raw := prompt(reader, "Labor cost (blank for 0): "); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			fmt.Println("Invalid labor cost. Quote not created.")
			return
		}
		labor = v
	}

	var types []string
	if raw := prompt(reader, "Service types (comma separated: venta, mantenimiento, instalacion): "); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				types = append(types, part)
			}
		}
	}

	result, err := svc.CreateQuote(ctx, app.CreateQuoteRequest{
		ClientID:     clientID,
		Date:         prompt(reader, "Date (YYYY-MM-DD, blank for today): "),
		ServiceTypes: types,
		Items:        items,
		LaborCost:    labor,
	})
	if err != nil {
		fmt.Printf("Error creating quote: %v\n", err)
		return
	}
	fmt.Printf("\nQuote %s created (Status: Draft)\n", result.Quote.Number)
	printQuoteDetail(result)
	fmt.Printf("Use '/send %s' when it is ready for the client.\n", result.Quote.Number)
}

// handleNewVisit runs an interactive visit scheduling session.
func handleNewVisit(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, clientID, technicianID string) {
	description := prompt(reader, "Description: ")
	if description == "" {
		fmt.Println("Cancelled.")
		return
	}
	result, err := svc.ScheduleVisit(ctx, app.ScheduleVisitRequest{
		ClientID:     clientID,
		TechnicianID: technicianID,
		Date:         prompt(reader, "Date (YYYY-MM-DD, blank for today): "),
		Time:         prompt(reader, "Time (HH:MM, blank for 08:00): "),
		Description:  description,
		Address:      prompt(reader, "Address (blank for client's address): "),
	})
	if err != nil {
		fmt.Printf("Error scheduling visit: %v\n", err)
		return
	}
	v := result.Visit
	fmt.Printf("Visit scheduled: %s %s at %s for %s with %s.\n",
		v.Date, v.Time, v.Address, result.ClientName, result.TechnicianName)
}

// handleNewReport runs an interactive report creation session.
func handleNewReport(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, visitID string) {
	activities := prompt(reader, "Activities performed: ")
	if activities == "" {
		fmt.Println("Cancelled.")
		return
	}
	req := app.CreateReportRequest{
		VisitID:             visitID,
		QuoteID:             prompt(reader, "Approved quote ref (optional): "),
		Date:                prompt(reader, "Date (YYYY-MM-DD, blank for today): "),
		Activities:          activities,
		EquipmentIntervened: prompt(reader, "Equipment intervened: "),
		Observations:        prompt(reader, "Observations: "),
		ClientSignature:     prompt(reader, "Received by (optional): "),
	}
	if raw := prompt(reader, "Warranty months (blank for 0): "); raw != "" {
		n, err := parsePositiveInt(raw)
		if err != nil {
			fmt.Println("Invalid warranty. Report not created.")
			return
		}
		req.WarrantyMonths = n
	}
	result, err := svc.CreateReport(ctx, req)
	if err != nil {
		fmt.Printf("Error creating report: %v\n", err)
		return
	}
	fmt.Printf("Report %s recorded for %s.\n", shortID(result.Report.ID), result.ClientName)
}

// draftToRequest converts a reviewed AI draft into a commit request, parsing
// the string amounts the structured-output schema carries.
func draftToRequest(d *core.QuoteDraft) (app.DraftQuoteRequest, error) {
	req := app.DraftQuoteRequest{
		ClientName:   d.ClientName,
		ServiceTypes: d.ServiceTypes,
		Observations: d.Observations,
	}
	for _, it := range d.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return app.DraftQuoteRequest{}, fmt.Errorf("unit price %q: %w", it.UnitPrice, err)
		}
		req.Items = append(req.Items, app.QuoteItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}
	labor, err := decimal.NewFromString(d.LaborCost)
	if err != nil {
		return app.DraftQuoteRequest{}, fmt.Errorf("labor cost %q: %w", d.LaborCost, err)
	}
	req.LaborCost = labor
	return req, nil
}
