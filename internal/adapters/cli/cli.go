package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"fieldservice-agent/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "draft", "d":
		if len(args) < 2 {
			log.Fatal("Usage: app draft \"<quote request>\"")
		}
		result, err := svc.DraftQuote(ctx, args[1])
		if err != nil {
			log.Fatalf("Agent error: %v", err)
		}
		if result.IsClarification {
			fmt.Fprintln(os.Stderr, "AI needs clarification:", result.ClarificationMessage)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Draft)

	case "quotes":
		result, err := svc.ListQuotes(ctx)
		if err != nil {
			log.Fatalf("Failed to list quotes: %v", err)
		}
		printJSON(result.Quotes)

	case "quote":
		if len(args) < 2 {
			log.Fatal("Usage: app quote <id-or-number>")
		}
		result, err := svc.GetQuote(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to get quote: %v", err)
		}
		printJSON(result.Quote)

	case "quote-pdf":
		if len(args) < 2 {
			log.Fatal("Usage: app quote-pdf <id-or-number>")
		}
		doc, err := svc.ExportQuotePDF(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to render quote: %v", err)
		}
		if err := os.WriteFile(doc.FileName, doc.Data, 0o600); err != nil {
			log.Fatalf("Failed to write %s: %v", doc.FileName, err)
		}
		fmt.Printf("Wrote %s (%d bytes).\n", doc.FileName, len(doc.Data))

	case "visits":
		result, err := svc.ListVisits(ctx)
		if err != nil {
			log.Fatalf("Failed to list visits: %v", err)
		}
		printJSON(result.Visits)

	case "maintenance":
		result, err := svc.ListMaintenance(ctx)
		if err != nil {
			log.Fatalf("Failed to list maintenance: %v", err)
		}
		printJSON(result.Alerts)

	case "summary":
		result, err := svc.GetSummary(ctx)
		if err != nil {
			log.Fatalf("Failed to build summary: %v", err)
		}
		fmt.Printf("Clients: %d\nTechnicians: %d\n", result.ClientCount, result.TechnicianCount)
		for status, n := range result.QuotesByStatus {
			fmt.Printf("Quotes %s: %d\n", status, n)
		}
		fmt.Printf("Open visits: %d\nReports: %d\nOverdue maintenance: %d\n",
			result.OpenVisits, result.ReportCount, result.OverdueMaintenance)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: draft, quotes, quote, quote-pdf, visits, maintenance, summary", args[0])
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
