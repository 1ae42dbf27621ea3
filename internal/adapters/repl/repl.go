package repl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"fieldservice-agent/internal/app"

	"github.com/shopspring/decimal"
)

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes natural language input through the AI quote-drafting agent.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("Field Service Agent")
	fmt.Println("Describe a quote in plain language, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "clients":
			result, err := svc.ListClients(ctx)
			if err != nil {
				return err
			}
			printClients(result)

		case "new-client":
			handleNewClient(ctx, reader, svc)

		case "techs", "technicians":
			result, err := svc.ListTechnicians(ctx)
			if err != nil {
				return err
			}
			printTechnicians(result)

		case "new-tech":
			handleNewTechnician(ctx, reader, svc)

		case "quotes":
			result, err := svc.ListQuotes(ctx)
			if err != nil {
				return err
			}
			printQuotes(result)

		case "quote":
			if len(args) < 1 {
				fmt.Println("Usage: /quote <id-or-number>")
				return nil
			}
			result, err := svc.GetQuote(ctx, args[0])
			if err != nil {
				return err
			}
			printQuoteDetail(result)

		case "new-quote":
			if len(args) < 1 {
				fmt.Println("Usage: /new-quote <client-id>")
				return nil
			}
			handleNewQuote(ctx, reader, svc, args[0])

		case "add-item":
			// Usage: /add-item <quote-ref> <qty> <unit-price> <description...>
			if len(args) < 4 {
				fmt.Println("Usage: /add-item <quote-ref> <qty> <unit-price> <description...>")
				return nil
			}
			qty, err := parsePositiveInt(args[1])
			if err != nil {
				fmt.Printf("Invalid quantity: %s\n", args[1])
				return nil
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil || price.IsNegative() {
				fmt.Printf("Invalid unit price: %s\n", args[2])
				return nil
			}
			result, err := svc.AddQuoteItem(ctx, args[0], app.QuoteItemInput{
				Description: strings.Join(args[3:], " "),
				Quantity:    qty,
				UnitPrice:   price,
			})
			if err != nil {
				return err
			}
			printQuoteDetail(result)

		case "remove-item":
			if len(args) < 2 {
				fmt.Println("Usage: /remove-item <quote-ref> <item-id>")
				return nil
			}
			result, err := svc.RemoveQuoteItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printQuoteDetail(result)

		case "labor":
			if len(args) < 2 {
				fmt.Println("Usage: /labor <quote-ref> <value>")
				return nil
			}
			value, err := decimal.NewFromString(args[1])
			if err != nil {
				fmt.Printf("Invalid value: %s\n", args[1])
				return nil
			}
			result, err := svc.SetQuoteLaborCost(ctx, args[0], value)
			if err != nil {
				return err
			}
			printQuoteDetail(result)

		case "send", "approve", "reject":
			if len(args) < 1 {
				fmt.Printf("Usage: /%s <quote-ref>\n", cmd)
				return nil
			}
			target := map[string]string{"send": "Sent", "approve": "Approved", "reject": "Rejected"}[cmd]
			result, err := svc.TransitionQuote(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Printf("Quote %s is now %s.\n", result.Quote.Number, result.Quote.Status)

		case "quote-pdf":
			if len(args) < 1 {
				fmt.Println("Usage: /quote-pdf <quote-ref>")
				return nil
			}
			doc, err := svc.ExportQuotePDF(ctx, args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(doc.FileName, doc.Data, 0o600); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes).\n", doc.FileName, len(doc.Data))

		case "quote-msg":
			if len(args) < 1 {
				fmt.Println("Usage: /quote-msg <quote-ref>")
				return nil
			}
			msg, err := svc.QuoteShareMessage(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(msg.Text)

		case "visits":
			result, err := svc.ListVisits(ctx)
			if err != nil {
				return err
			}
			printVisits(result)

		case "new-visit":
			if len(args) < 2 {
				fmt.Println("Usage: /new-visit <client-id> <technician-id>")
				return nil
			}
			handleNewVisit(ctx, reader, svc, args[0], args[1])

		case "visit-status":
			if len(args) < 2 {
				fmt.Println("Usage: /visit-status <visit-id> <pending|confirmed|inprogress|completed|cancelled>")
				return nil
			}
			result, err := svc.TransitionVisit(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Visit for %s is now %s.\n", result.ClientName, result.Visit.Status)

		case "visit-address":
			if len(args) < 2 {
				fmt.Println("Usage: /visit-address <visit-id> <address...>")
				return nil
			}
			result, err := svc.UpdateVisitAddress(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Printf("Visit address updated: %s\n", result.Visit.Address)

		case "reports":
			result, err := svc.ListReports(ctx)
			if err != nil {
				return err
			}
			printReports(result)

		case "new-report":
			if len(args) < 1 {
				fmt.Println("Usage: /new-report <visit-id>")
				return nil
			}
			handleNewReport(ctx, reader, svc, args[0])

		case "report-pdf":
			if len(args) < 1 {
				fmt.Println("Usage: /report-pdf <report-id>")
				return nil
			}
			doc, err := svc.ExportReportPDF(ctx, args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(doc.FileName, doc.Data, 0o600); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes).\n", doc.FileName, len(doc.Data))

		case "maintenance", "mant":
			result, err := svc.ListMaintenance(ctx)
			if err != nil {
				return err
			}
			printMaintenance(result)

		case "new-system":
			// Usage: /new-system <client-id> <last-date|-> <system-type...>
			if len(args) < 3 {
				fmt.Println("Usage: /new-system <client-id> <last-date|-> <system-type...>")
				fmt.Println("  Example: /new-system 1 2026-03-01 CCTV")
				fmt.Println("  Use '-' as the date for today.")
				return nil
			}
			last := args[1]
			if last == "-" {
				last = ""
			}
			result, err := svc.RegisterSystem(ctx, app.RegisterSystemRequest{
				ClientID:            args[0],
				SystemType:          strings.Join(args[2:], " "),
				LastMaintenanceDate: last,
			})
			if err != nil {
				return err
			}
			fmt.Printf("System %s registered for %s. Next maintenance: %s.\n",
				result.Alert.SystemType, result.ClientName, result.Alert.NextMaintenanceDate)

		case "complete":
			if len(args) < 1 {
				fmt.Println("Usage: /complete <alert-id> [completion-date]")
				return nil
			}
			date := ""
			if len(args) >= 2 {
				date = args[1]
			}
			result, err := svc.CompleteMaintenance(ctx, args[0], date)
			if err != nil {
				return err
			}
			fmt.Printf("Maintenance recorded. Next cycle due %s.\n", result.Alert.NextMaintenanceDate)

		case "reminder":
			if len(args) < 1 {
				fmt.Println("Usage: /reminder <alert-id>")
				return nil
			}
			msg, err := svc.MaintenanceReminderMessage(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(msg.Text)

		case "summary", "dash":
			result, err := svc.GetSummary(ctx)
			if err != nil {
				return err
			}
			printSummary(result)

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher, no AI invoked.
		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					fmt.Println("Goodbye!")
					break
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// No slash prefix → route to AI agent.
		fmt.Println("[AI] Processing...")
		accumulatedInput := input

		rounds := 0
		for {
			rounds++
			if rounds > 3 {
				fmt.Println("Could not produce a draft. Try /new-quote instead — type /help.")
				break
			}

			result, err := svc.DraftQuote(ctx, accumulatedInput)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				break
			}

			if result.IsClarification {
				fmt.Printf("\n[AI]: %s\n", result.ClarificationMessage)
				fmt.Print("> ")
				userFollowUp, _ := reader.ReadString('\n')
				userFollowUp = strings.TrimSpace(userFollowUp)

				// Slash command during clarification — cancel AI flow and execute it.
				if strings.HasPrefix(userFollowUp, "/") {
					fmt.Println("(AI session cancelled)")
					if dispErr := dispatchSlash(userFollowUp); dispErr != nil {
						if dispErr == errExit {
							fmt.Println("Goodbye!")
							return
						}
						fmt.Printf("Error: %v\n", dispErr)
					}
					break
				}

				if userFollowUp == "" || strings.ToLower(userFollowUp) == "cancel" {
					fmt.Println("Cancelled.")
					break
				}
				accumulatedInput = fmt.Sprintf("Original request: %s\nClarification requested: %s\nUser response: %s",
					accumulatedInput, result.ClarificationMessage, userFollowUp)
				fmt.Println("[AI] Thinking...")
				continue
			}

			draft := result.Draft
			printDraft(draft)

			if draft.Confidence < 0.6 {
				fmt.Println("\nWARNING: Low confidence draft.")
			}

			fmt.Print("\nCreate this quote? (y/n): ")
			choice, _ := reader.ReadString('\n')
			choice = strings.TrimSpace(strings.ToLower(choice))

			if choice == "y" || choice == "yes" {
				req, err := draftToRequest(draft)
				if err != nil {
					fmt.Printf("Quote FAILED: %v\n", err)
					break
				}
				created, err := svc.CommitDraft(ctx, req)
				if err != nil {
					fmt.Printf("Quote FAILED: %v\n", err)
				} else {
					fmt.Printf("Quote %s created as Draft.\n", created.Quote.Number)
					printQuoteDetail(created)
				}
			} else {
				fmt.Println("Draft discarded.")
			}
			break
		}
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}
