package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"fieldservice-agent/internal/adapters/cli"
	"fieldservice-agent/internal/adapters/repl"
	"fieldservice-agent/internal/ai"
	"fieldservice-agent/internal/app"
	"fieldservice-agent/internal/core"
	"fieldservice-agent/internal/pdf"
	"fieldservice-agent/internal/snapshot"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	persist, err := snapshot.Open(ctx)
	if err != nil {
		log.Fatalf("Unable to open snapshot store: %v", err)
	}
	store, err := core.NewStore(ctx, persist)
	if err != nil {
		log.Fatalf("Unable to load state: %v", err)
	}
	if persist != nil {
		defer func() {
			if err := persist.Close(); err != nil {
				log.Printf("snapshot store close: %v", err)
			}
		}()
	}

	var agent ai.AgentService
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; AI quote drafting disabled")
	} else {
		agent = ai.NewAgent(apiKey)
	}

	docs := pdf.New(
		os.Getenv("COMPANY_NAME"),
		os.Getenv("COMPANY_TAX_ID"),
		os.Getenv("COMPANY_BANK_INFO"),
	)
	svc := app.NewAppService(store, docs, agent)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
