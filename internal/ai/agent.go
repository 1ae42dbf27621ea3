package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"fieldservice-agent/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

type AgentService interface {
	DraftQuote(ctx context.Context, naturalLanguage string, clientList string) (*core.DraftResponse, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// DraftQuote interprets a free-form request such as "cotiza 2 cámaras a 100 mil
// para la clínica" into a structured quote draft, or asks for clarification
// when the client or the priced items cannot be identified.
func (a *Agent) DraftQuote(ctx context.Context, naturalLanguage string, clientList string) (*core.DraftResponse, error) {
	prompt := fmt.Sprintf(`You are the sales assistant of a Colombian security-technology company.
Your goal is to interpret a quote request written in natural language (usually Spanish) and propose the quote line items.
Rules:
1. client_name MUST be one of the registered clients listed below, matched by its exact name.
2. Prices are in Colombian pesos. "100 mil" means 100000, "1.5 millones" means 1500000.
3. Amounts must be plain decimal strings (e.g. "100000").
4. service_types may only contain: Venta, Mantenimiento, Instalación.
5. If the client cannot be matched or no priced item can be extracted, return a clarification request instead of guessing.
6. Provide a confidence score (0.0-1.0) and explain your reasoning.

Registered clients:
%s

Request: %s`, clientList, naturalLanguage)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "quote_draft",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A proposed quote draft or a clarification request"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var out core.DraftResponse
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	if out.IsClarificationRequest {
		if out.Clarification == nil || out.Clarification.Message == "" {
			return nil, fmt.Errorf("clarification requested without a message")
		}
		return &out, nil
	}
	if out.Draft == nil {
		return nil, fmt.Errorf("response carried neither draft nor clarification")
	}
	out.Draft.Normalize()
	if err := out.Draft.Validate(); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}
	return &out, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.DraftResponse
	return reflector.Reflect(v)
}
