package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

const (
	ServerName    = "prompt-agent"
	ServerVersion = "1.0.0"
)

type Service interface {
	Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error)
	ListModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error)
}

// ListModelsOutput wraps the list so the tool output schema is an object.
type ListModelsOutput struct {
	Models []models.FoundationModel `json:"models" jsonschema:"foundation models matching the filter, sorted by id"`
}

func NewServer(service Service) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_model",
		Description: "Send a prompt to the configured Claude model on Bedrock. Transient failures are retried with quadratic backoff.",
	}, NewAskModelHandler(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_models",
		Description: "List the Bedrock foundation models available to the account, optionally filtered by provider or output modality",
	}, NewListModelsHandler(service))

	return server
}

// NewAskModelHandler returns a tool handler that runs one invocation.
// Pass the returned function to mcp.AddTool.
func NewAskModelHandler(service Service) func(context.Context, *mcp.CallToolRequest, models.PromptRequest) (*mcp.CallToolResult, models.PromptResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input models.PromptRequest) (*mcp.CallToolResult, models.PromptResult, error) {
		result, err := service.Execute(ctx, input)
		return nil, result, err
	}
}

func NewListModelsHandler(service Service) func(context.Context, *mcp.CallToolRequest, models.ModelFilter) (*mcp.CallToolResult, ListModelsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, filter models.ModelFilter) (*mcp.CallToolResult, ListModelsOutput, error) {
		list, err := service.ListModels(ctx, filter)
		if err != nil {
			return nil, ListModelsOutput{}, err
		}
		if list == nil {
			list = []models.FoundationModel{}
		}
		return nil, ListModelsOutput{Models: list}, nil
	}
}
