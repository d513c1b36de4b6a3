package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

// MCPToolset runs the tool server as a child process and exposes its
// tools over stdio MCP. Close shuts the child down.
type MCPToolset struct {
	client *mcpclient.Client
}

var _ Toolset = (*MCPToolset)(nil)

// NewMCPToolset spawns the server command, connects and completes the
// protocol handshake.
func NewMCPToolset(ctx context.Context, command []string) (*MCPToolset, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty server command")
	}

	c, err := mcpclient.NewStdioMCPClient(command[0], nil, command[1:]...)
	if err != nil {
		return nil, fmt.Errorf("starting tool server: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "noaa-tides-agent",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initRequest)
	if err != nil {
		if closeErr := c.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Closing tool server after failed handshake")
		}
		return nil, fmt.Errorf("initializing tool server: %w", err)
	}

	log.Info().
		Str("server", initResult.ServerInfo.Name).
		Str("version", initResult.ServerInfo.Version).
		Msg("Connected to tool server")

	return &MCPToolset{client: c}, nil
}

// Tools lists the server's tools as LLM function definitions.
func (t *MCPToolset) Tools(ctx context.Context) ([]llms.Tool, error) {
	resp, err := t.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	tools := make([]llms.Tool, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		params := map[string]any{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		})
	}

	log.Debug().Int("tool_count", len(tools)).Msg("Fetched tools from server")

	return tools, nil
}

// Call invokes a named tool with the model-produced JSON arguments and
// returns the concatenated text payload.
func (t *MCPToolset) Call(ctx context.Context, name string, arguments string) (string, error) {
	args := map[string]any{}
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("decoding tool arguments: %w", err)
		}
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := t.client.CallTool(ctx, request)
	if err != nil {
		return "", fmt.Errorf("calling tool %s: %w", name, err)
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Close disconnects and stops the tool server process.
func (t *MCPToolset) Close() error {
	return t.client.Close()
}
