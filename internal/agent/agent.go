package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"

	"github.com/seanofahey/mcp-noaa-tides/internal/session"
)

// DefaultInstruction steers the model toward the tide tools.
const DefaultInstruction = `You are an agent that provides NOAA tide and water level information.
When asked about a location:
1. First use search_stations to find the appropriate station ID for the location
2. Then use get_tide_predictions to get the tide information
3. Format the response in a clear, readable way. For example listing just the next 2 high and low tides

Use the available tools to answer questions about tides, water levels, and station information.`

const defaultMaxSteps = 10

// Toolset is the tool transport the agent drives. Call takes the
// model-produced JSON argument string and returns the tool's text payload.
type Toolset interface {
	Tools(ctx context.Context) ([]llms.Tool, error)
	Call(ctx context.Context, name string, arguments string) (string, error)
}

type Agent struct {
	model       llms.Model
	toolset     Toolset
	instruction string
	maxSteps    int
}

type Option func(*Agent)

// WithInstruction overrides the system instruction.
func WithInstruction(instruction string) Option {
	return func(a *Agent) {
		a.instruction = instruction
	}
}

// WithMaxSteps bounds the tool-calling loop.
func WithMaxSteps(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxSteps = n
		}
	}
}

func New(model llms.Model, toolset Toolset, opts ...Option) *Agent {
	a := &Agent{
		model:       model,
		toolset:     toolset,
		instruction: DefaultInstruction,
		maxSteps:    defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run answers one user query, dispatching tool calls over the toolset
// until the model produces a final answer or the step budget runs out.
// The exchange is recorded in the session.
func (a *Agent) Run(ctx context.Context, sess *session.Session, input string) (string, error) {
	llmTools, err := a.toolset.Tools(ctx)
	if err != nil {
		return "", fmt.Errorf("listing tools: %w", err)
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(a.instruction)},
		},
	}
	for _, turn := range sess.Turns() {
		role := llms.ChatMessageTypeHuman
		if turn.Role == "agent" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(input)},
	})

	for step := 0; step < a.maxSteps; step++ {
		resp, err := a.model.GenerateContent(ctx, messages, llms.WithTools(llmTools))
		if err != nil {
			return "", fmt.Errorf("generating content: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("model returned no choices")
		}
		choice := resp.Choices[0]

		var assistantParts []llms.ContentPart
		if choice.Content != "" {
			assistantParts = append(assistantParts, llms.TextContent{Text: choice.Content})
		}
		for _, tc := range choice.ToolCalls {
			assistantParts = append(assistantParts, tc)
		}
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: assistantParts,
		})

		if len(choice.ToolCalls) == 0 {
			sess.AddTurn("user", input)
			sess.AddTurn("agent", choice.Content)
			return choice.Content, nil
		}

		for _, tc := range choice.ToolCalls {
			log.Debug().
				Int("step", step+1).
				Str("tool", tc.FunctionCall.Name).
				RawJSON("arguments", normalizeArgs(tc.FunctionCall.Arguments)).
				Msg("Executing tool")

			result, err := a.toolset.Call(ctx, tc.FunctionCall.Name, tc.FunctionCall.Arguments)
			if err != nil {
				result = fmt.Sprintf("Error: %v", err)
			}

			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    result,
					},
				},
			})
		}
	}

	return "", fmt.Errorf("no final answer after %d steps", a.maxSteps)
}

func normalizeArgs(arguments string) []byte {
	if json.Valid([]byte(arguments)) {
		return []byte(arguments)
	}
	quoted, _ := json.Marshal(arguments)
	return quoted
}
