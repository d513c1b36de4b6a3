package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/seanofahey/mcp-noaa-tides/internal/agent"
	"github.com/seanofahey/mcp-noaa-tides/internal/config"
	"github.com/seanofahey/mcp-noaa-tides/internal/session"
)

const defaultQuery = "What are the next high and low tides for Cambridge, Maryland?"

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	ctx := context.Background()

	model, err := newModel(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating model")
	}

	log.Info().Strs("command", cfg.ServerCommand).Msg("Starting NOAA Tides tool server")
	toolset, err := agent.NewMCPToolset(ctx, cfg.ServerCommand)
	if err != nil {
		log.Fatal().Err(err).Msg("Connecting to tool server")
	}
	defer func() {
		if err := toolset.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing tool server connection")
		}
	}()

	sessions := session.NewStore(16, time.Hour)
	sess := sessions.Create("noaa_tides_app", "user_tides")

	query := defaultQuery
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}
	log.Info().Str("session_id", sess.ID).Str("query", query).Msg("Running agent")

	tidesAgent := agent.New(model, toolset)
	answer, err := tidesAgent.Run(ctx, sess, query)
	if err != nil {
		log.Fatal().Err(err).Msg("Agent run failed")
	}

	fmt.Println(answer)
}

func newModel(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	switch cfg.LLMProvider {
	case "googleai":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		return googleai.New(ctx,
			googleai.WithAPIKey(apiKey),
			googleai.WithDefaultModel(cfg.LLMModel),
		)
	case "openai":
		opts := []openai.Option{
			openai.WithToken(os.Getenv("OPENAI_API_KEY")),
			openai.WithModel(cfg.LLMModel),
		}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		return openai.New(opts...)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}
