package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/seanofahey/mcp-noaa-tides/internal/config"
	"github.com/seanofahey/mcp-noaa-tides/internal/noaa"
	"github.com/seanofahey/mcp-noaa-tides/internal/tools"
	"github.com/seanofahey/mcp-noaa-tides/pkg/http/client"
)

const serverVersion = "0.1.0"

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	httpClient := client.New(client.Options{
		BaseURL:    cfg.NOAABaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	noaaClient := noaa.NewClient(httpClient)

	s := server.NewMCPServer("NOAA Tides", serverVersion,
		server.WithToolCapabilities(false),
	)
	tools.NewHandler(noaaClient).Register(s)

	log.Info().Str("base_url", cfg.NOAABaseURL).Msg("Starting NOAA Tides tool server on stdio")

	if err := server.ServeStdio(s); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
