package main

import (
	"context"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seanofahey/mcp-noaa-tides/internal/config"
	"github.com/seanofahey/mcp-noaa-tides/internal/handler"
	"github.com/seanofahey/mcp-noaa-tides/internal/noaa"
	"github.com/seanofahey/mcp-noaa-tides/pkg/http/client"
)

var (
	searchHandler *handler.SearchHandler
	setupOnce     sync.Once
)

func init() {
	setupOnce.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		levelStr := os.Getenv("LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		env := os.Getenv("ENV") // e.g. "local", "development", "production"
		if env == "local" || env == "development" {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
		} else {
			log.Logger = zerolog.New(os.Stdout).
				With().
				Timestamp().
				Logger()
		}

		log.Info().Str("env", env).Msg("Environment")

		cfg := config.LoadFromEnv()
		httpClient := client.New(client.Options{
			BaseURL:    cfg.NOAABaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})
		searchHandler = handler.NewSearchHandler(noaa.NewClient(httpClient))
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Info().Msg("Handling Lambda request")
	return searchHandler.HandleRequest(ctx, request)
}

func main() {
	lambda.Start(handleRequest)
}
