package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment   string
	LogLevel      zerolog.Level
	HTTPTimeout   time.Duration
	MaxRetries    int
	NOAABaseURL   string
	ServerCommand []string
	LLMProvider   string
	LLMModel      string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithNOAABaseURL allows pointing at a different NOAA endpoint, mainly
// for tests.
func WithNOAABaseURL(baseURL string) Option {
	return func(c *Config) {
		c.NOAABaseURL = baseURL
	}
}

// WithServerCommand sets the command line the agent uses to spawn the
// tool server.
func WithServerCommand(command []string) Option {
	return func(c *Config) {
		if len(command) > 0 {
			c.ServerCommand = command
		}
	}
}

// WithLLM selects the model provider and model name for the agent.
func WithLLM(provider, model string) Option {
	return func(c *Config) {
		if provider != "" {
			c.LLMProvider = provider
		}
		if model != "" {
			c.LLMModel = model
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:   "production",
		LogLevel:      zerolog.InfoLevel,
		HTTPTimeout:   10 * time.Second,
		MaxRetries:    3,
		NOAABaseURL:   "https://api.tidesandcurrents.noaa.gov",
		ServerCommand: []string{"noaa-tides-server"},
		LLMProvider:   "googleai",
		LLMModel:      "gemini-1.5-pro",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration. Logs go
// to stderr: the server's stdout carries the stdio tool protocol and
// must stay clean.
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithNOAABaseURL(getEnvOrDefault("NOAA_BASE_URL", "https://api.tidesandcurrents.noaa.gov")),
		WithServerCommand(getCommandEnv("NOAA_MCP_SERVER_COMMAND")),
		WithLLM(os.Getenv("LLM_PROVIDER"), os.Getenv("LLM_MODEL")),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getCommandEnv(key string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Fields(value)
	}
	return nil
}
