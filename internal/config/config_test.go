package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "https://api.tidesandcurrents.noaa.gov", cfg.NOAABaseURL)
	assert.Equal(t, []string{"noaa-tides-server"}, cfg.ServerCommand)
	assert.Equal(t, "googleai", cfg.LLMProvider)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLMModel)
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
}

func TestWithLogLevel(t *testing.T) {
	cfg := New(WithLogLevel("debug"))

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestWithLogLevelInvalid(t *testing.T) {
	cfg := New(WithLogLevel("not-a-level"))

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestWithHTTPTimeout(t *testing.T) {
	cfg := New(WithHTTPTimeout(30 * time.Second))

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestWithNOAABaseURL(t *testing.T) {
	cfg := New(WithNOAABaseURL("http://localhost:8080"))

	assert.Equal(t, "http://localhost:8080", cfg.NOAABaseURL)
}

func TestWithServerCommandEmptyKeepsDefault(t *testing.T) {
	cfg := New(WithServerCommand(nil))

	assert.Equal(t, []string{"noaa-tides-server"}, cfg.ServerCommand)
}

func TestWithLLM(t *testing.T) {
	cfg := New(WithLLM("openai", "gpt-4o-mini"))

	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("NOAA_BASE_URL", "http://localhost:9999")
	t.Setenv("NOAA_MCP_SERVER_COMMAND", "go run ./cmd/server")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.NOAABaseURL)
	assert.Equal(t, []string{"go", "run", "./cmd/server"}, cfg.ServerCommand)
}

func TestGetEnvOrDefault(t *testing.T) {
	err := os.Setenv("TEST_ENV_VAR", "value")
	if err != nil {
		return
	}
	defer func() {
		err := os.Unsetenv("TEST_ENV_VAR")
		if err != nil {
			return
		}
	}()

	assert.Equal(t, "value", getEnvOrDefault("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnvOrDefault("NON_EXISTENT_ENV_VAR", "default"))
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	err := os.Setenv("TEST_DURATION_ENV_VAR", "2s")
	if err != nil {
		return
	}
	defer func() {
		err := os.Unsetenv("TEST_DURATION_ENV_VAR")
		if err != nil {
			return
		}
	}()

	assert.Equal(t, 2*time.Second, getDurationEnvOrDefault("TEST_DURATION_ENV_VAR", 1*time.Second))
	assert.Equal(t, 1*time.Second, getDurationEnvOrDefault("NON_EXISTENT_DURATION_ENV_VAR", 1*time.Second))
}
