package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

var ErrMissingCredential = errors.New("model credential not configured")

type Config struct {
	HTTPAddr            string        `validate:"required"`
	Provider            string        `validate:"oneof=openai anthropic"`
	Model               string        `validate:"required"`
	OpenAIAPIKey        string        `validate:"required_if=Provider openai"`
	OpenAIBaseURL       string        `validate:"omitempty,url"`
	AnthropicAPIKey     string        `validate:"required_if=Provider anthropic"`
	APIKey              string
	MaxTextChars        int           `validate:"gt=0"`
	MaxUploadBytes      int64         `validate:"gt=0"`
	TempDir             string
	RequestTimeout      time.Duration `validate:"gte=0"`
	IncludeParsedFields bool
	LogLevel            slog.Level
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
		slog.Warn("bad int env, using default", "key", key, "value", v)
	}
	return def
}

func mustInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
		slog.Warn("bad int env, using default", "key", key, "value", v)
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "true" || v == "1" {
			return true
		}
		if v == "false" || v == "0" {
			return false
		}
		slog.Warn("bad bool env, using default", "key", key, "value", v)
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
		slog.Warn("bad duration env, using default", "key", key, "value", v)
	}
	return def
}

func logLevel(key string, def slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
		slog.Warn("bad log level env, using default", "key", key, "value", v)
	}
	return def
}

func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	// try to find .env files starting from current directory and going up
	currentDir, err := os.Getwd()
	if err != nil {
		slog.Debug("failed to get current directory", "error", err)
		return
	}

	searchDirs := []string{currentDir}
	for i := 0; i < 3; i++ {
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		searchDirs = append(searchDirs, parent)
		currentDir = parent
	}

	for _, dir := range searchDirs {
		loadedAny := false
		for _, envFile := range envFiles {
			envPath := filepath.Join(dir, envFile)
			if _, err := os.Stat(envPath); err != nil {
				continue
			}
			if err := godotenv.Load(envPath); err != nil {
				slog.Debug("failed to load environment file", "path", envPath, "error", err)
				continue
			}
			slog.Debug("loaded environment file", "path", envPath)
			loadedAny = true
		}
		if loadedAny {
			return
		}
	}

	slog.Debug("no .env files found, using system environment variables only")
}

// Load reads the process configuration once. It does not validate; call
// Validate before wiring dependencies.
func Load() Config {
	loadEnvFiles()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() Config {
	provider := strings.ToLower(getenv("LLM_PROVIDER", ProviderOpenAI))
	defModel := DefaultOpenAIModel
	if provider == ProviderAnthropic {
		defModel = DefaultAnthropicModel
	}

	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8000"),
		Provider:            provider,
		Model:               getenv("LLM_MODEL", defModel),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		APIKey:              os.Getenv("API_KEY"),
		MaxTextChars:        mustInt("MAX_TEXT_CHARS", 6000),
		MaxUploadBytes:      mustInt64("MAX_UPLOAD_BYTES", 32<<20),
		TempDir:             getenv("TEMP_DIR", os.TempDir()),
		RequestTimeout:      mustDuration("REQUEST_TIMEOUT", 0),
		IncludeParsedFields: getBool("INCLUDE_PARSED_FIELDS", false),
		LogLevel:            logLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate reports configuration the service cannot start with. A missing
// model credential is reported as ErrMissingCredential.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	missingKey := false
	for _, fe := range verrs {
		switch fe.Field() {
		case "OpenAIAPIKey", "AnthropicAPIKey":
			missingKey = true
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	if missingKey {
		return fmt.Errorf("%w for provider %s: %s", ErrMissingCredential, c.Provider, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
