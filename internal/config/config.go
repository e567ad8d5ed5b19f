package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/careerforge/interview-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// In-process session cache configuration
	SessionCacheTTL     time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30m"`
	SessionCacheCleanup time.Duration `env:"SESSION_CACHE_CLEANUP" envDefault:"10m"`

	// External service configurations
	GeneratorCfg GeneratorConnectorConfig `envPrefix:"GENERATOR_"`
	ASRCfg       ASRConnectorConfig       `envPrefix:"ASR_"`
	CallbackCfg  CallbackConnectorConfig  `envPrefix:"CALLBACK_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Interview defaults
	DefaultMaxQuestions int `env:"DEFAULT_MAX_QUESTIONS" envDefault:"5"`

	// File upload configuration
	UploadCfg UploadConfig `envPrefix:"UPLOAD_"`

	// Follow-up prompt pool (loaded from JSON file)
	FollowUpPrompts []string

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

type GeneratorConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT,notEmpty"`
	EvaluateEndpoint string               `env:"EVALUATE_ENDPOINT,notEmpty"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT,notEmpty"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CallbackConnectorConfig struct {
	HTTPClientConfig
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxAudioFileSize  int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxResumeFileSize int64 `env:"MAX_RESUME_FILE_SIZE" envDefault:"5242880"` // 5 MiB
}

// followUpPrompts represents the structure of follow_up_prompts.json
type followUpPrompts struct {
	Prompts []string `json:"prompts"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadFollowUpPrompts(cfg); err != nil {
		return nil, fmt.Errorf("load follow-up prompts: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DefaultMaxQuestions < 3 || cfg.DefaultMaxQuestions > 15 {
		return fmt.Errorf("DEFAULT_MAX_QUESTIONS must be between 3 and 15, got %d", cfg.DefaultMaxQuestions)
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute)
	}

	return nil
}

var defaultFollowUpPrompts = []string{
	"Could you walk me through a specific example of that?",
	"What was your individual contribution in that situation?",
	"What would you do differently in hindsight?",
	"How did you measure the outcome?",
	"Can you go deeper into the technical details?",
	"What was the hardest part, and how did you handle it?",
}

func loadFollowUpPrompts(cfg *Config) error {
	promptsFile := filepath.Join("internal", "config", "follow_up_prompts.json")

	if _, err := os.Stat(promptsFile); os.IsNotExist(err) {
		fmt.Printf("Warning: follow-up prompts file not found at %s, using default prompts\n", promptsFile)
		cfg.FollowUpPrompts = defaultFollowUpPrompts
		return nil
	}

	data, err := os.ReadFile(promptsFile)
	if err != nil {
		return fmt.Errorf("read follow-up prompts file: %w", err)
	}

	var promptsData followUpPrompts
	if err := json.Unmarshal(data, &promptsData); err != nil {
		return fmt.Errorf("parse follow-up prompts JSON: %w", err)
	}

	if len(promptsData.Prompts) == 0 {
		return fmt.Errorf("follow-up prompts file contains no prompts: %s", promptsFile)
	}

	cfg.FollowUpPrompts = promptsData.Prompts

	fmt.Printf("Loaded %d follow-up prompts from %s\n", len(cfg.FollowUpPrompts), promptsFile)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
