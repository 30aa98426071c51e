package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	ProviderLlamaCpp  = "llamacpp"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Providers lists the supported generation engines
var Providers = []string{ProviderLlamaCpp, ProviderOpenAI, ProviderAnthropic, ProviderGemini}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Combination CombinationConfig `mapstructure:"combination"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string       `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	SQLite          SQLiteConfig `mapstructure:"sqlite"`
	MySQL           MySQLConfig  `mapstructure:"mysql"`
	MaxOpenConns    int          `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int          `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int          `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
	ConnectAttempts uint         `mapstructure:"connect_attempts" validate:"min=1"`
}

type SQLiteConfig struct {
	Path          string `mapstructure:"path" validate:"required,parentdir"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms" validate:"min=0"`
}

type MySQLConfig struct {
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Database string            `mapstructure:"database"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	TLS      bool              `mapstructure:"tls"`
	Params   map[string]string `mapstructure:"params"`
}

type EngineConfig struct {
	Provider       string          `mapstructure:"provider" validate:"oneof=llamacpp openai anthropic gemini"`
	Timeout        time.Duration   `mapstructure:"timeout"`
	MaxConcurrency int64           `mapstructure:"max_concurrency" validate:"min=0"`
	LlamaCpp       LlamaCppConfig  `mapstructure:"llamacpp"`
	OpenAI         OpenAIConfig    `mapstructure:"openai"`
	Anthropic      AnthropicConfig `mapstructure:"anthropic"`
	Gemini         GeminiConfig    `mapstructure:"gemini"`
}

type LlamaCppConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	PromptTemplate string `mapstructure:"prompt_template" validate:"omitempty,contains=%s"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type CombinationConfig struct {
	LockStripes     int `mapstructure:"lock_stripes" validate:"min=1"`
	SeedConcurrency int `mapstructure:"seed_concurrency" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordcraft")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.sqlite.path", "cache.db")
	v.SetDefault("database.sqlite.busy_timeout_ms", 5000)
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.database", "wordcraft")
	v.SetDefault("database.mysql.username", "user")
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("engine.provider", ProviderLlamaCpp)
	v.SetDefault("engine.timeout", 60*time.Second)
	v.SetDefault("engine.max_concurrency", 1)
	v.SetDefault("engine.llamacpp.base_url", "http://localhost:8080")
	v.SetDefault("engine.openai.model", "gpt-4o-mini")
	v.SetDefault("engine.anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("engine.gemini.model", "gemini-2.0-flash")
	v.SetDefault("combination.lock_stripes", 64)
	v.SetDefault("combination.seed_concurrency", 2)

	// API keys and passwords come from environment variables only
	envBindings := map[string]string{
		"engine.openai.api_key":    "OPENAI_API_KEY",
		"engine.openai.model":      "OPENAI_MODEL",
		"engine.anthropic.api_key": "ANTHROPIC_API_KEY",
		"engine.gemini.api_key":    "GEMINI_API_KEY",
		"engine.llamacpp.base_url": "LLAMACPP_BASE_URL",
		"database.mysql.password":  "DB_PASSWORD",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
