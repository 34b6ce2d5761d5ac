package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Support SupportConfig `mapstructure:"support"`
	Session SessionConfig `mapstructure:"session"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SupportConfig is interpolated into the system instruction and user facing text
type SupportConfig struct {
	CompanyName       string   `mapstructure:"company_name"`
	SupportEmail      string   `mapstructure:"support_email"`
	Hours             string   `mapstructure:"hours"`
	WindowSize        int      `mapstructure:"window_size"`
	RatingPromptAfter int      `mapstructure:"rating_prompt_after"`
	QuickTopics       []string `mapstructure:"quick_topics"`
}

type SessionConfig struct {
	MaxSessions int `mapstructure:"max_sessions"`
}

type LLMConfig struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	Gemini          GeminiConfig    `mapstructure:"gemini"`
	OpenAI          OpenAIConfig    `mapstructure:"openai"`
	Anthropic       AnthropicConfig `mapstructure:"anthropic"`
	Ollama          OllamaConfig    `mapstructure:"ollama"`
	DeepSeek        DeepSeekConfig  `mapstructure:"deepseek"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OllamaConfig struct {
	Host         string `mapstructure:"host"`
	DefaultModel string `mapstructure:"default_model"`
}

type DeepSeekConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type LoggingConfig struct {
	Level        string        `mapstructure:"level"`
	Format       string        `mapstructure:"format"`
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

// DefaultQuickTopics are offered when no topics are configured
var DefaultQuickTopics = []string{
	"Account Issues",
	"Billing Questions",
	"Technical Support",
	"Product Information",
	"Return & Refund",
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file: defaults and env vars only
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would make the service unusable.
// A missing model credential is not checked here.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Support.CompanyName == "" {
		errs = append(errs, errors.New("support.company_name is required"))
	}
	if c.Support.SupportEmail == "" {
		errs = append(errs, errors.New("support.support_email is required"))
	}
	if c.Support.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("support.window_size must be positive, got %d", c.Support.WindowSize))
	}
	if c.Support.RatingPromptAfter < 0 {
		errs = append(errs, fmt.Errorf("support.rating_prompt_after must not be negative, got %d", c.Support.RatingPromptAfter))
	}
	if c.Session.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("session.max_sessions must be positive, got %d", c.Session.MaxSessions))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.middleware_timeout", "120s")

	// Support
	v.SetDefault("support.company_name", "TechCorp")
	v.SetDefault("support.support_email", "support@company.com")
	v.SetDefault("support.hours", "Mon-Fri, 9AM-6PM")
	v.SetDefault("support.window_size", 6) // last 3 exchanges
	v.SetDefault("support.rating_prompt_after", 4)
	v.SetDefault("support.quick_topics", DefaultQuickTopics)

	// Session
	v.SetDefault("session.max_sessions", 1000)

	// LLM
	v.SetDefault("llm.default_provider", "gemini")
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.ollama.default_model", "llama3")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_age", "168h")
	v.SetDefault("logging.rotation_time", "24h")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")

	// Support
	v.BindEnv("support.company_name", "COMPANY_NAME")
	v.BindEnv("support.support_email", "SUPPORT_EMAIL")

	// LLM API Keys
	v.BindEnv("llm.default_provider", "LLM_PROVIDER")
	v.BindEnv("llm.gemini.api_key", "GOOGLE_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("llm.deepseek.api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("llm.ollama.host", "OLLAMA_HOST")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.file", "LOG_FILE")
}
