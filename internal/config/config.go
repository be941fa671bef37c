package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/llm-scam-honeypot/")
	v.AddConfigPath("$HOME/.llm-scam-honeypot")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("HONEYPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "openai")

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8000")
	v.SetDefault("server.api_key", "honeypot-secret-2024")
	v.SetDefault("server.request_timeout", "60s")

	// Detector defaults. Threshold and boost are tuned constants; changing
	// them changes which messages count as scams.
	v.SetDefault("detector.threshold", 0.6)
	v.SetDefault("detector.keyword_boost", 3.0)

	// Engagement defaults
	v.SetDefault("engage.generate_timeout", "15s")
	v.SetDefault("engage.max_message_size", 4096)

	// Report defaults
	v.SetDefault("report.collector_url", "https://hackathon.guvi.in/api/updateHoneyPotFinalResult")
	v.SetDefault("report.timeout", "10s")

	// Archive defaults
	v.SetDefault("archive.type", "memory")
	v.SetDefault("archive.sqlite_path", "/data/honeypot_reports.db")
	v.SetDefault("archive.mysql_dsn", "user:password@tcp(localhost:3306)/honeypot")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 100)
	v.SetDefault("bedrock.temperature", 0.7)
	v.SetDefault("bedrock.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 100)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.9)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 100)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.top_p", 0.9)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
