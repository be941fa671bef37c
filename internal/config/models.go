package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress  string
	APIKey         string
	RequestTimeout string
}

// DetectorConfig represents the scam classifier tuning parameters
type DetectorConfig struct {
	Threshold    float64
	KeywordBoost float64
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// ReportConfig represents the collector reporting configuration
type ReportConfig struct {
	CollectorURL string
}

// ArchiveConfig represents the report archive configuration
type ArchiveConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:  c.GetString("server.listen_address"),
		APIKey:         c.GetString("server.api_key"),
		RequestTimeout: c.GetString("server.request_timeout"),
	}
}

// GetDetector returns the classifier tuning configuration
func (c *Config) GetDetector() DetectorConfig {
	return DetectorConfig{
		Threshold:    c.GetFloat64("detector.threshold"),
		KeywordBoost: c.GetFloat64("detector.keyword_boost"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetReport returns the collector reporting configuration
func (c *Config) GetReport() ReportConfig {
	return ReportConfig{
		CollectorURL: c.GetString("report.collector_url"),
	}
}

// GetArchive returns the report archive configuration
func (c *Config) GetArchive() ArchiveConfig {
	return ArchiveConfig{
		Type:       c.GetString("archive.type"),
		SQLitePath: c.GetString("archive.sqlite_path"),
		MySQLDSN:   c.GetString("archive.mysql_dsn"),
	}
}
