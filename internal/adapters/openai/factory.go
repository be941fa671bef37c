package openai

import (
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIGenerator
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OpenAIGenerator instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyGenerator creates a new OpenAIGenerator
func (f *Factory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	openaiCfg := f.cfg.GetOpenAI()

	client := openai.NewClient(openaiCfg.APIKey)

	return NewOpenAIGenerator(
		client,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		f.cfg.GetInt("engage.max_message_size"),
		f.logger,
		f.textProcessor,
	), nil
}
