package factory

import (
	"fmt"

	"github.com/mikey/llm-scam-honeypot/internal/adapters/bedrock"
	"github.com/mikey/llm-scam-honeypot/internal/adapters/gemini"
	"github.com/mikey/llm-scam-honeypot/internal/adapters/openai"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"go.uber.org/zap"
)

// LLMFactory creates reply generators
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyGenerator creates a reply generator based on the configuration
func (f *LLMFactory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateReplyGenerator()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateReplyGenerator()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateReplyGenerator()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
