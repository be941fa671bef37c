package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Factory creates new instances of GeminiGenerator
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiGenerator instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyGenerator creates a new GeminiGenerator
func (f *Factory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	geminiCfg := f.cfg.GetGemini()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiCfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewGeminiGenerator(
		client,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		f.cfg.GetInt("engage.max_message_size"),
		f.logger,
		f.textProcessor,
	), nil
}
