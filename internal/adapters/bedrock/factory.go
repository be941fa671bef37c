package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"go.uber.org/zap"
)

// Factory creates Bedrock reply generators
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyGenerator creates a new BedrockGenerator
func (f *Factory) CreateReplyGenerator() (*BedrockGenerator, error) {
	bedrockCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)

	return NewBedrockGenerator(
		client,
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		f.cfg.GetInt("engage.max_message_size"),
		f.logger,
		f.textProcessor,
	), nil
}
