package openai

import (
	"context"
	"fmt"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIGenerator is an implementation of the ReplyGenerator interface using
// OpenAI chat completions.
type OpenAIGenerator struct {
	client         *openai.Client
	modelName      string
	maxTokens      int
	temperature    float32
	topP           float32
	maxMessageSize int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
}

// NewOpenAIGenerator creates a new OpenAI reply generator
func NewOpenAIGenerator(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:         client,
		modelName:      modelName,
		maxTokens:      maxTokens,
		temperature:    temperature,
		topP:           topP,
		maxMessageSize: maxMessageSize,
		logger:         logger,
		textProcessor:  textProcessor,
	}
}

// GenerateReply produces one decoy reply. The instruction becomes the system
// message; the conversation history is replayed as alternating user and
// assistant turns.
func (g *OpenAIGenerator) GenerateReply(ctx context.Context, instruction string, history []core.TurnMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: instruction,
	})

	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Speaker == core.SpeakerDecoy {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: g.textProcessor.ProcessText(turn.Text, g.maxMessageSize),
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       g.modelName,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		TopP:        g.topP,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	reply := resp.Choices[0].Message.Content
	g.logger.Debug("Generated decoy reply",
		zap.String("model", g.modelName),
		zap.String("processing_id", resp.ID),
		zap.Int("reply_length", len(reply)))

	return reply, nil
}
