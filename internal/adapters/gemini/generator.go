package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"go.uber.org/zap"
)

// GeminiGenerator is an implementation of the ReplyGenerator interface using
// Google Gemini. The shared client is read-only after construction; each
// call builds its own model value, since the system instruction differs per
// session and sessions generate in parallel.
type GeminiGenerator struct {
	client         *genai.Client
	modelName      string
	maxTokens      int
	temperature    float32
	topP           float32
	maxMessageSize int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
}

// NewGeminiGenerator creates a new Gemini reply generator
func NewGeminiGenerator(
	client *genai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiGenerator {
	return &GeminiGenerator{
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

// Close closes the Gemini client
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// GenerateReply produces one decoy reply using a Gemini chat session seeded
// with the conversation history. The last scammer message is the one the
// model answers.
func (g *GeminiGenerator) GenerateReply(ctx context.Context, instruction string, history []core.TurnMessage) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty conversation history")
	}

	model := g.requestModel(instruction)

	chat := model.StartChat()
	for _, turn := range history[:len(history)-1] {
		role := "user"
		if turn.Speaker == core.SpeakerDecoy {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(g.textProcessor.ProcessText(turn.Text, g.maxMessageSize))},
		})
	}

	last := g.textProcessor.ProcessText(history[len(history)-1].Text, g.maxMessageSize)
	resp, err := chat.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", fmt.Errorf("no text in Gemini response")
	}

	g.logger.Debug("Generated decoy reply",
		zap.String("model", g.modelName),
		zap.Int("reply_length", len(reply)))

	return reply, nil
}

// requestModel builds the model value for one generation request. Never set
// the instruction on a shared model: concurrent sessions carry different
// instructions.
func (g *GeminiGenerator) requestModel(instruction string) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetTopP(g.topP)
	model.SetMaxOutputTokens(int32(g.maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}
	return model
}
