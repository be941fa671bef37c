package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
	"go.uber.org/zap"
)

// BedrockGenerator is an implementation of the ReplyGenerator interface
// using Amazon Bedrock.
type BedrockGenerator struct {
	client         *bedrockruntime.Client
	modelID        string
	maxTokens      int
	temperature    float32
	topP           float32
	maxMessageSize int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
}

// NewBedrockGenerator creates a new Bedrock reply generator
func NewBedrockGenerator(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockGenerator {
	return &BedrockGenerator{
		client:         client,
		modelID:        modelID,
		maxTokens:      maxTokens,
		temperature:    temperature,
		topP:           topP,
		maxMessageSize: maxMessageSize,
		logger:         logger,
		textProcessor:  textProcessor,
	}
}

// GenerateReply produces one decoy reply. Bedrock text models take a single
// prompt string, so the instruction and the conversation are flattened into
// a transcript the model continues.
func (g *BedrockGenerator) GenerateReply(ctx context.Context, instruction string, history []core.TurnMessage) (string, error) {
	prompt := g.buildPrompt(instruction, history)

	// Create the request based on the model
	var payload []byte
	var err error

	if g.isAnthropicModel() {
		// Anthropic Claude models
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": g.maxTokens,
			"temperature":          g.temperature,
			"top_p":                g.topP,
		})
	} else if g.isAmazonTitanModel() {
		// Amazon Titan models
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": g.maxTokens,
				"temperature":   g.temperature,
				"topP":          g.topP,
			},
		})
	} else {
		// Default to a generic format
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  g.maxTokens,
			"temperature": g.temperature,
			"top_p":       g.topP,
		})
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &g.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	// Parse the response based on the model
	var replyText string

	if g.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(resp.Body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		replyText = claudeResp.Completion
	} else if g.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(resp.Body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		replyText = titanResp.Results[0].OutputText
	} else {
		var genericResp struct {
			Output   string `json:"output"`
			Text     string `json:"text"`
			Response string `json:"response"`
		}
		if err := json.Unmarshal(resp.Body, &genericResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
		}
		switch {
		case genericResp.Output != "":
			replyText = genericResp.Output
		case genericResp.Text != "":
			replyText = genericResp.Text
		case genericResp.Response != "":
			replyText = genericResp.Response
		default:
			replyText = string(resp.Body)
		}
	}

	reply := strings.TrimSpace(replyText)
	if reply == "" {
		return "", fmt.Errorf("empty reply from Bedrock model")
	}

	g.logger.Debug("Generated decoy reply",
		zap.String("model", g.modelID),
		zap.Int("reply_length", len(reply)))

	return reply, nil
}

// buildPrompt flattens the instruction and history into the Human/Assistant
// transcript format Bedrock text models expect.
func (g *BedrockGenerator) buildPrompt(instruction string, history []core.TurnMessage) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")
	for _, turn := range history {
		if turn.Speaker == core.SpeakerDecoy {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("Human: ")
		}
		b.WriteString(g.textProcessor.ProcessText(turn.Text, g.maxMessageSize))
		b.WriteString("\n\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (g *BedrockGenerator) isAnthropicModel() bool {
	return strings.HasPrefix(g.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (g *BedrockGenerator) isAmazonTitanModel() bool {
	return strings.HasPrefix(g.modelID, "amazon.titan")
}
