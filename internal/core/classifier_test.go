package core

import (
	"testing"

	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClassifier() *Classifier {
	return NewClassifier(lexicon.Default(), 0.6, 3.0, zap.NewNop())
}

func TestClassifyPrizeScamMessage(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify("Congratulations! You won Rs 50,000 in lucky draw! " +
		"Send Rs 500 to 9876543210 at paytm-handle to claim. Hurry, offer expires today!")

	require.True(t, result.IsScam)
	assert.Equal(t, CategoryPrizeScam, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, 0.6)
	assert.Contains(t, result.MatchedKeywords, "congratulations")
	assert.Contains(t, result.MatchedKeywords, "won")
	assert.Contains(t, result.MatchedKeywords, "lucky draw")
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestClassifyBenignMessage(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify("Hello, how are you? Nice weather today!")

	require.False(t, result.IsScam)
	assert.Equal(t, CategoryUnknown, result.Category)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.MatchedKeywords)
}

func TestClassifyEmptyMessage(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify("")

	assert.False(t, result.IsScam)
	assert.Zero(t, result.Confidence)
}

func TestClassifyPatternsAloneStayBelowThreshold(t *testing.T) {
	c := newTestClassifier()

	// A handle and a link with no scam vocabulary at all: the pattern score
	// contributes 0.6 but the mean stays at 0.3.
	result := c.Classify("someone@ybl https://short.example/a1")

	require.False(t, result.IsScam)
	assert.InDelta(t, 0.3, result.Confidence, 0.001)
}

func TestClassifyCategoryHiddenForBenignVerdict(t *testing.T) {
	c := newTestClassifier()

	// "won" alone is a category hit but nowhere near the threshold.
	result := c.Classify("I won the chess game")

	require.False(t, result.IsScam)
	assert.Equal(t, CategoryUnknown, result.Category)
}

func TestIdentifyCategoryPriority(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		text string
		want ScamCategory
	}{
		{"prize beats phishing", "you won, please verify", CategoryPrizeScam},
		{"phishing beats job", "verify your account to earn more", CategoryPhishing},
		{"job beats payment", "work from home, instant payment", CategoryJobScam},
		{"payment alone", "transfer the amount today", CategoryPaymentScam},
		{"no category words", "hello there", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.identifyCategory(tt.text))
		})
	}
}

func TestThresholdIsConfigurable(t *testing.T) {
	strict := NewClassifier(lexicon.Default(), 0.9, 3.0, zap.NewNop())

	result := strict.Classify("Congratulations! You won Rs 50,000 in lucky draw! " +
		"Send Rs 500 to 9876543210 at paytm-handle to claim. Hurry, offer expires today!")

	assert.False(t, result.IsScam, "a stricter threshold flips the verdict")
	assert.Equal(t, CategoryUnknown, result.Category)
}
