package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
	"go.uber.org/zap"
)

// Patterns used for the additive signal score. These are deliberately laxer
// than the extraction patterns: they only need to detect that something
// URL-shaped or account-shaped is present, not pull it out cleanly.
var (
	urlHintPattern    = regexp.MustCompile(`http[s]?://|www\.|\.com|\.in`)
	handleHintPattern = regexp.MustCompile(`\b[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\b`)
	phoneHintPattern  = regexp.MustCompile(`\b[6-9]\d{9}\b`)
	digitRunPattern   = regexp.MustCompile(`\b\d{9,18}\b`)
)

// Category word groups, checked in fixed priority order: the first group
// with a hit decides the category.
var categoryWords = []struct {
	category ScamCategory
	words    []string
}{
	{CategoryPrizeScam, []string{"prize", "won", "lottery", "winner"}},
	{CategoryPhishing, []string{"verify", "confirm", "update", "click"}},
	{CategoryJobScam, []string{"work from home", "earn", "job", "part time"}},
	{CategoryPaymentScam, []string{"payment", "transfer", "send money"}},
}

// Classifier scores a single message and assigns a scam category. It is
// stateless; a single instance is shared across all conversations.
type Classifier struct {
	lex          *lexicon.Lexicon
	threshold    float64
	keywordBoost float64
	logger       *zap.Logger
}

// NewClassifier creates a classifier. The threshold and keyword boost are
// tuned constants; pass the configured values rather than inventing new
// ones.
func NewClassifier(lex *lexicon.Lexicon, threshold, keywordBoost float64, logger *zap.Logger) *Classifier {
	return &Classifier{
		lex:          lex,
		threshold:    threshold,
		keywordBoost: keywordBoost,
		logger:       logger,
	}
}

// Classify scores the message and returns the verdict. Empty text scores
// zero and is never a scam.
func (c *Classifier) Classify(text string) *ClassificationResult {
	lowered := strings.ToLower(text)

	keywordScore, matched := c.keywordScore(lowered)
	patternScore := c.patternScore(text)
	confidence := (keywordScore + patternScore) / 2

	isScam := confidence >= c.threshold
	category := c.identifyCategory(lowered)

	c.logger.Debug("Classified message",
		zap.Float64("keyword_score", keywordScore),
		zap.Float64("pattern_score", patternScore),
		zap.Float64("confidence", confidence),
		zap.Bool("is_scam", isScam),
		zap.String("category", category.String()))

	result := &ClassificationResult{
		IsScam:          isScam,
		Confidence:      confidence,
		MatchedKeywords: matched,
		AnalyzedAt:      time.Now(),
	}
	// Category is computed regardless of the verdict but only exposed for
	// actual scams.
	if isScam {
		result.Category = category
	}
	return result
}

// keywordScore computes matched/total across the whole lexicon, boosted and
// clamped to [0,1]. The boost compensates for the low hit-rate of a short
// message against the full lexicon.
func (c *Classifier) keywordScore(lowered string) (float64, []string) {
	total := c.lex.TotalKeywords()
	if total == 0 {
		return 0, nil
	}

	var matched []string
	for _, words := range c.lex.Keywords {
		for _, word := range words {
			if strings.Contains(lowered, word) {
				matched = append(matched, word)
			}
		}
	}

	score := float64(len(matched)) / float64(total) * c.keywordBoost
	if score > 1.0 {
		score = 1.0
	}
	return score, matched
}

// patternScore is additive over the structural signals, capped at 1.0.
func (c *Classifier) patternScore(text string) float64 {
	score := 0.0
	if urlHintPattern.MatchString(text) {
		score += 0.3
	}
	if c.hasPaymentHandle(text) {
		score += 0.3
	}
	if phoneHintPattern.MatchString(text) {
		score += 0.2
	}
	if digitRunPattern.MatchString(text) {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// hasPaymentHandle reports whether the text contains a handle qualified by a
// whitelisted payment provider.
func (c *Classifier) hasPaymentHandle(text string) bool {
	for _, match := range handleHintPattern.FindAllString(text, -1) {
		lowered := strings.ToLower(match)
		for _, provider := range c.lex.PaymentProviders {
			if strings.Contains(lowered, provider) {
				return true
			}
		}
	}
	return false
}

// identifyCategory picks the scam category by fixed priority; first word
// group with a hit wins.
func (c *Classifier) identifyCategory(lowered string) ScamCategory {
	for _, group := range categoryWords {
		for _, word := range group.words {
			if strings.Contains(lowered, word) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}
