package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "openai", cfg.GetString("llm.provider"))
	assert.Equal(t, "0.0.0.0:8000", cfg.GetString("server.listen_address"))
	assert.InDelta(t, 0.6, cfg.GetFloat64("detector.threshold"), 0.001)
	assert.InDelta(t, 3.0, cfg.GetFloat64("detector.keyword_boost"), 0.001)
	assert.Equal(t, 4096, cfg.GetInt("engage.max_message_size"))
	assert.Equal(t, "memory", cfg.GetString("archive.type"))

	timeout, err := cfg.GetDuration("engage.generate_timeout")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, timeout)
}

func TestTypedConfigModels(t *testing.T) {
	v := NewEmptyViper()
	v.Set("detector.threshold", 0.7)
	v.Set("openai.api_key", "sk-test")
	cfg := NewFromViper(v)

	detector := cfg.GetDetector()
	assert.InDelta(t, 0.7, detector.Threshold, 0.001)

	openai := cfg.GetOpenAI()
	assert.Equal(t, "sk-test", openai.APIKey)
	assert.Equal(t, "gpt-4o-mini", openai.ModelName)
}
