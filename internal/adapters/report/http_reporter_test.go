package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleReport() *core.EngagementReport {
	return &core.EngagementReport{
		ReportID:       "r-1",
		ConversationID: "conv-1",
		ScamDetected:   true,
		Category:       core.CategoryPrizeScam,
		Confidence:     0.8,
		TotalTurns:     4,
		Indicators: core.Indicators{
			PaymentHandles: []string{"winner@paytm"},
			PhoneNumbers:   []string{"9876543210"},
			URLs:           []string{"https://bit.ly/win"},
		},
		SuspiciousKeywords: []string{"congratulations", "won"},
		Notes:              "Scam type: prize_scam. Confidence: 0.80. Agent engaged successfully.",
	}
}

func TestReportPostsCollectorPayload(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reporter := NewHTTPReporter(server.URL, zap.NewNop())
	require.NoError(t, reporter.Report(context.Background(), sampleReport()))

	assert.Equal(t, "conv-1", payload["sessionId"])
	assert.Equal(t, true, payload["scamDetected"])
	assert.Equal(t, float64(4), payload["totalMessagesExchanged"])
	assert.Contains(t, payload["agentNotes"], "prize_scam")

	intel, ok := payload["extractedIntelligence"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"winner@paytm"}, intel["upiIds"])
	assert.Equal(t, []interface{}{"https://bit.ly/win"}, intel["phishingLinks"])
	// Empty categories serialize as empty arrays, never null.
	assert.Equal(t, []interface{}{}, intel["bankAccounts"])
}

func TestReportRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	reporter := NewHTTPReporter(server.URL, zap.NewNop())
	err := reporter.Report(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestReportFailsOnUnreachableCollector(t *testing.T) {
	reporter := NewHTTPReporter("http://127.0.0.1:1/unreachable", zap.NewNop())
	err := reporter.Report(context.Background(), sampleReport())
	assert.Error(t, err)
}
