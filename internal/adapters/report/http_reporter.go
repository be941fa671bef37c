package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// HTTPReporter posts final engagement reports to the external collector.
type HTTPReporter struct {
	collectorURL string
	httpClient   *http.Client
	logger       *zap.Logger
}

// collectorPayload is the wire format the collector expects.
type collectorPayload struct {
	SessionID              string                `json:"sessionId"`
	ScamDetected           bool                  `json:"scamDetected"`
	TotalMessagesExchanged int                   `json:"totalMessagesExchanged"`
	ExtractedIntelligence  collectorIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                `json:"agentNotes"`
}

type collectorIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewHTTPReporter creates a reporter for the given collector URL. The
// caller-supplied context deadline bounds each request; the client itself
// carries no extra timeout.
func NewHTTPReporter(collectorURL string, logger *zap.Logger) *HTTPReporter {
	return &HTTPReporter{
		collectorURL: collectorURL,
		httpClient:   &http.Client{},
		logger:       logger,
	}
}

// Report submits the final engagement report. Any non-200 status counts as a
// failure so the caller can retry on a later turn.
func (r *HTTPReporter) Report(ctx context.Context, report *core.EngagementReport) error {
	payload := collectorPayload{
		SessionID:              report.ConversationID,
		ScamDetected:           report.ScamDetected,
		TotalMessagesExchanged: report.TotalTurns,
		ExtractedIntelligence: collectorIntelligence{
			BankAccounts:       emptyIfNil(report.Indicators.BankAccounts),
			UPIIDs:             emptyIfNil(report.Indicators.PaymentHandles),
			PhishingLinks:      emptyIfNil(report.Indicators.URLs),
			PhoneNumbers:       emptyIfNil(report.Indicators.PhoneNumbers),
			SuspiciousKeywords: emptyIfNil(report.SuspiciousKeywords),
		},
		AgentNotes: report.Notes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.collectorURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post report to collector: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}

	r.logger.Info("Report delivered to collector",
		zap.String("conversation_id", report.ConversationID),
		zap.String("report_id", report.ReportID))
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
