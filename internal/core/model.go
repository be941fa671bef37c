package core

import (
	"time"
)

// ScamCategory identifies the kind of scam a conversation was classified as.
type ScamCategory int

const (
	CategoryUnknown ScamCategory = iota
	CategoryPrizeScam
	CategoryPhishing
	CategoryJobScam
	CategoryPaymentScam
)

// String returns the wire name of the category.
func (c ScamCategory) String() string {
	switch c {
	case CategoryPrizeScam:
		return "prize_scam"
	case CategoryPhishing:
		return "phishing"
	case CategoryJobScam:
		return "job_scam"
	case CategoryPaymentScam:
		return "payment_scam"
	default:
		return "unknown"
	}
}

// ClassificationResult represents the verdict on the first message of a
// conversation. Category is only meaningful when IsScam is true.
type ClassificationResult struct {
	IsScam          bool
	Confidence      float64
	Category        ScamCategory
	MatchedKeywords []string
	AnalyzedAt      time.Time
}

// Indicators is the set of structured artifacts extracted from scammer
// messages. Each slice holds unique strings in discovery order.
type Indicators struct {
	PaymentHandles []string `json:"paymentHandles"`
	BankAccounts   []string `json:"bankAccounts"`
	IFSCCodes      []string `json:"ifscCodes"`
	PhoneNumbers   []string `json:"phoneNumbers"`
	URLs           []string `json:"urls"`
	SuspiciousURLs []string `json:"suspiciousUrls"`
}

// Total returns the cumulative indicator count across all categories.
// Suspicious URLs are a subset of URLs and are not counted twice.
func (i *Indicators) Total() int {
	return len(i.PaymentHandles) + len(i.BankAccounts) + len(i.IFSCCodes) +
		len(i.PhoneNumbers) + len(i.URLs)
}

// Speaker identifies who produced a turn in the conversation history.
type Speaker string

const (
	SpeakerScammer Speaker = "scammer"
	SpeakerDecoy   Speaker = "decoy"
)

// TurnMessage is one entry in a session's conversation history.
type TurnMessage struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sentAt"`
}

// EngagementReport is the final payload flushed to the external collector
// once a scam engagement is considered complete.
type EngagementReport struct {
	ReportID           string
	ConversationID     string
	ScamDetected       bool
	Category           ScamCategory
	Confidence         float64
	TotalTurns         int
	Indicators         Indicators
	SuspiciousKeywords []string
	Notes              string
	ReportedAt         time.Time
}

// SessionStatus is the inspection view of a session exposed by the service.
type SessionStatus struct {
	ConversationID string
	State          SessionState
	ScamDetected   bool
	Confidence     float64
	Category       ScamCategory
	TurnCount      int
	Reported       bool
	Indicators     Indicators
	History        []TurnMessage
	CreatedAt      time.Time
}
