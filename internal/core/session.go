package core

import (
	"sync"
	"time"
)

// SessionState tracks where a conversation is in the engagement lifecycle.
type SessionState int

const (
	// StateUnclassified means no message has been processed yet.
	StateUnclassified SessionState = iota
	// StateEngaging means the first message was classified as a scam and the
	// decoy is actively conversing.
	StateEngaging
	// StateNotScam is terminal: the first message was classified as safe and
	// no further classification is attempted.
	StateNotScam
	// StateReported means the final report was flushed. The conversation may
	// continue but the flush never repeats.
	StateReported
)

// String returns the wire name of the state.
func (s SessionState) String() string {
	switch s {
	case StateEngaging:
		return "engaging"
	case StateNotScam:
		return "not_scam"
	case StateReported:
		return "reported"
	default:
		return "unclassified"
	}
}

// Session is the per-conversation engagement state. All fields are guarded
// by mu; one turn for a conversation holds the lock end to end so that
// concurrent turns for the same id are serialized.
type Session struct {
	mu sync.Mutex

	ConversationID string
	State          SessionState
	Classification *ClassificationResult
	Indicators     Indicators
	Persona        Persona
	TurnCount      int
	History        []TurnMessage
	CreatedAt      time.Time
}

// NewSession creates an empty session for the conversation id. The persona
// is chosen once here and held for the session's lifetime.
func NewSession(conversationID string, persona Persona) *Session {
	return &Session{
		ConversationID: conversationID,
		State:          StateUnclassified,
		Persona:        persona,
		CreatedAt:      time.Now(),
	}
}

// Lock serializes turn processing for this conversation.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the turn lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// ApplyClassification stores the first-turn verdict and moves the session
// out of StateUnclassified. It is a no-op after the first turn.
func (s *Session) ApplyClassification(result *ClassificationResult) {
	if s.State != StateUnclassified {
		return
	}
	s.Classification = result
	if result.IsScam {
		s.State = StateEngaging
	} else {
		s.State = StateNotScam
	}
}

// MergeIndicators unions newly extracted indicators into the cumulative set.
// Entries are deduplicated by exact string value; discovery order is kept.
// Indicators are never removed.
func (s *Session) MergeIndicators(extracted Indicators) {
	s.Indicators.PaymentHandles = mergeUnique(s.Indicators.PaymentHandles, extracted.PaymentHandles)
	s.Indicators.BankAccounts = mergeUnique(s.Indicators.BankAccounts, extracted.BankAccounts)
	s.Indicators.IFSCCodes = mergeUnique(s.Indicators.IFSCCodes, extracted.IFSCCodes)
	s.Indicators.PhoneNumbers = mergeUnique(s.Indicators.PhoneNumbers, extracted.PhoneNumbers)
	s.Indicators.URLs = mergeUnique(s.Indicators.URLs, extracted.URLs)
	s.Indicators.SuspiciousURLs = mergeUnique(s.Indicators.SuspiciousURLs, extracted.SuspiciousURLs)
}

// AppendTurn records a history entry.
func (s *Session) AppendTurn(speaker Speaker, text string) {
	s.History = append(s.History, TurnMessage{
		Speaker: speaker,
		Text:    text,
		SentAt:  time.Now(),
	})
}

// ScamDetected reports the stored verdict, false while unclassified.
func (s *Session) ScamDetected() bool {
	return s.State == StateEngaging || s.State == StateReported
}

// Reported reports whether the final flush already happened.
func (s *Session) Reported() bool {
	return s.State == StateReported
}

// ShouldFlush is the completion policy: engage long enough to collect
// something, but give up on an empty-handed conversation after five turns.
func (s *Session) ShouldFlush() bool {
	if s.State != StateEngaging {
		return false
	}
	if s.TurnCount < 3 {
		return false
	}
	return s.Indicators.Total() > 0 || s.TurnCount >= 5
}

// MarkReported transitions to StateReported after a successful flush. There
// is no transition back.
func (s *Session) MarkReported() {
	if s.State == StateEngaging {
		s.State = StateReported
	}
}

// Status snapshots the session for inspection. Caller must hold the lock.
func (s *Session) Status() SessionStatus {
	status := SessionStatus{
		ConversationID: s.ConversationID,
		State:          s.State,
		ScamDetected:   s.ScamDetected(),
		TurnCount:      s.TurnCount,
		Reported:       s.Reported(),
		Indicators:     s.Indicators,
		History:        append([]TurnMessage(nil), s.History...),
		CreatedAt:      s.CreatedAt,
	}
	if s.Classification != nil {
		status.Confidence = s.Classification.Confidence
		status.Category = s.Classification.Category
	}
	return status
}

func mergeUnique(existing, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range incoming {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		existing = append(existing, v)
	}
	return existing
}
