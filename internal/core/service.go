package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReportedKeywords caps the suspicious-keyword list forwarded to the
// collector.
const maxReportedKeywords = 10

// HoneypotService orchestrates one conversation turn: classification on the
// first message, extraction on every message, decoy reply generation while a
// scam is engaged, and the one-time flush to the collector.
type HoneypotService struct {
	classifier *Classifier
	extractor  *Extractor
	store      *SessionStore
	generator  ReplyGenerator
	reporter   Reporter
	archive    ReportArchive
	logger     *zap.Logger

	generateTimeout time.Duration
	reportTimeout   time.Duration

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewHoneypotService creates the orchestrator.
func NewHoneypotService(
	classifier *Classifier,
	extractor *Extractor,
	store *SessionStore,
	generator ReplyGenerator,
	reporter Reporter,
	archive ReportArchive,
	logger *zap.Logger,
	generateTimeout time.Duration,
	reportTimeout time.Duration,
) *HoneypotService {
	return &HoneypotService{
		classifier:      classifier,
		extractor:       extractor,
		store:           store,
		generator:       generator,
		reporter:        reporter,
		archive:         archive,
		logger:          logger,
		generateTimeout: generateTimeout,
		reportTimeout:   reportTimeout,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ProcessTurn handles one inbound message for a conversation and returns the
// decoy's reply. Turns for the same conversation are serialized on the
// session lock; turns for different conversations proceed in parallel.
// Generation and flush failures are recovered here and never surface to the
// caller.
func (s *HoneypotService) ProcessTurn(ctx context.Context, conversationID, text string) (string, error) {
	session := s.store.GetOrCreate(conversationID)
	session.Lock()
	defer session.Unlock()

	// First message decides the verdict, once per session.
	if session.State == StateUnclassified {
		result := s.classifier.Classify(text)
		session.ApplyClassification(result)
		s.logger.Info("Classified conversation",
			zap.String("conversation_id", conversationID),
			zap.Bool("is_scam", result.IsScam),
			zap.Float64("confidence", result.Confidence),
			zap.String("category", result.Category.String()))
	}

	// Extraction runs in every state: even a "safe" message can leak an
	// artifact.
	extracted := s.extractor.ExtractAll(text)
	session.MergeIndicators(extracted)
	if extracted.Total() > 0 {
		s.logger.Info("Extracted indicators",
			zap.String("conversation_id", conversationID),
			zap.Int("new_items", extracted.Total()),
			zap.Int("cumulative", session.Indicators.Total()))
	}

	var reply string
	if session.ScamDetected() {
		reply = s.engageReply(ctx, session, text)
	} else {
		reply = NeutralReply
	}

	session.TurnCount++

	if session.ShouldFlush() {
		s.flush(ctx, session)
	}

	return reply, nil
}

// engageReply records the inbound message, asks the generator for a decoy
// reply and records it. On generator failure it substitutes a fixed filler
// so the turn proceeds unaffected.
func (s *HoneypotService) engageReply(ctx context.Context, session *Session, text string) string {
	session.AppendTurn(SpeakerScammer, text)

	category := CategoryUnknown
	if session.Classification != nil {
		category = session.Classification.Category
	}
	instruction := BuildInstruction(session.Persona, category, session.Indicators)

	gctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	reply, err := s.generator.GenerateReply(gctx, instruction, session.History)
	if err != nil {
		s.logger.Warn("Reply generation failed, using fallback",
			zap.String("conversation_id", session.ConversationID),
			zap.Error(err))
		reply = s.fallbackReply()
	}

	session.AppendTurn(SpeakerDecoy, reply)
	return reply
}

// flush reports the session to the collector and, on success, marks it
// reported and archives a local copy. A failed flush is only logged; the
// completion check will fire again on a later turn.
func (s *HoneypotService) flush(ctx context.Context, session *Session) {
	report := s.buildReport(session)

	rctx, cancel := context.WithTimeout(ctx, s.reportTimeout)
	defer cancel()

	if err := s.reporter.Report(rctx, report); err != nil {
		s.logger.Error("Failed to flush report",
			zap.String("conversation_id", session.ConversationID),
			zap.Error(err))
		return
	}

	session.MarkReported()
	s.logger.Info("Flushed engagement report",
		zap.String("conversation_id", session.ConversationID),
		zap.String("report_id", report.ReportID),
		zap.Int("total_turns", report.TotalTurns),
		zap.Int("indicators", report.Indicators.Total()))

	if s.archive != nil {
		if err := s.archive.Store(rctx, report); err != nil {
			s.logger.Error("Failed to archive report", zap.Error(err))
		}
	}
}

// TriggerFlush sends the report for a conversation regardless of the
// completion policy. Used by the manual flush endpoint.
func (s *HoneypotService) TriggerFlush(ctx context.Context, conversationID string) error {
	session, err := s.store.Get(conversationID)
	if err != nil {
		return err
	}

	session.Lock()
	defer session.Unlock()

	report := s.buildReport(session)

	rctx, cancel := context.WithTimeout(ctx, s.reportTimeout)
	defer cancel()

	if err := s.reporter.Report(rctx, report); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	session.MarkReported()

	if s.archive != nil {
		if err := s.archive.Store(rctx, report); err != nil {
			s.logger.Error("Failed to archive report", zap.Error(err))
		}
	}
	return nil
}

// Status returns the inspection view of a conversation, or
// ErrSessionNotFound for an unknown id.
func (s *HoneypotService) Status(conversationID string) (SessionStatus, error) {
	session, err := s.store.Get(conversationID)
	if err != nil {
		return SessionStatus{}, err
	}

	session.Lock()
	defer session.Unlock()
	return session.Status(), nil
}

// DeleteSession removes a conversation's state and reports whether it
// existed.
func (s *HoneypotService) DeleteSession(conversationID string) bool {
	return s.store.Delete(conversationID)
}

// SessionCount returns the number of live sessions.
func (s *HoneypotService) SessionCount() int {
	return s.store.Count()
}

func (s *HoneypotService) buildReport(session *Session) *EngagementReport {
	report := &EngagementReport{
		ReportID:       uuid.NewString(),
		ConversationID: session.ConversationID,
		ScamDetected:   session.ScamDetected(),
		TotalTurns:     session.TurnCount,
		Indicators:     session.Indicators,
		ReportedAt:     time.Now(),
	}
	if session.Classification != nil {
		report.Category = session.Classification.Category
		report.Confidence = session.Classification.Confidence
		keywords := session.Classification.MatchedKeywords
		if len(keywords) > maxReportedKeywords {
			keywords = keywords[:maxReportedKeywords]
		}
		report.SuspiciousKeywords = keywords
	}
	report.Notes = fmt.Sprintf("Scam type: %s. Confidence: %.2f. Agent engaged successfully.",
		report.Category, report.Confidence)
	return report
}

func (s *HoneypotService) fallbackReply() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return FallbackReplies[s.rng.Intn(len(FallbackReplies))]
}
