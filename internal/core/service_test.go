package core

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const prizeScamText = "Congratulations! You won Rs 50,000 in lucky draw! " +
	"Send Rs 500 to 9876543210 at paytm-handle to claim. Hurry, offer expires today!"

type scriptedGenerator struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (g *scriptedGenerator) GenerateReply(_ context.Context, _ string, _ []TurnMessage) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type captureReporter struct {
	mu       sync.Mutex
	attempts []*EngagementReport
	err      error
}

func (r *captureReporter) Report(_ context.Context, report *EngagementReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, report)
	return r.err
}

func (r *captureReporter) attemptCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts)
}

func (r *captureReporter) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *captureReporter) last() *EngagementReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.attempts) == 0 {
		return nil
	}
	return r.attempts[len(r.attempts)-1]
}

type captureArchive struct {
	mu      sync.Mutex
	reports []*EngagementReport
}

func (a *captureArchive) Store(_ context.Context, report *EngagementReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, report)
	return nil
}

func (a *captureArchive) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.reports)
}

func newTestService(gen ReplyGenerator, rep Reporter, arch ReportArchive) *HoneypotService {
	lex := lexicon.Default()
	logger := zap.NewNop()
	classifier := NewClassifier(lex, 0.6, 3.0, logger)
	extractor := NewExtractor(lex)
	store := NewSessionStore(rand.New(rand.NewSource(1)), logger)
	return NewHoneypotService(classifier, extractor, store, gen, rep, arch, logger,
		time.Second, time.Second)
}

func TestProcessTurnEngagesAndFlushesPrizeScam(t *testing.T) {
	gen := &scriptedGenerator{reply: "Arre wah! Kaise claim karu?"}
	rep := &captureReporter{}
	arch := &captureArchive{}
	svc := newTestService(gen, rep, arch)
	ctx := context.Background()

	reply, err := svc.ProcessTurn(ctx, "conv-1", prizeScamText)
	require.NoError(t, err)
	assert.Equal(t, gen.reply, reply)

	_, err = svc.ProcessTurn(ctx, "conv-1", "mera UPI hai winner@paytm, wahan bhejo")
	require.NoError(t, err)
	assert.Equal(t, 0, rep.attemptCount(), "no flush before three turns")

	_, err = svc.ProcessTurn(ctx, "conv-1", "ya phir call karo 9876543210 pe")
	require.NoError(t, err)

	require.Equal(t, 1, rep.attemptCount(), "flush fires exactly once")
	report := rep.last()
	assert.True(t, report.ScamDetected)
	assert.Equal(t, CategoryPrizeScam, report.Category)
	assert.Equal(t, 3, report.TotalTurns)
	assert.Equal(t, []string{"winner@paytm"}, report.Indicators.PaymentHandles)
	assert.Equal(t, []string{"9876543210"}, report.Indicators.PhoneNumbers)
	assert.NotEmpty(t, report.ReportID)
	assert.Contains(t, report.Notes, "prize_scam")
	assert.Equal(t, 1, arch.count())

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, StateReported, status.State)

	// The conversation keeps going after the flush, but the report never
	// repeats.
	reply, err = svc.ProcessTurn(ctx, "conv-1", "jaldi karo, offer khatam ho jayega")
	require.NoError(t, err)
	assert.Equal(t, gen.reply, reply)
	assert.Equal(t, 1, rep.attemptCount())
	assert.Equal(t, 4, gen.callCount())
}

func TestProcessTurnNeutralForSafeConversation(t *testing.T) {
	gen := &scriptedGenerator{reply: "should never be used"}
	rep := &captureReporter{}
	svc := newTestService(gen, rep, &captureArchive{})

	reply, err := svc.ProcessTurn(context.Background(), "conv-1", "Hello, how are you? Nice weather today!")
	require.NoError(t, err)

	assert.Equal(t, NeutralReply, reply)
	assert.Equal(t, 0, gen.callCount(), "generator is never invoked for safe conversations")
	assert.Equal(t, 0, rep.attemptCount())

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, StateNotScam, status.State)
	assert.Equal(t, 1, status.TurnCount)
	assert.Empty(t, status.History)
}

func TestProcessTurnExtractsEvenFromSafeConversation(t *testing.T) {
	svc := newTestService(&scriptedGenerator{reply: "ok"}, &captureReporter{}, &captureArchive{})

	_, err := svc.ProcessTurn(context.Background(), "conv-1", "Hi! By the way my number is 9876543210")
	require.NoError(t, err)

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"9876543210"}, status.Indicators.PhoneNumbers)
}

func TestProcessTurnFallsBackOnGeneratorFailure(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("model unavailable")}
	svc := newTestService(gen, &captureReporter{}, &captureArchive{})

	reply, err := svc.ProcessTurn(context.Background(), "conv-1", prizeScamText)
	require.NoError(t, err, "generation failure never surfaces to the caller")
	assert.Contains(t, FallbackReplies, reply)

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, 1, status.TurnCount, "the turn still advances")
	assert.Equal(t, []string{"9876543210"}, status.Indicators.PhoneNumbers, "extraction still runs")
	require.Len(t, status.History, 2)
	assert.Equal(t, SpeakerDecoy, status.History[1].Speaker)
	assert.Equal(t, reply, status.History[1].Text)
}

func TestFlushRetriesOnLaterTurnAfterReporterFailure(t *testing.T) {
	gen := &scriptedGenerator{reply: "accha"}
	rep := &captureReporter{err: errors.New("collector down")}
	arch := &captureArchive{}
	svc := newTestService(gen, rep, arch)
	ctx := context.Background()

	svc.ProcessTurn(ctx, "conv-1", prizeScamText)
	svc.ProcessTurn(ctx, "conv-1", "winner@paytm pe bhejo")
	svc.ProcessTurn(ctx, "conv-1", "jaldi karo")

	require.Equal(t, 1, rep.attemptCount())
	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, StateEngaging, status.State, "a failed flush leaves the session engaging")
	assert.Equal(t, 0, arch.count(), "nothing is archived for a failed flush")

	rep.setErr(nil)
	svc.ProcessTurn(ctx, "conv-1", "sun rahe ho?")

	assert.Equal(t, 2, rep.attemptCount())
	status, err = svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, StateReported, status.State)
	assert.Equal(t, 1, arch.count())
}

func TestConcurrentTurnsSameConversation(t *testing.T) {
	gen := &scriptedGenerator{reply: "haan bolo"}
	rep := &captureReporter{}
	svc := newTestService(gen, rep, &captureArchive{})

	const turns = 10
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessTurn(context.Background(), "conv-1", prizeScamText)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, turns, status.TurnCount, "no turn is lost under contention")
	assert.Equal(t, 1, rep.attemptCount(), "the flush fires exactly once")
	assert.Equal(t, turns, gen.callCount())
}

func TestTriggerFlushIgnoresCompletionPolicy(t *testing.T) {
	rep := &captureReporter{}
	svc := newTestService(&scriptedGenerator{reply: "ok"}, rep, &captureArchive{})
	ctx := context.Background()

	svc.ProcessTurn(ctx, "conv-1", prizeScamText)

	require.NoError(t, svc.TriggerFlush(ctx, "conv-1"))
	require.Equal(t, 1, rep.attemptCount())
	assert.True(t, rep.last().ScamDetected)
	assert.Equal(t, 1, rep.last().TotalTurns)

	status, err := svc.Status("conv-1")
	require.NoError(t, err)
	assert.Equal(t, StateReported, status.State)
}

func TestTriggerFlushUnknownSession(t *testing.T) {
	svc := newTestService(&scriptedGenerator{reply: "ok"}, &captureReporter{}, &captureArchive{})

	err := svc.TriggerFlush(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTriggerFlushPropagatesReporterError(t *testing.T) {
	rep := &captureReporter{err: errors.New("collector down")}
	svc := newTestService(&scriptedGenerator{reply: "ok"}, rep, &captureArchive{})
	ctx := context.Background()

	svc.ProcessTurn(ctx, "conv-1", prizeScamText)

	err := svc.TriggerFlush(ctx, "conv-1")
	require.Error(t, err)

	status, serr := svc.Status("conv-1")
	require.NoError(t, serr)
	assert.NotEqual(t, StateReported, status.State)
}

func TestDeleteSessionAndCount(t *testing.T) {
	svc := newTestService(&scriptedGenerator{reply: "ok"}, &captureReporter{}, &captureArchive{})
	ctx := context.Background()

	svc.ProcessTurn(ctx, "conv-1", "hello")
	svc.ProcessTurn(ctx, "conv-2", "hello")
	assert.Equal(t, 2, svc.SessionCount())

	assert.True(t, svc.DeleteSession("conv-1"))
	assert.False(t, svc.DeleteSession("conv-1"))
	assert.Equal(t, 1, svc.SessionCount())

	_, err := svc.Status("conv-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
