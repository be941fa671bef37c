package archive

import (
	"context"
	"sync"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// MemoryArchive is an in-memory implementation of the ReportArchive
// interface. It is the default and is also what the tests use.
type MemoryArchive struct {
	reports []*core.EngagementReport
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryArchive creates a new in-memory archive
func NewMemoryArchive(logger *zap.Logger) *MemoryArchive {
	return &MemoryArchive{
		logger: logger,
	}
}

// Store keeps a copy of a flushed report
func (a *MemoryArchive) Store(ctx context.Context, report *core.EngagementReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reports = append(a.reports, report)
	a.logger.Debug("Archived report",
		zap.String("report_id", report.ReportID),
		zap.Int("archived_total", len(a.reports)))
	return nil
}

// Reports returns a snapshot of everything archived so far
func (a *MemoryArchive) Reports() []*core.EngagementReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*core.EngagementReport(nil), a.reports...)
}
