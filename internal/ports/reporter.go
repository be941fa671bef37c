package ports

import (
	"context"

	"github.com/mikey/llm-scam-honeypot/internal/core"
)

// Reporter defines the interface for flushing a finished engagement to the
// external collector.
type Reporter interface {
	// Report submits the final engagement report
	Report(ctx context.Context, report *core.EngagementReport) error
}
