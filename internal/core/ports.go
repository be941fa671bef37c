package core

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a conversation id has no session.
var ErrSessionNotFound = errors.New("session not found")

// ReplyGenerator defines the interface for the external text-generation
// capability that produces decoy replies.
type ReplyGenerator interface {
	// GenerateReply returns one short decoy reply given the composed
	// engagement instruction and the conversation so far.
	GenerateReply(ctx context.Context, instruction string, history []TurnMessage) (string, error)
}

// Reporter defines the interface for flushing a finished engagement to the
// external collector.
type Reporter interface {
	// Report submits the final engagement report. An error means the flush
	// did not happen and may be retried on a later turn.
	Report(ctx context.Context, report *EngagementReport) error
}

// ReportArchive defines the interface for keeping a local copy of flushed
// reports.
type ReportArchive interface {
	// Store persists a report that was successfully flushed.
	Store(ctx context.Context, report *EngagementReport) error
}
