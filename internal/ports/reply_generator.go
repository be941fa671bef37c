package ports

import (
	"context"

	"github.com/mikey/llm-scam-honeypot/internal/core"
)

// ReplyGenerator defines the interface for the external text-generation
// capability that produces decoy replies.
type ReplyGenerator interface {
	// GenerateReply returns one short decoy reply given the composed
	// engagement instruction and the conversation so far.
	GenerateReply(ctx context.Context, instruction string, history []core.TurnMessage) (string, error)
}
