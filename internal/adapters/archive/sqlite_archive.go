package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// SQLiteArchive is a SQLite implementation of the ReportArchive interface.
type SQLiteArchive struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteArchive creates a new SQLite archive
func NewSQLiteArchive(dbPath string, logger *zap.Logger) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS honeypot_reports (
			report_id TEXT PRIMARY KEY,
			conversation_id TEXT,
			scam_detected BOOLEAN,
			category TEXT,
			confidence REAL,
			total_turns INTEGER,
			indicators TEXT,
			keywords TEXT,
			notes TEXT,
			reported_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversation_id ON honeypot_reports(conversation_id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteArchive{
		db:     db,
		logger: logger,
	}, nil
}

// Store persists a flushed report
func (a *SQLiteArchive) Store(ctx context.Context, report *core.EngagementReport) error {
	indicators, err := json.Marshal(report.Indicators)
	if err != nil {
		return fmt.Errorf("failed to marshal indicators: %w", err)
	}
	keywords, err := json.Marshal(report.SuspiciousKeywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO honeypot_reports
		(report_id, conversation_id, scam_detected, category, confidence, total_turns, indicators, keywords, notes, reported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ReportID, report.ConversationID, report.ScamDetected, report.Category.String(),
		report.Confidence, report.TotalTurns, string(indicators), string(keywords),
		report.Notes, report.ReportedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	a.logger.Debug("Archived report",
		zap.String("report_id", report.ReportID),
		zap.String("conversation_id", report.ConversationID))
	return nil
}

// Stop closes the database connection
func (a *SQLiteArchive) Stop() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
