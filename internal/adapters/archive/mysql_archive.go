package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// MySQLArchive is a MySQL implementation of the ReportArchive interface.
type MySQLArchive struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLArchive creates a new MySQL archive
func NewMySQLArchive(dsn string, logger *zap.Logger) (*MySQLArchive, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS honeypot_reports (
			report_id VARCHAR(36) PRIMARY KEY,
			conversation_id VARCHAR(255),
			scam_detected BOOLEAN,
			category VARCHAR(32),
			confidence FLOAT,
			total_turns INT,
			indicators TEXT,
			keywords TEXT,
			notes TEXT,
			reported_at TIMESTAMP,
			INDEX idx_conversation_id (conversation_id)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLArchive{
		db:     db,
		logger: logger,
	}, nil
}

// Store persists a flushed report
func (a *MySQLArchive) Store(ctx context.Context, report *core.EngagementReport) error {
	indicators, err := json.Marshal(report.Indicators)
	if err != nil {
		return fmt.Errorf("failed to marshal indicators: %w", err)
	}
	keywords, err := json.Marshal(report.SuspiciousKeywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		REPLACE INTO honeypot_reports
		(report_id, conversation_id, scam_detected, category, confidence, total_turns, indicators, keywords, notes, reported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ReportID, report.ConversationID, report.ScamDetected, report.Category.String(),
		report.Confidence, report.TotalTurns, string(indicators), string(keywords),
		report.Notes, report.ReportedAt)

	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	a.logger.Debug("Archived report",
		zap.String("report_id", report.ReportID),
		zap.String("conversation_id", report.ConversationID))
	return nil
}

// Stop closes the database connection
func (a *MySQLArchive) Stop() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
