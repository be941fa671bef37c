package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/llm-scam-honeypot/internal/adapters/archive"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// ArchiveFactory creates report archives based on configuration
type ArchiveFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewArchiveFactory creates a new archive factory
func NewArchiveFactory(cfg *config.Config, logger *zap.Logger) *ArchiveFactory {
	return &ArchiveFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReportArchive creates a report archive based on the configuration
func (f *ArchiveFactory) CreateReportArchive() (core.ReportArchive, error) {
	archiveCfg := f.cfg.GetArchive()

	switch archiveCfg.Type {
	case "memory":
		return archive.NewMemoryArchive(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(archiveCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return archive.NewSQLiteArchive(archiveCfg.SQLitePath, f.logger)
	case "mysql":
		return archive.NewMySQLArchive(archiveCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported archive type: %s", archiveCfg.Type)
	}
}
