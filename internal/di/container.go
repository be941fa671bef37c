package di

import (
	"math/rand"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-honeypot/internal/adapters/report"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/factory"
	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
	"github.com/mikey/llm-scam-honeypot/internal/logging"
	"github.com/mikey/llm-scam-honeypot/internal/ports"
	"github.com/mikey/llm-scam-honeypot/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewArchiveFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEndpointFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register lexicon
	if err := container.Provide(lexicon.Default); err != nil {
		return nil, err
	}

	// Register detection core
	if err := container.Provide(func(cfg *config.Config, lex *lexicon.Lexicon, logger *zap.Logger) *core.Classifier {
		detectorCfg := cfg.GetDetector()
		return core.NewClassifier(lex, detectorCfg.Threshold, detectorCfg.KeywordBoost, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewExtractor); err != nil {
		return nil, err
	}

	// Register session store with a time-seeded persona picker
	if err := container.Provide(func(logger *zap.Logger) *core.SessionStore {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return core.NewSessionStore(rng, logger)
	}); err != nil {
		return nil, err
	}

	// Register reply generator
	if err := container.Provide(func(f *factory.LLMFactory) (core.ReplyGenerator, error) {
		return f.CreateReplyGenerator()
	}); err != nil {
		return nil, err
	}

	// Register reporter
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.Reporter {
		return report.NewHTTPReporter(cfg.GetReport().CollectorURL, logger)
	}); err != nil {
		return nil, err
	}

	// Register report archive
	if err := container.Provide(func(f *factory.ArchiveFactory) (core.ReportArchive, error) {
		return f.CreateReportArchive()
	}); err != nil {
		return nil, err
	}

	// Register honeypot service
	if err := container.Provide(func(
		classifier *core.Classifier,
		extractor *core.Extractor,
		store *core.SessionStore,
		generator core.ReplyGenerator,
		reporter core.Reporter,
		archive core.ReportArchive,
		logger *zap.Logger,
		cfg *config.Config,
	) (*core.HoneypotService, error) {
		generateTimeout, err := cfg.GetDuration("engage.generate_timeout")
		if err != nil {
			return nil, err
		}
		reportTimeout, err := cfg.GetDuration("report.timeout")
		if err != nil {
			return nil, err
		}
		return core.NewHoneypotService(
			classifier,
			extractor,
			store,
			generator,
			reporter,
			archive,
			logger,
			generateTimeout,
			reportTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register message endpoint
	if err := container.Provide(func(f *factory.EndpointFactory) (ports.MessageEndpoint, error) {
		return f.CreateMessageEndpoint()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
