package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
	"github.com/mikey/llm-scam-honeypot/internal/logging"
	"go.uber.org/zap"
)

var (
	// Detection flags
	threshold    = flag.Float64("threshold", 0.6, "Confidence threshold for scam detection")
	keywordBoost = flag.Float64("keyword-boost", 3.0, "Boost factor applied to the keyword score")

	// Input flags
	inputFile  = flag.String("file", "", "Input message file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	detectorCfg := cfg.GetDetector()

	lex := lexicon.Default()
	classifier := core.NewClassifier(lex, detectorCfg.Threshold, detectorCfg.KeywordBoost, logger)
	extractor := core.NewExtractor(lex)

	// Read message from file or stdin
	var messageReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		messageReader = file
		logger.Info("Reading message from file", zap.String("file", *inputFile))
	} else {
		messageReader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	textBytes, err := io.ReadAll(messageReader)
	if err != nil {
		logger.Fatal("Failed to read message", zap.Error(err))
	}
	text := strings.TrimSpace(string(textBytes))

	// Print message summary
	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Length: %d bytes\n", len(text))
	preview := text
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	fmt.Printf("Text: %s\n", preview)
	fmt.Printf("\n")

	// Classify
	fmt.Printf("=== Classification ===\n")
	fmt.Printf("Threshold: %.2f\n", detectorCfg.Threshold)

	result := classifier.Classify(text)

	fmt.Printf("Is scam: %t\n", result.IsScam)
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	if result.IsScam {
		fmt.Printf("Category: %s\n", result.Category)
	}
	if len(result.MatchedKeywords) > 0 {
		fmt.Printf("Matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}

	// Extract
	indicators := extractor.ExtractAll(text)

	fmt.Printf("\n=== Extracted Indicators ===\n")
	printIndicators("Payment handles", indicators.PaymentHandles)
	printIndicators("Bank accounts", indicators.BankAccounts)
	printIndicators("IFSC codes", indicators.IFSCCodes)
	printIndicators("Phone numbers", indicators.PhoneNumbers)
	printIndicators("URLs", indicators.URLs)
	printIndicators("Suspicious URLs", indicators.SuspiciousURLs)
	if indicators.Total() == 0 {
		fmt.Printf("(none)\n")
	}
}

func printIndicators(label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Printf("%s: %s\n", label, strings.Join(values, ", "))
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("detector.threshold", *threshold)
	v.Set("detector.keyword_boost", *keywordBoost)

	return config.NewFromViper(v)
}
