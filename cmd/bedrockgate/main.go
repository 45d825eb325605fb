package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/teilomillet/bedrockgate/config"
	"github.com/teilomillet/bedrockgate/errors"
	"github.com/teilomillet/bedrockgate/server"
	"github.com/teilomillet/bedrockgate/server/handlers"
	"github.com/teilomillet/bedrockgate/server/metrics"
	"github.com/teilomillet/bedrockgate/server/provider"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile = flag.String("config", "bedrockgate.yaml", "Path to configuration file")
	envFile    = flag.String("env", ".env", "Path to dotenv file, loaded when present")
	validate   = flag.Bool("validate", false, "Validate configuration and exit")
	version    = flag.Bool("version", false, "Print version and exit")
)

const Version = "v0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("bedrockgate %s\n", Version)
		os.Exit(0)
	}

	// Variables already set in the environment win over the file
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	errors.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()

	client, err := provider.NewBedrockClient(ctx, cfg.AWS, logger, m.Registry())
	if err != nil {
		logger.Fatal("Failed to create Bedrock client", zap.Error(err))
	}

	if !cfg.AWS.HasModel() {
		logger.Warn("MODEL_ID is not set, /bedrock/invoke will fail")
	}
	if !cfg.AWS.HasKnowledgeBase() {
		logger.Warn("KNOWLEDGE_BASE_ID or MODEL_ARN is not set, /bedrock/query will fail")
	}

	generation := handlers.NewGenerationHandler(client, m, logger)
	router := server.NewRouter(generation, m, logger)
	srv := server.NewServer(cfg.Server, router, logger)

	logger.Info("Starting bedrockgate",
		zap.String("version", Version),
		zap.String("address", cfg.Server.Addr()),
		zap.String("region", cfg.AWS.Region),
	)
	if err := srv.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// newLogger builds the process logger from the logging section. json uses
// the production encoder, text the console encoder.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "text" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
