package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/wordsearch-extract/internal/config"
	"github.com/ironsheep/wordsearch-extract/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("wordsearch-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("wordsearch-mcp - MCP server for word-search page extraction")
			fmt.Println()
			fmt.Println("Usage: wordsearch-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  WORDSEARCH_CONFIG=<file>       YAML configuration file")
			fmt.Println("  WORDSEARCH_LOG_LEVEL=debug     Log level (debug, info, warn, error)")
			fmt.Println("  WORDSEARCH_WORKERS=<n>         Export and projection workers")
			fmt.Println("  WORDSEARCH_FORMAT=bmp|png      Glyph file format")
			fmt.Println("  WORDSEARCH_OCR_LANGUAGE=eng    Tesseract language")
			fmt.Println("  TESSDATA_PREFIX=<dir>          Tesseract data folder")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Log to stderr, stdout is for MCP protocol
	logger := config.NewLogger(os.Stderr)
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	if err := run(logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(os.Getenv("WORDSEARCH_CONFIG"))
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	defer srv.Close()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
