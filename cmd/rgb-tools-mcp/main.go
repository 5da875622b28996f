package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/rgb-tools-mcp/internal/config"
	"github.com/ironsheep/rgb-tools-mcp/internal/logging"
	"github.com/ironsheep/rgb-tools-mcp/internal/server"
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
			fmt.Printf("rgb-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("rgb-tools-mcp - MCP server for RGB image transforms and k-NN classification")
			fmt.Println()
			fmt.Println("Usage: rgb-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug            Log level: debug, info, warn, error (default info)\n", config.EnvLogLevel)
			fmt.Printf("  %s=standard      Tier for processor_create: standard, premium\n", config.EnvDefaultTier)
			fmt.Printf("  %s=5                    Neighbors used by knn_fit\n", config.EnvNeighbors)
			fmt.Printf("  %s=knn_data      Training directory used by knn_fit\n", config.EnvTrainingDir)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr; stdout is for MCP protocol
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting RGB tools MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
		zap.String("default_tier", cfg.DefaultTier),
		zap.Int("knn_k", cfg.Neighbors),
	)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
