// Package main - Entry point for the ingredient-pricing HTTP server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ingredient-pricing/api"
	"ingredient-pricing/core/bulk"
	"ingredient-pricing/core/pricing"
	"ingredient-pricing/core/quantity"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	uiPath := flag.String("ui", "", "Path to UI files (overrides config)")
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *uiPath != "" {
		cfg.Server.UIPath = *uiPath
	}
	if env := os.Getenv("PRICING_ADDR"); env != "" && *addr == "" {
		cfg.Server.Addr = env
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// Construct the core once; it is stateless and shared by every request.
	parser := quantity.NewParser(cfg.Parser.StrictUnitRequired)
	calc := pricing.NewCalculator(parser, cfg.Precision)
	proc := bulk.NewProcessor(calc, cfg.Bulk)

	server := api.NewServer(version, cfg, calc, proc)

	logging.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("version", version),
		zap.Bool("strict_units", cfg.Parser.StrictUnitRequired),
	)

	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
