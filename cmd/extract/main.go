package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/carelog/receipt-extract/constants"
	"github.com/carelog/receipt-extract/internal/analyze"
	"github.com/carelog/receipt-extract/internal/common"
	"github.com/carelog/receipt-extract/internal/engine"
	"github.com/carelog/receipt-extract/internal/patterns"
	"github.com/carelog/receipt-extract/internal/recognize"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "extract <receipt-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		logger.Error("unsupported file extension", "path", path)
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Fixed cost-ascending order: text layer, local OCR, cloud vision.
	backends := []recognize.Backend{
		recognize.NewPDFTextBackend(cfg.OCR.Pdftotext, logger),
		recognize.NewTesseractBackend(cfg.OCR, logger),
		recognize.NewGeminiBackend(cfg.Vision, logger),
	}

	analyzer := analyze.New(patterns.Default(), logger)
	orch := engine.New(backends, analyzer, cfg.Engine.ConfidenceThreshold, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	res := orch.Extract(ctx, recognize.Document{
		Data:   data,
		Format: format,
		Name:   filepath.Base(path),
	})

	logger.Info("extraction done",
		"backend", res.BackendID,
		"confidence", res.Confidence,
		"errors", len(res.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
