// Package engine orchestrates recognition backends and the pattern
// analyzer into one extraction call.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carelog/receipt-extract/internal/analyze"
	"github.com/carelog/receipt-extract/internal/entity"
	"github.com/carelog/receipt-extract/internal/recognize"
)

// Orchestrator iterates the configured backends in their fixed
// cost-ascending order, analyzes each transcription and keeps the
// best-scoring result. Backends run strictly one after another: the
// early-stop decision needs the cheap results before paying for the next
// backend. An Orchestrator holds no per-call state, so concurrent Extract
// calls are safe.
type Orchestrator struct {
	backends  []recognize.Backend
	analyzer  *analyze.Analyzer
	threshold float64
	logger    *slog.Logger
}

// New builds an Orchestrator. The backend slice order IS the invocation
// order; callers list cheap backends first. threshold is the early-stop
// confidence bound.
func New(backends []recognize.Backend, analyzer *analyze.Analyzer, threshold float64, logger *slog.Logger) *Orchestrator {
	if analyzer == nil {
		analyzer = analyze.New(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		backends:  backends,
		analyzer:  analyzer,
		threshold: threshold,
		logger:    logger,
	}
}

// Extract runs the backend cascade for one document. Individual backend
// failures are recorded in the result's error list, never returned: the
// worst case is a result with every field unset, confidence zero and a
// non-empty error list, which the caller treats as "extraction produced
// nothing", falling back to manual entry.
func (o *Orchestrator) Extract(ctx context.Context, doc recognize.Document) entity.Result {
	attemptID := uuid.New()
	start := time.Now()

	var best entity.Result
	var errs []string

	for _, backend := range o.backends {
		out, err := backend.Recognize(ctx, doc)
		if err != nil {
			if errors.Is(err, recognize.ErrUnavailable) {
				// Not an error to the user: this deployment simply does
				// not have the backend.
				o.logger.Debug("backend unavailable, skipping",
					"attempt_id", attemptID, "backend", backend.ID())
				continue
			}
			o.logger.Warn("backend recognition failed",
				"attempt_id", attemptID, "backend", backend.ID(), "error", err)
			errs = append(errs, err.Error())
			continue
		}

		res := o.analyzer.Analyze(out.Text)
		res.BackendID = out.BackendID
		o.logger.Debug("backend analyzed",
			"attempt_id", attemptID,
			"backend", out.BackendID,
			"pages", out.Pages,
			"confidence", res.Confidence,
			"duration_ms", out.Duration.Milliseconds(),
		)

		if res.Confidence > best.Confidence || best.BackendID == "" {
			best = res
		}

		if best.Confidence >= o.threshold {
			// Good enough: skip the remaining, costlier backends.
			o.logger.Info("early stop",
				"attempt_id", attemptID,
				"backend", best.BackendID,
				"confidence", best.Confidence,
				"threshold", o.threshold,
			)
			break
		}
	}

	if best.BackendID == "" && len(errs) == 0 {
		errs = append(errs, "no recognition backend available")
	}
	best.Errors = errs

	o.logger.Info("extraction finished",
		"attempt_id", attemptID,
		"backend", best.BackendID,
		"confidence", best.Confidence,
		"errors", len(best.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return best
}
