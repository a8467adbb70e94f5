package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anthrokit/anthrokit/internal/model"
)

// BatchProcessor assesses multiple measurement records concurrently.
// Safe without locking around the calculators themselves: every engine
// function is pure over immutable inputs, so assessments only share the
// read-only reference tables.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per assessment so that
	// no per-run state leaks between subjects.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent assessments.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent assessments.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around a pipeline factory.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch assesses all records concurrently, preserving input
// order in the returned slice. Individual assessment problems are
// recorded inside each assessment; the error return only reflects
// cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []model.RawMeasurement) ([]*model.Assessment, error) {
	bp.logger.Info("starting batch assessment",
		"total", len(inputs),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	assessments := make([]*model.Assessment, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			assessment := model.NewAssessment(input)
			assessments[i] = assessment

			// Per-subject failures stay inside the assessment so one
			// bad record never aborts the rest of the batch.
			if err := bp.pipelineFactory().Execute(gctx, assessment); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				bp.logger.Error("assessment failed",
					"patient_id", input.PatientID,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch assessment finished",
		"total", len(inputs),
		"elapsed", time.Since(start),
	)
	return assessments, err
}
