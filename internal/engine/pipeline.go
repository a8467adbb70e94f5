package engine

import (
	"context"
	"log/slog"

	"github.com/anthrokit/anthrokit/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the
// accumulated assessment from previous steps.
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the assessment to fill in. Returns an error only
	// for genuinely exceptional failures; expected outcomes like
	// "insufficient data" are recorded in the assessment and return nil.
	Do(ctx context.Context, assessment *model.Assessment) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution even
// when a step fails. Failed steps are logged and their errors recorded
// in the assessment, but subsequent steps still execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options. Steps should be
// added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline. Steps are executed in the
// order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence. Cancellation is checked
// between steps; the calculators themselves run in microseconds and do
// not need internal cancellation points.
func (p *Pipeline) Execute(ctx context.Context, assessment *model.Assessment) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"patient_id", assessment.PatientID,
		)

		if err := step.Do(ctx, assessment); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"patient_id", assessment.PatientID,
				"error", err,
			)

			assessment.Err = err
			assessment.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		}

		assessment.PerformedSteps = append(assessment.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
