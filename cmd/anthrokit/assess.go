package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/anthrokit/anthrokit/internal/config"
	"github.com/anthrokit/anthrokit/internal/database"
	"github.com/anthrokit/anthrokit/internal/engine"
	"github.com/anthrokit/anthrokit/internal/input"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/report"
)

// NewAssessCmd creates the assess command.
func NewAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [measurement-file...]",
		Short: "Assess body composition from measurement files",
		Long: `Assess runs the full pipeline over one or more measurement YAML files.

Each record is validated against physiological bounds, routed to the
best calculation method its measurements support, and the result is
audited for internal consistency before reporting:
- Tier 1: five-component Phantom fractionation (full measurement set)
- Tier 2: four-skinfold body density with the Siri equation
- Tier 3: two-skinfold rapid density estimate
- Tier 4: BMI-based estimate (basics only)

Examples:
  # Assess a single subject
  anthrokit assess subject.yaml

  # Assess several subjects concurrently
  anthrokit assess clinic/*.yaml

  # Output a JSON report to a file
  anthrokit assess --json -o report.json subject.yaml

  # Treat a large Phantom model deviation as an error
  anthrokit assess --strict-balance subject.yaml

  # Pin the calculation to one tier instead of automatic selection
  anthrokit assess --tier four_skinfold subject.yaml

  # Add a supplementary density estimate in the athlete formula
  anthrokit assess --variant athlete subject.yaml

  # Save results for later comparison
  anthrokit assess --save subject.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: runAssessCmd,
	}

	// Calculation flags
	cmd.Flags().StringP("variant", "V", string(config.DefaultVariant),
		"Preferred density formula variant for the supplementary estimate (general, control, fitness, athlete, rapid)")
	cmd.Flags().Bool("strict-balance", false,
		"Treat a pre-scaling Phantom deviation above 5% as an error instead of a warning")
	cmd.Flags().StringP("tier", "t", "",
		"Force a single precision tier instead of automatic selection (five_component, four_skinfold, rapid_two_skinfold, bmi_only)")

	// Batch flags
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent assessments")

	// Clinic preferences file
	cmd.Flags().StringP("clinic", "c", "",
		"Clinic preferences file path (default: clinic.yaml in the XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().BoolP("save", "s", false,
		"Save assessments to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runAssessCmd executes the assess command.
func runAssessCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	report.Version = getVersion()

	// Context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAssess(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	variant, err := cmd.Flags().GetString("variant")
	if err != nil {
		return nil, err
	}
	cfg.Variant = model.DensityVariant(variant)

	cfg.StrictBalance, err = cmd.Flags().GetBool("strict-balance")
	if err != nil {
		return nil, err
	}

	cfg.ForceTier, err = cmd.Flags().GetString("tier")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ClinicFilePath, err = cmd.Flags().GetString("clinic")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.InputFiles = args

	// Merge clinic preferences. An explicitly specified file must exist;
	// the default XDG location is optional.
	explicitClinicPath := cfg.ClinicFilePath != ""
	clinicPath := config.ResolveClinicFile(cfg.ClinicFilePath)
	clinicFile, err := config.LoadClinicFile(clinicPath)
	switch {
	case err == nil:
		clinicFile.Apply(cfg)
	case errors.Is(err, config.ErrClinicFileNotFound):
		if explicitClinicPath {
			return nil, fmt.Errorf("clinic preferences file not found: %s", cfg.ClinicFilePath)
		}
	default:
		return nil, fmt.Errorf("failed to load clinic preferences %s: %w", clinicPath, err)
	}

	if cfg.SaveToDB && cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runAssess loads the measurement files and runs the batch.
func runAssess(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	records, err := input.LoadMeasurements(cfg.InputFiles)
	if err != nil {
		return err
	}

	logger.Info("starting assessment",
		"subjects", len(records),
		"variant", string(cfg.Variant),
		"concurrency", cfg.Concurrency,
		"strictBalance", cfg.StrictBalance,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	start := time.Now()

	pipelineFactory := func() *engine.Pipeline {
		return engine.DefaultPipeline(logger, cfg.Variant,
			engine.WithStrictBalance(cfg.StrictBalance))
	}
	if tier, ok := cfg.ForcedTier(); ok {
		logger.Info("tier selection pinned", "tier", tier.String())
		pipelineFactory = func() *engine.Pipeline {
			return engine.SingleTierPipeline(logger, tier, cfg.Variant,
				engine.WithStrictBalance(cfg.StrictBalance))
		}
	}

	bp := engine.NewBatchProcessor(
		pipelineFactory,
		engine.WithConcurrency(cfg.Concurrency),
		engine.WithBatchLogger(logger),
	)

	assessments, err := bp.ProcessBatch(ctx, records)
	if err != nil {
		return err
	}

	writer, closeOutput, err := buildWriter(cfg, cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeOutput()

	invalid := 0
	for i, assessment := range assessments {
		if assessment == nil {
			continue
		}
		if !assessment.Valid() {
			invalid++
		}
		if _, err := writer.Write(assessment); err != nil {
			logger.Error("report failed", "file", cfg.InputFiles[i], "error", err)
		}
		if db != nil {
			if _, err := db.SaveAssessment(ctx, assessment); err != nil {
				logger.Error("failed to save assessment", "file", cfg.InputFiles[i], "error", err)
			}
		}
	}

	logger.Info("assessment finished",
		"subjects", len(assessments),
		"invalid", invalid,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// buildWriter constructs the report writer for the requested format and
// destination. The returned closer is a no-op for stdout.
func buildWriter(cfg *config.Config, verbose bool) (report.Writer, func(), error) {
	output := os.Stdout
	closeOutput := func() {}

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain patient data; restrict them to the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
		closeOutput = func() { _ = f.Close() }
	}

	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint()), closeOutput, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output), closeOutput, nil
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(verbose)), closeOutput, nil
	}
}
