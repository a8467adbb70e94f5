package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/measurement.yaml templates/clinic.yaml
var initTemplates embed.FS

// Default output file names for the init command.
const (
	measurementFileName = "measurement.yaml"
	clinicFileName      = "clinic.yaml"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a measurement or clinic preferences template",
		Long: `Init creates a template file in the current directory.

By default it writes a measurement template documenting every field the
assess command accepts, with the optional sites commented out. With
--clinic it writes a clinic preferences template instead.

Examples:
  # Create measurement.yaml in the current directory
  anthrokit init

  # Create a template at a specific path
  anthrokit init -o subjects/p-1042.yaml

  # Create a clinic preferences template
  anthrokit init --clinic

  # Force overwrite existing file
  anthrokit init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output file path for the template")
	cmd.Flags().Bool("clinic", false,
		"Create a clinic preferences template instead of a measurement template")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	clinic, err := cmd.Flags().GetBool("clinic")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	templatePath := "templates/" + measurementFileName
	if clinic {
		templatePath = "templates/" + clinicFileName
	}
	if outputPath == "" {
		outputPath = measurementFileName
		if clinic {
			outputPath = clinicFileName
		}
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := initTemplates.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created template: %s\n", outputPath)
	if clinic {
		fmt.Fprintln(out, "\nEdit this file to set clinic-wide defaults such as:")
		fmt.Fprintln(out, "  - Preferred density formula variant")
		fmt.Fprintln(out, "  - Strict mass-balance policy")
		fmt.Fprintln(out, "  - History database location")
	} else {
		fmt.Fprintln(out, "\nFill in the measured values, then run:")
		fmt.Fprintf(out, "  anthrokit assess %s\n", outputPath)
		fmt.Fprintln(out, "\nLeave unmeasured sites commented out; an absent value and a zero")
		fmt.Fprintln(out, "are different things, and zero will fail validation.")
	}

	return nil
}
