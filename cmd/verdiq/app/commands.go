package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	verdiq "github.com/factbench/verdiq"
	"github.com/factbench/verdiq/internal/cmd/output"
)

// NewRunCommand creates the run command, which executes the full
// pipeline for a source: extraction fan-out, validation, and the
// deployment gate.
func (a *App) NewRunCommand() *cobra.Command {
	var skipDeploy bool

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Run the full pipeline for a source",
		Long: `Run executes the complete pipeline: stage the source's category
artifacts into the workspace, validate and score them, and deploy
when the verdict allows it.

The orchestration report is written to the workspace regardless of
outcome. The command exits non-zero when any phase fails or the
validation verdict is FAIL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := a.Pipeline(verdiq.WithSkipDeploy(skipDeploy))
			if err != nil {
				return err
			}

			result, runErr := pipeline.Run(cmd.Context(), args[0])
			if result != nil {
				result.WriteSummary(os.Stdout)
			}
			if runErr != nil {
				return runErr
			}
			if result.Failed() {
				return fmt.Errorf("pipeline finished with status %s", result.OverallStatus)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipDeploy, "skip-deploy", false, "run extraction and validation only")

	return cmd
}

// NewValidateCommand creates the validate command, which scores the
// artifacts already present in the workspace.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate and score the workspace artifacts",
		Long: `Validate checks the category artifacts already staged in the
workspace, cross-checks product identities between them, computes the
quality scorecard, and persists the validation summary the deployment
gate reads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipeline, err := a.Pipeline(verdiq.WithSkipDeploy(true))
			if err != nil {
				return err
			}

			validation, err := pipeline.Validate(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(a.config.Output)
			formatter := output.NewFormatter(format)

			if format != output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), validation)
			}

			w := cmd.OutOrStdout()
			if err := formatter.Format(w, output.ScorecardToTableData(validation.Reports, validation.Score)); err != nil {
				return err
			}
			if len(validation.Recommendations) > 0 {
				fmt.Fprintln(w)
				if err := formatter.Format(w, output.RecommendationsToTableData(validation.Recommendations)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewDeployCommand creates the deploy command, which runs the
// deployment gate against the last persisted validation summary.
func (a *App) NewDeployCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Run the deployment gate",
		Long: `Deploy runs the gated deployment sequence: pre-checks against the
last validation summary, artifact integration into the project,
build, output verification, and publish. Aborts before touching the
project when a required pre-check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}

			state, deployErr := pipeline.Deploy(cmd.Context())

			format := output.DetectFormat(a.config.Output)
			formatter := output.NewFormatter(format)
			if state != nil {
				var data any = state
				if format == output.FormatTable {
					data = output.DeploymentToTableData(state)
				}
				if err := formatter.Format(cmd.OutOrStdout(), data); err != nil {
					return err
				}
			}

			return deployErr
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "verdiq %s\n", a.version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", a.commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", a.date)
		},
	}
}
