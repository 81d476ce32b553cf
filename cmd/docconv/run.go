package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docconv/internal/convert"
)

var runCmd = &cobra.Command{
	Use:   "run <jobs.yaml>",
	Short: "Run every conversion listed in a job file",
	Long: `Run processes a YAML job file in order:

  jobs:
    - kind: pdf-images
      input: report.pdf
      dpi: 150
    - kind: docx-tables
      input: survey.docx
      output: out/survey.xlsx

Relative paths are resolved against the job file's directory. A failing job
does not stop the batch; the command fails if any job failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobs,
}

var planCmd = &cobra.Command{
	Use:   "plan <files...>",
	Short: "Write a job file for the given PDF and DOCX files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringP("out", "o", "jobs.yaml", "job file to write")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	jobs, err := convert.LoadJobFile(args[0])
	if err != nil {
		return err
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	result := svc.RunBatch(cmd.Context(), jobs, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d job(s) failed", result.Failed)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	jobs, err := convert.JobsForPaths(args)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if err := convert.WriteJobFile(out, jobs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d job(s) to %s\n", len(jobs), out)
	return nil
}
