package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docconv/internal/history"
	"github.com/pdiddy/docconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions from the history database",
	Long: `History prints the most recent conversions recorded in the SQLite
database named by --history (or history.path in the config file).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history.path")
	if path == "" {
		return fmt.Errorf("no history database configured: pass --history or set history.path")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatHistory(w io.Writer, runs []types.RunRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-11s  %-9s  %5s  %s\n",
		"ID", "Started", "Kind", "Status", "Items", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-11s  %-9s  %5d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Kind, r.Status, r.Items, r.Input)
		if r.Error != "" {
			fmt.Fprintf(w, "       error: %s\n", r.Error)
		}
	}
	return nil
}
