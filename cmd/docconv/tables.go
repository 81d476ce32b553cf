package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <docx>",
	Short: "Extract every table of a DOCX into an Excel workbook",
	Long: `tables reads every table of a Word document and writes an .xlsx
workbook (default: <docx_stem>_tables.xlsx next to the document) with one
Table_<i> sheet per non-empty table and an ALL_TABLES sheet stacking them
all. Each row is tagged with its source table number in the first column.

Fails without writing anything when the document has no tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().StringP("out", "o", "", "output workbook path (default <docx_stem>_tables.xlsx)")
	tablesCmd.Flags().String("index-column", "", "header label of the table-number column (default table_no)")

	_ = viper.BindPFlag("tables.output_path", tablesCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("tables.index_column", tablesCmd.Flags().Lookup("index-column"))

	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := svc.TablesToWorkbook(cmd.Context(), args[0], "")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tables exported to: %s\n", path)
	return nil
}
