// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docconv CLI: PDF pages to PNG
// images and DOCX tables to an Excel workbook.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docconv/internal/rasterize"
	"github.com/pdiddy/docconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --log-level before any command runs.
var logger = logrus.New()

// rootCmd is the base command for the docconv CLI.
var rootCmd = &cobra.Command{
	Use:   "docconv",
	Short: "Convert PDF pages to images and DOCX tables to spreadsheets",
	Long: `docconv wraps two document conversions:

  pdf2img  renders every page of a PDF to page_NN.png at a chosen DPI
  tables   extracts every table of a DOCX into an .xlsx workbook

Use run to process a YAML job file describing many conversions, and
history to review past runs when a history database is configured.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	viper.SetDefault("pdf.backend", string(types.BackendFitz))
	viper.SetDefault("pdf.dpi", types.DefaultDPI)
	viper.SetDefault("pdf.poppler_image", rasterize.DefaultPopplerImage)
	viper.SetDefault("tables.index_column", types.DefaultIndexColumn)
	viper.SetDefault("log.level", "info")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docconv.yaml or ~/.config/docconv/docconv.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("history", "", "SQLite file recording conversion history (disabled when empty)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docconv"))
		}
	}

	viper.SetEnvPrefix("DOCCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
