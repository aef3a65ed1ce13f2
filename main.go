package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"formSheet/translator"
)

var configFile string

var printCells bool

var rootCmd = &cobra.Command{
	Use:           "formcells",
	Short:         "Reactive spreadsheet cells for form tables",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := LoadConfig(NewViper(), configFile)
		if err != nil {
			return err
		}

		logger, err := NewLogger(config.LogJson)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return RunApp(config, logger)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [form.yaml]",
	Short: "Evaluate a form file and print its score summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		definition, err := LoadFormDefinition(args[0])
		if err != nil {
			return err
		}

		cellsEngine, err := EvaluateDefinition(*definition, translator.NewExprTranslator(), nil)
		if err != nil {
			return err
		}

		var report any = cellsEngine.Summary()
		if printCells {
			report = map[string]any{
				"score": cellsEngine.Summary(),
				"cells": cellsEngine.Snapshot().Cells.Cells,
			}
		}

		output, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	scoreCmd.Flags().BoolVar(&printCells, "cells", false, "include evaluated cells in the output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
}

func main() {
	os.Exit(HandleExitError(os.Stderr, rootCmd.Execute()))
}
