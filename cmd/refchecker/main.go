// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refchecker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the refchecker CLI.
var rootCmd = &cobra.Command{
	Use:   "refchecker",
	Short: "Parse and verify the references of academic manuscripts",
	Long: `refchecker extracts the bibliography from a manuscript, parses it into
structured references, and checks the cited metadata against verified
records.

Each stage is a subcommand: parse extracts and normalizes references,
check compares them against verified records and reports discrepancies,
and store indexes parse runs for retrieval.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refchecker.yaml or ~/.config/refchecker/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refchecker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refchecker"))
		}
	}

	viper.SetEnvPrefix("REFCHECKER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage settings from the config file and
// environment, with defaults for anything unset. Per-command flags
// override on top of this.
func pipelineConfig() types.PipelineConfig {
	pipe := types.PipelineConfig{
		Parse: types.DefaultParseConfig(),
		Store: types.StoreConfig{DataDir: "data", MaxResults: 20},
	}
	if viper.IsSet("parse.min_quality_score") {
		pipe.Parse.MinQualityScore = viper.GetFloat64("parse.min_quality_score")
	}
	if viper.IsSet("parse.keep_hyphens") {
		pipe.Parse.KeepHyphens = viper.GetBool("parse.keep_hyphens")
	}
	if viper.IsSet("store.data_dir") {
		pipe.Store.DataDir = viper.GetString("store.data_dir")
	}
	if viper.IsSet("store.max_results") {
		pipe.Store.MaxResults = viper.GetInt("store.max_results")
	}
	return pipe
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
