// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docsight CLI: persona-aware
// extraction and ranking of PDF document sections.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsight/internal/secrets"
	"github.com/pdiddy/docsight/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the docsight CLI.
var rootCmd = &cobra.Command{
	Use:   "docsight",
	Short: "Persona-aware PDF section extraction and ranking",
	Long: `docsight extracts sections from PDF documents, scores their relevance
against a persona and a stated task, and emits a ranked summary of top
sections and sub-sections as JSON.

The main entry point is the analyze subcommand, which runs the whole
pipeline in one pass: extract, rank, chunk, rank again, write output.
Use sections to inspect extraction on a single PDF and results to query
stored runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docsight.yaml or ~/.config/docsight/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docsight")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docsight"))
		}
	}

	viper.SetEnvPrefix("DOCSIGHT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from viper, applying
// the secret-provided Gemini key when config leaves it empty.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Embedding: types.EmbeddingConfig{
			Provider:   types.EmbeddingProvider(viper.GetString("embedding.provider")),
			Model:      viper.GetString("embedding.model"),
			Dimensions: viper.GetInt("embedding.dimensions"),
			BaseURL:    viper.GetString("embedding.base_url"),
			APIKey:     viper.GetString("embedding.api_key"),
			Timeout:    viper.GetDuration("embedding.timeout"),
		},
		Persona: types.PersonaConfig{
			LexiconFile: viper.GetString("persona.lexicon_file"),
		},
		Store: types.StoreConfig{
			Path:       viper.GetString("store.path"),
			MaxResults: viper.GetInt("store.max_results"),
		},
	}

	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = secrets.Get(loadedSecrets, "gemini-api-key")
	}
	if cfg.Embedding.Timeout <= 0 {
		cfg.Embedding.Timeout = 60 * time.Second
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
