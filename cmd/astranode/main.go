// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the astranode CLI. It fetches research
// documents, analyzes them with a generation backend, and reports the topics
// that interlink them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets *secrets.Keys

	// logger is configured in PersistentPreRunE from the log flags.
	logger logging.Logger = logging.NewNop()
)

// rootCmd is the base command for the astranode CLI.
var rootCmd = &cobra.Command{
	Use:   "astranode",
	Short: "Find the topics that interlink a set of research papers",
	Long: `astranode fetches the research documents you hand it, extracts their
title, abstract, keywords, and body text, and asks a generation backend to
identify the topics and research threads that connect them.

When no backend is configured, or the backend fails, a deterministic
keyword-frequency analysis is returned instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.New(logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = log

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			logger.Debug("loaded secrets", logging.String("keys", strings.Join(names, ",")))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./astranode.yaml or ~/.config/astranode/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("secrets-dir", ".secrets/", "directory of API key files")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("secrets_dir", pf.Lookup("secrets-dir"))
}

func initConfig() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("astranode")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "astranode"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("ASTRANODE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
