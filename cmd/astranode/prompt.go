// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shashikant999/AstraNode/internal/analyze"
	"github.com/Shashikant999/AstraNode/internal/cache"
	"github.com/Shashikant999/AstraNode/internal/fetch"
	"github.com/Shashikant999/AstraNode/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the analysis prompt without calling a backend",
	Long: `Prompt fetches the documents exactly as analyze does and prints the
prompt that would be sent to the generation backend. No backend is contacted.`,
	RunE: runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	docs, query, err := readBatch(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	a := analyze.New(fetch.New(nil, cfg, logger), c, nil, cfg, logger)
	papers, stats := a.Collect(cmd.Context(), docs, cfg.MaxDocuments)
	if stats.Usable() == 0 {
		return fmt.Errorf("no document content could be fetched (%d considered)", stats.Considered)
	}

	fmt.Fprint(os.Stdout, prompt.Build(papers, query, cfg.Limits))
	return nil
}

func init() {
	addPipelineFlags(promptCmd)

	rootCmd.AddCommand(promptCmd)
}
