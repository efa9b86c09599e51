// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shashikant999/AstraNode/internal/docsfile"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch documents and report the topics that interlink them",
	Long: `Analyze reads a list of candidate documents, fetches up to --max-docs of
them (through the content cache), and asks the configured generation backend
for an interlinking analysis against --query.

The result is written as JSON (or YAML with --format yaml). A run in which no
document could be fetched still writes a result, with success set to false,
and exits non-zero.`,
	Example: `  astranode analyze --docs papers.yaml --query "bone loss in microgravity"
  astranode analyze --docs - --provider none --format yaml < papers.json`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	docs, query, err := readBatch(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a, closeCache, err := newAnalyzer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	res := a.Analyze(cmd.Context(), docs, query, cfg.MaxDocuments)

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()
	if err := docsfile.WriteResult(out, res, format); err != nil {
		return err
	}
	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

// readBatch loads the documents file and resolves the query. The --query flag
// wins over a query stored in the file.
func readBatch(cmd *cobra.Command) ([]types.DocumentRef, string, error) {
	path, _ := cmd.Flags().GetString("docs")
	if path == "" {
		return nil, "", fmt.Errorf("--docs is required")
	}
	f, err := docsfile.ReadDocuments(path)
	if err != nil {
		return nil, "", err
	}
	query, _ := cmd.Flags().GetString("query")
	query = strings.TrimSpace(query)
	if query == "" {
		query = f.Query
	}
	if query == "" {
		return nil, "", fmt.Errorf("a query is required: pass --query or set query in the documents file")
	}
	return f.Documents, query, nil
}

func outputFormat(cmd *cobra.Command) (docsfile.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return docsfile.ParseFormat(s)
}

// openOutput returns --output as a writer, or stdout when unset.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func init() {
	addPipelineFlags(analyzeCmd)
	analyzeCmd.Flags().String("provider", "", "generation backend: gemini, claude, openai, ollama, none")
	analyzeCmd.Flags().String("model", "", "backend model identifier (default: provider default)")
	analyzeCmd.Flags().String("base-url", "", "backend endpoint override (ollama, compatible gateways)")
	analyzeCmd.Flags().String("format", "json", "output format: json or yaml")
	analyzeCmd.Flags().StringP("output", "o", "", "write the result to a file instead of stdout")

	rootCmd.AddCommand(analyzeCmd)
}
