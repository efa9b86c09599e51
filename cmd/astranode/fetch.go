// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shashikant999/AstraNode/internal/docsfile"
	"github.com/Shashikant999/AstraNode/internal/fetch"
	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>...",
	Short: "Fetch documents and print the extracted content",
	Long: `Fetch downloads each URL once and prints the extracted record: title,
abstract, keywords, body text, and the extraction strategy that produced it.
Article pages on structured repositories (URLs containing /articles/<id>)
use the structured strategy; everything else uses the generic one.

Useful for checking what the analyzer will see for a given page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f := fetch.New(nil, cfg, logger)
	var (
		contents []types.PaperContent
		failed   int
	)
	for _, url := range args {
		c, err := f.Fetch(cmd.Context(), url)
		if err != nil {
			logger.Error("fetch failed", logging.String("url", url), logging.Error(err))
			failed++
			continue
		}
		contents = append(contents, c)
	}

	summary, _ := cmd.Flags().GetBool("summary")
	switch {
	case summary:
		for _, c := range contents {
			fmt.Fprintln(os.Stdout, c.Summary())
		}
	case len(contents) > 0:
		if err := docsfile.Write(os.Stdout, contents, format); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) could not be fetched", failed, len(args))
	}
	return nil
}

func init() {
	addFetchFlags(fetchCmd)
	fetchCmd.Flags().String("format", "yaml", "output format: json or yaml")
	fetchCmd.Flags().Bool("summary", false, "print a short title/abstract/keywords digest instead of the full record")

	rootCmd.AddCommand(fetchCmd)
}
