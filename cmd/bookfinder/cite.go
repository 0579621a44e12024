// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookfinder/internal/cite"
	"github.com/pdiddy/bookfinder/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite <id>",
	Short: "Format a citation for a saved or recently found book",
	Long: `Cite renders a citation for a record by ID, resolving it from the
wishlist first and the most recent search results second. Supported styles
are apa and mla; anything else falls back to a plain one-line reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	citeCmd.Flags().String("style", "apa", "citation style: apa, mla, plain")
	citeCmd.Flags().Bool("csl", false, "emit the record as CSL-YAML instead of a formatted line")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, ok := store.Resolve(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("unknown record %q: run a search first so the ID can be resolved", args[0])
	}

	if csl, _ := cmd.Flags().GetBool("csl"); csl {
		return cite.FormatCSL([]types.BookRecord{rec}, os.Stdout)
	}

	style, _ := cmd.Flags().GetString("style")
	fmt.Println(cite.Format(rec, cite.ParseStyle(style)))
	return nil
}
