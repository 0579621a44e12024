// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookfinder/internal/cite"
	"github.com/pdiddy/bookfinder/internal/search"
	"github.com/pdiddy/bookfinder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Google Books and Open Library",
	Long: `Search queries the enabled catalogs for books matching the query, merges
and de-duplicates the results across sources, and applies the optional
publication-year filter. An empty query shows the built-in demo catalog
without touching the network.

Results are cached locally so that wishlist and cite can resolve record
IDs afterwards.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("mode", "all", "search mode: all, title, author, isbn, subject")
	searchCmd.Flags().Int("page", 0, "zero-based result page")
	searchCmd.Flags().Int("page-size", 0, "results per source per page (default from config)")
	searchCmd.Flags().Int("year-min", 0, "earliest publication year to include")
	searchCmd.Flags().Int("year-max", 0, "latest publication year to include")
	searchCmd.Flags().Bool("google", true, "query Google Books")
	searchCmd.Flags().Bool("openlibrary", true, "query Open Library")
	searchCmd.Flags().Bool("partial", false, "keep results from surviving sources when one fails")
	searchCmd.Flags().String("format", "table", "output format: table, json, csl")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := searchConfig(cmd)

	mode, _ := cmd.Flags().GetString("mode")
	page, _ := cmd.Flags().GetInt("page")
	query := search.Query{
		Text:     strings.Join(args, " "),
		Mode:     search.ParseMode(mode),
		Page:     page,
		PageSize: cfg.PageSize,
	}

	yearMin, _ := cmd.Flags().GetInt("year-min")
	yearMax, _ := cmd.Flags().GetInt("year-max")
	filter := search.YearFilter{Min: yearMin, Max: yearMax}

	client := &http.Client{Timeout: cfg.Timeout}
	var backends []search.Backend
	if cfg.EnableGoogle {
		backends = append(backends, &search.GoogleBackend{Client: client, APIKey: cfg.GoogleBooksAPIKey})
	}
	if cfg.EnableOpenLibrary {
		backends = append(backends, &search.OpenLibraryBackend{Client: client})
	}

	ctx := cmd.Context()
	out, err := search.Search(ctx, query, backends, cfg, filter, os.Stderr)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveLastResults(ctx, out.Results); err != nil {
		return err
	}
	if !query.IsEmpty() {
		names := make([]string, 0, len(backends))
		for _, b := range backends {
			names = append(names, b.Name())
		}
		run := types.SearchRun{
			Query:   query.Text,
			Mode:    string(query.Mode),
			Sources: strings.Join(names, ","),
			Results: len(out.Results),
			RanAt:   time.Now(),
		}
		if err := store.RecordSearch(ctx, run); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return search.FormatJSON(out, os.Stdout)
	case "csl":
		return cite.FormatCSL(out.Results, os.Stdout)
	case "table", "":
		search.FormatTable(out, os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use table, json, or csl", format)
	}
}
