// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookfinder/internal/cite"
	"github.com/pdiddy/bookfinder/internal/search"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the locally persisted wishlist",
	Long: `Wishlist manages the books saved locally. Use subcommands to list the
saved books, toggle a record in or out by ID, or clear the list.`,
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved books",
	RunE:  runWishlistList,
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Save a record, or remove it if already saved",
	Long: `Toggle flips a record's wishlist membership by ID. IDs come from the most
recent search (the ID column of the result table). Toggling the same ID
twice restores the original state.`,
	Args: cobra.ExactArgs(1),
	RunE: runWishlistToggle,
}

var wishlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved book",
	RunE:  runWishlistClear,
}

func init() {
	wishlistListCmd.Flags().String("format", "table", "output format: table, json, csl")

	wishlistCmd.AddCommand(wishlistListCmd)
	wishlistCmd.AddCommand(wishlistToggleCmd)
	wishlistCmd.AddCommand(wishlistClearCmd)
	rootCmd.AddCommand(wishlistCmd)
}

func runWishlistList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries := store.Load(cmd.Context())

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return search.FormatJSON(search.SearchOutput{Results: entries}, os.Stdout)
	case "csl":
		return cite.FormatCSL(entries, os.Stdout)
	case "table", "":
		if len(entries) == 0 {
			fmt.Println("Wishlist is empty.")
			return nil
		}
		search.FormatTable(search.SearchOutput{Results: entries}, os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use table, json, or csl", format)
	}
}

func runWishlistToggle(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	id := args[0]

	rec, ok := store.Resolve(ctx, id)
	if !ok {
		return fmt.Errorf("unknown record %q: run a search first so the ID can be resolved", id)
	}

	added, err := store.Toggle(ctx, rec)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("Saved %q to the wishlist.\n", rec.Title)
	} else {
		fmt.Printf("Removed %q from the wishlist.\n", rec.Title)
	}
	return nil
}

func runWishlistClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Wishlist cleared.")
	return nil
}
