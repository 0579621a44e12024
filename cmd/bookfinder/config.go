package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookfinder/internal/wishlist"
	"github.com/pdiddy/bookfinder/pkg/types"
)

// searchConfig builds a SearchConfig from viper settings, secrets, and the
// command's flags. Flags win over config-file values only when set.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		PageSize:          viper.GetInt("search.page_size"),
		EnableGoogle:      viper.GetBool("search.enable_google"),
		EnableOpenLibrary: viper.GetBool("search.enable_openlibrary"),
		GoogleBooksAPIKey: viper.GetString("search.google_books_api_key"),
		AllowPartial:      viper.GetBool("search.allow_partial"),
	}

	if cfg.GoogleBooksAPIKey == "" {
		cfg.GoogleBooksAPIKey = loadedSecrets["google-books-api-key"]
	}

	if cmd.Flags().Changed("google") {
		cfg.EnableGoogle, _ = cmd.Flags().GetBool("google")
	}
	if cmd.Flags().Changed("openlibrary") {
		cfg.EnableOpenLibrary, _ = cmd.Flags().GetBool("openlibrary")
	}
	if cmd.Flags().Changed("partial") {
		cfg.AllowPartial, _ = cmd.Flags().GetBool("partial")
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
	}

	return cfg
}

// storeConfig resolves the local database location: --data-dir flag, then
// config file, then ~/.local/share/bookfinder.
func storeConfig() types.StoreConfig {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	if dataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataDir = filepath.Join(home, ".local", "share", "bookfinder")
		} else {
			dataDir = ".bookfinder"
		}
	}

	return types.StoreConfig{
		DataDir:    dataDir,
		MaxHistory: viper.GetInt("store.max_history"),
	}
}

func openStore() (*wishlist.Store, error) {
	return wishlist.Open(storeConfig())
}
