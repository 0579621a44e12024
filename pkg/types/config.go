// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for catalog requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bookfinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of results requested per source per page
	// (default 20).
	PageSize int `json:"page_size" yaml:"page_size"`

	// EnableGoogle controls whether the Google Books catalog is queried.
	EnableGoogle bool `json:"enable_google" yaml:"enable_google"`

	// EnableOpenLibrary controls whether the Open Library catalog is queried.
	EnableOpenLibrary bool `json:"enable_openlibrary" yaml:"enable_openlibrary"`

	// GoogleBooksAPIKey is optional; the volumes endpoint works
	// unauthenticated at lower rate limits.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`

	// AllowPartial keeps results from the surviving catalogs when one
	// fails. When false (the default), any source failure discards the
	// whole batch and substitutes the demo catalog.
	AllowPartial bool `json:"allow_partial" yaml:"allow_partial"`
}

// StoreConfig holds settings for the local wishlist/history database.
type StoreConfig struct {
	// DataDir is the directory holding bookfinder.db.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxHistory is the number of search history rows retained (default 50).
	MaxHistory int `json:"max_history" yaml:"max_history"`
}

// Config groups all configuration sections.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
