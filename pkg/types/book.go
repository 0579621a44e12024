// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bookfinder CLI.
package types

import "time"

// Source identifies which catalog produced a BookRecord.
type Source string

const (
	SourceGoogle      Source = "google"
	SourceOpenLibrary Source = "openlibrary"
	SourceDemo        Source = "demo"
)

// BookRecord is the normalized representation of a search hit from either
// external catalog. Normalizers guarantee a non-empty Title and non-nil
// Authors/Categories; everything else may be empty when the source omits it.
type BookRecord struct {
	// ID is an opaque identifier, unique within a single result set.
	// Open Library work keys carry an "ol:" prefix so they cannot collide
	// with Google volume IDs.
	ID string `json:"id" yaml:"id"`

	// Title is the book title, "Untitled" when the source omits it.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order. May be empty, never nil.
	Authors []string `json:"authors" yaml:"authors"`

	// Publisher is the publishing company, when known.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// PublishedDate is free text from the source ("2015", "2015-11-16",
	// "c1998"). Not guaranteed to parse as a year.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// Description is the blurb or first sentence, when available.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// PageCount is the page count; zero means unknown.
	PageCount int `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	// Categories are subject/genre tags. May be empty, never nil.
	Categories []string `json:"categories" yaml:"categories"`

	// Thumbnail is a cover image URL, always https.
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`

	// PreviewLink points at an in-browser preview, when the source has one.
	PreviewLink string `json:"preview_link,omitempty" yaml:"preview_link,omitempty"`

	// InfoLink points at the source's detail page for the book.
	InfoLink string `json:"info_link,omitempty" yaml:"info_link,omitempty"`

	// Source identifies the catalog that returned this record.
	Source Source `json:"source" yaml:"source"`
}

// WishlistEntry is a saved BookRecord. The wishlist stores records exactly
// as they came back from search, so the shapes are identical.
type WishlistEntry = BookRecord

// SearchRun is one entry of the local search history.
type SearchRun struct {
	// Query is the free-text query as typed.
	Query string `json:"query" yaml:"query"`

	// Mode is the search-mode tag (all, title, author, isbn, subject).
	Mode string `json:"mode" yaml:"mode"`

	// Sources is a comma-separated list of the catalogs queried.
	Sources string `json:"sources" yaml:"sources"`

	// Results is the number of records shown after dedup and filtering.
	Results int `json:"results" yaml:"results"`

	// RanAt is when the search ran.
	RanAt time.Time `json:"ran_at" yaml:"ran_at"`
}
