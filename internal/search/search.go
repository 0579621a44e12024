// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries public book catalogs and returns unified,
// deduplicated, year-filtered results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pdiddy/bookfinder/pkg/types"
)

// Backend searches a single book catalog. Each backend (Google Books,
// Open Library) implements this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.BookRecord, error)
}

// Mode selects which bibliographic field a query targets.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeTitle   Mode = "title"
	ModeAuthor  Mode = "author"
	ModeISBN    Mode = "isbn"
	ModeSubject Mode = "subject"
)

// ParseMode maps a mode tag to a Mode. Unknown tags fall back to ModeAll.
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTitle, ModeAuthor, ModeISBN, ModeSubject:
		return m
	default:
		return ModeAll
	}
}

// Query holds the search parameters.
type Query struct {
	Text     string
	Mode     Mode
	Page     int // zero-based page index
	PageSize int
}

// IsEmpty reports whether the query contains no searchable text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// YearFilter bounds results by publication year, inclusive on both ends.
// A zero bound leaves that end open. Records whose PublishedDate does not
// start with a four-digit year always pass.
type YearFilter struct {
	Min int
	Max int
}

// Apply returns the records that satisfy the filter, preserving order.
func (f YearFilter) Apply(records []types.BookRecord) []types.BookRecord {
	if f.Min == 0 && f.Max == 0 {
		return records
	}
	var kept []types.BookRecord
	for _, r := range records {
		y, ok := leadingYear(r.PublishedDate)
		if !ok {
			kept = append(kept, r)
			continue
		}
		if f.Min != 0 && y < f.Min {
			continue
		}
		if f.Max != 0 && y > f.Max {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// leadingYear parses the first four characters of a published date as a
// year. Dates shorter than four characters or with a non-numeric prefix
// report ok=false.
func leadingYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}

// SearchOutput holds the results plus dedup statistics and per-source errors.
type SearchOutput struct {
	Results      []types.BookRecord
	DupsRemoved  int
	Demo         bool
	SourceErrors []string
}

// Search fans the query out to all backends concurrently, joins the
// responses in backend-declaration order, deduplicates, and applies the
// year filter.
//
// The default join policy is all-or-nothing: if any backend fails, the
// whole batch is discarded and the built-in demo catalog is returned with
// the per-source errors recorded. cfg.AllowPartial keeps the surviving
// backends' results instead. An empty query returns the demo catalog
// without issuing any requests.
func Search(ctx context.Context, query Query, backends []Backend, cfg types.SearchConfig, filter YearFilter, w io.Writer) (SearchOutput, error) {
	if query.IsEmpty() {
		return demoOutput(filter, nil), nil
	}
	if len(backends) == 0 {
		return SearchOutput{}, fmt.Errorf("no search backends enabled")
	}

	// Indexed slices keep the concatenation order stable regardless of
	// which request finishes first.
	perBackend := make([][]types.BookRecord, len(backends))
	errs := make([]error, len(backends))

	var wg sync.WaitGroup
	for i, b := range backends {
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			perBackend[i], errs[i] = b.Search(ctx, query, cfg)
		}(i, b)
	}
	wg.Wait()

	var sourceErrors []string
	for i, err := range errs {
		if err != nil {
			sourceErrors = append(sourceErrors, fmt.Sprintf("%s: %v", backends[i].Name(), err))
			fmt.Fprintf(w, "warning: source %s failed: %v\n", backends[i].Name(), err)
		}
	}

	if len(sourceErrors) > 0 && !cfg.AllowPartial {
		fmt.Fprintln(w, "search failed, showing the demo catalog instead")
		return demoOutput(filter, sourceErrors), nil
	}

	var all []types.BookRecord
	for _, results := range perBackend {
		all = append(all, results...)
	}

	deduped, removed := Dedup(all)
	return SearchOutput{
		Results:      filter.Apply(deduped),
		DupsRemoved:  removed,
		SourceErrors: sourceErrors,
	}, nil
}

func demoOutput(filter YearFilter, sourceErrors []string) SearchOutput {
	return SearchOutput{
		Results:      filter.Apply(DemoRecords()),
		Demo:         true,
		SourceErrors: sourceErrors,
	}
}

// Dedup collapses records that share a (title, authors) key, keeping the
// first occurrence and preserving order, so the same book found by both
// catalogs survives only as the hit from the first-queried source.
func Dedup(records []types.BookRecord) ([]types.BookRecord, int) {
	seen := make(map[string]bool, len(records))
	var deduped []types.BookRecord
	removed := 0
	for _, r := range records {
		key := r.Title + "::" + strings.Join(r.Authors, ", ")
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// normalize enforces the BookRecord invariants: a non-empty title and
// non-nil author/category slices.
func normalize(r types.BookRecord) types.BookRecord {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = "Untitled"
	}
	if r.Authors == nil {
		r.Authors = []string{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
	return r
}

// forceHTTPS rewrites an insecure URL to the https scheme. Google Books
// still hands out http:// thumbnail links.
func forceHTTPS(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	if out.Demo {
		fmt.Fprintln(w, "Showing the built-in demo catalog.")
	}

	fmt.Fprintf(w, "%-20s  %-50s  %-24s  %-4s  %s\n",
		"ID", "Title", "Authors", "Year", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for _, r := range out.Results {
		year := ""
		if y, ok := leadingYear(r.PublishedDate); ok {
			year = strconv.Itoa(y)
		}
		fmt.Fprintf(w, "%-20s  %-50s  %-24s  %-4s  %s\n",
			truncate(r.ID, 20), truncate(r.Title, 50), formatAuthors(r.Authors), year, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 17) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
