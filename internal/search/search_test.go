package search

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/bookfinder/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name    string
	results []types.BookRecord
	err     error
	calls   int32
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, _ Query, _ types.SearchConfig) ([]types.BookRecord, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.results, m.err
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		PageSize: 20,
	}
}

func rec(id, title string, authors ...string) types.BookRecord {
	if authors == nil {
		authors = []string{}
	}
	return types.BookRecord{ID: id, Title: title, Authors: authors, Categories: []string{}}
}

// --- Query ---

func TestQueryIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"empty", Query{}, true},
		{"whitespace only", Query{Text: "   "}, true},
		{"free text", Query{Text: "dune"}, false},
		{"mode alone is empty", Query{Mode: ModeTitle}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"title", ModeTitle},
		{"AUTHOR", ModeAuthor},
		{"isbn", ModeISBN},
		{"subject", ModeSubject},
		{"all", ModeAll},
		{"", ModeAll},
		{"bogus", ModeAll},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- Deduplication ---

func TestDedupFirstSeenWins(t *testing.T) {
	records := []types.BookRecord{
		rec("g1", "Dune", "Frank Herbert"),
		rec("ol:1", "Dune", "Frank Herbert"),
		rec("g2", "Dune Messiah", "Frank Herbert"),
	}

	deduped, removed := Dedup(records)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(deduped) != 2 {
		t.Fatalf("len(deduped) = %d, want 2", len(deduped))
	}
	if deduped[0].ID != "g1" {
		t.Errorf("first survivor = %q, want the first-seen record g1", deduped[0].ID)
	}
	if deduped[1].ID != "g2" {
		t.Errorf("order not preserved: second survivor = %q, want g2", deduped[1].ID)
	}
}

func TestDedupDifferentAuthorsKept(t *testing.T) {
	records := []types.BookRecord{
		rec("g1", "Collected Stories", "Author A"),
		rec("g2", "Collected Stories", "Author B"),
	}

	deduped, removed := Dedup(records)
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if len(deduped) != 2 {
		t.Errorf("len(deduped) = %d, want 2", len(deduped))
	}
}

func TestDedupAuthorOrderMatters(t *testing.T) {
	// The key joins authors in order, so a reordered author list is a
	// different book as far as dedup is concerned.
	records := []types.BookRecord{
		rec("g1", "Pair Book", "A", "B"),
		rec("g2", "Pair Book", "B", "A"),
	}

	deduped, _ := Dedup(records)
	if len(deduped) != 2 {
		t.Errorf("len(deduped) = %d, want 2", len(deduped))
	}
}

// --- Year filter ---

func TestYearFilter(t *testing.T) {
	future := types.BookRecord{ID: "f", Title: "Future", PublishedDate: "2050"}
	old := types.BookRecord{ID: "o", Title: "Old", PublishedDate: "1975"}
	fuzzy := types.BookRecord{ID: "z", Title: "Fuzzy", PublishedDate: "c1998"}
	undated := types.BookRecord{ID: "u", Title: "Undated"}
	records := []types.BookRecord{future, old, fuzzy, undated}

	tests := []struct {
		name   string
		filter YearFilter
		want   []string
	}{
		{"no bounds passes all", YearFilter{}, []string{"f", "o", "z", "u"}},
		{"max below 2050 excludes future", YearFilter{Max: 2049}, []string{"o", "z", "u"}},
		{"max at 2050 includes future", YearFilter{Max: 2050}, []string{"f", "o", "z", "u"}},
		{"min excludes old", YearFilter{Min: 1976}, []string{"f", "z", "u"}},
		{"inclusive bounds", YearFilter{Min: 1975, Max: 1975}, []string{"o", "z", "u"}},
		{"non-numeric always passes", YearFilter{Min: 3000, Max: 3001}, []string{"z", "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Apply() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestLeadingYear(t *testing.T) {
	tests := []struct {
		date   string
		year   int
		wantOK bool
	}{
		{"2015-11-16", 2015, true},
		{"1985", 1985, true},
		{"c1998", 0, false},
		{"", 0, false},
		{"99", 0, false},
	}
	for _, tt := range tests {
		y, ok := leadingYear(tt.date)
		if ok != tt.wantOK || y != tt.year {
			t.Errorf("leadingYear(%q) = (%d, %v), want (%d, %v)", tt.date, y, ok, tt.year, tt.wantOK)
		}
	}
}

// --- Search join semantics ---

func TestSearchEmptyQueryReturnsDemoWithoutRequests(t *testing.T) {
	b := &mockBackend{name: "google", results: []types.BookRecord{rec("g1", "Real Hit")}}

	out, err := Search(context.Background(), Query{Text: "  "}, []Backend{b}, testCfg(), YearFilter{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !out.Demo {
		t.Error("expected demo output for empty query")
	}
	if atomic.LoadInt32(&b.calls) != 0 {
		t.Errorf("backend called %d times, want 0", b.calls)
	}
	if len(out.Results) != len(DemoRecords()) {
		t.Errorf("len(Results) = %d, want the full demo catalog (%d)", len(out.Results), len(DemoRecords()))
	}
}

func TestSearchNoBackends(t *testing.T) {
	_, err := Search(context.Background(), Query{Text: "dune"}, nil, testCfg(), YearFilter{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error with no backends")
	}
}

func TestSearchConcatenatesInBackendOrder(t *testing.T) {
	google := &mockBackend{name: "google", results: []types.BookRecord{rec("g1", "From Google")}}
	openlib := &mockBackend{name: "openlibrary", results: []types.BookRecord{rec("ol:1", "From Open Library")}}

	out, err := Search(context.Background(), Query{Text: "dune"}, []Backend{google, openlib}, testCfg(), YearFilter{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(out.Results))
	}
	if out.Results[0].ID != "g1" || out.Results[1].ID != "ol:1" {
		t.Errorf("results out of order: got [%s, %s], want [g1, ol:1]", out.Results[0].ID, out.Results[1].ID)
	}
}

func TestSearchOneFailureSubstitutesDemo(t *testing.T) {
	google := &mockBackend{name: "google", results: []types.BookRecord{rec("g1", "Real Hit")}}
	openlib := &mockBackend{name: "openlibrary", err: context.DeadlineExceeded}

	var warnings bytes.Buffer
	out, err := Search(context.Background(), Query{Text: "dune"}, []Backend{google, openlib}, testCfg(), YearFilter{}, &warnings)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !out.Demo {
		t.Error("expected demo substitution when any source fails")
	}
	for _, r := range out.Results {
		if r.Source != types.SourceDemo {
			t.Fatalf("result %s has source %q, want demo only", r.ID, r.Source)
		}
	}
	if len(out.SourceErrors) != 1 || !strings.Contains(out.SourceErrors[0], "openlibrary") {
		t.Errorf("SourceErrors = %v, want one openlibrary error", out.SourceErrors)
	}
	if !strings.Contains(warnings.String(), "openlibrary") {
		t.Errorf("warning output %q should name the failed source", warnings.String())
	}
}

func TestSearchAllowPartialKeepsSurvivors(t *testing.T) {
	google := &mockBackend{name: "google", results: []types.BookRecord{rec("g1", "Real Hit")}}
	openlib := &mockBackend{name: "openlibrary", err: context.DeadlineExceeded}

	cfg := testCfg()
	cfg.AllowPartial = true

	out, err := Search(context.Background(), Query{Text: "dune"}, []Backend{google, openlib}, cfg, YearFilter{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if out.Demo {
		t.Error("partial mode should not substitute demo data")
	}
	if len(out.Results) != 1 || out.Results[0].ID != "g1" {
		t.Errorf("Results = %v, want the surviving google hit", out.Results)
	}
	if len(out.SourceErrors) != 1 {
		t.Errorf("SourceErrors = %v, want the openlibrary failure recorded", out.SourceErrors)
	}
}

func TestSearchDedupsAcrossSources(t *testing.T) {
	google := &mockBackend{name: "google", results: []types.BookRecord{rec("g1", "Dune", "Frank Herbert")}}
	openlib := &mockBackend{name: "openlibrary", results: []types.BookRecord{rec("ol:1", "Dune", "Frank Herbert")}}

	out, err := Search(context.Background(), Query{Text: "dune"}, []Backend{google, openlib}, testCfg(), YearFilter{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(out.Results))
	}
	if out.Results[0].ID != "g1" {
		t.Errorf("survivor = %q, want the google record (first-queried source)", out.Results[0].ID)
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}
}

// --- Formatters ---

func TestFormatTable(t *testing.T) {
	out := SearchOutput{
		Results: []types.BookRecord{
			{ID: "g1", Title: "Dune", Authors: []string{"Frank Herbert"}, PublishedDate: "1965", Source: types.SourceGoogle},
		},
		DupsRemoved: 2,
	}

	var buf bytes.Buffer
	FormatTable(out, &buf)

	s := buf.String()
	for _, want := range []string{"Dune", "Frank Herbert", "1965", "google", "1 results", "2 duplicates removed"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(SearchOutput{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	out := SearchOutput{Results: DemoRecords()}

	var buf bytes.Buffer
	if err := FormatJSON(out, &buf); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var decoded []types.BookRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != len(out.Results) {
		t.Errorf("decoded %d records, want %d", len(decoded), len(out.Results))
	}
}

// --- Demo catalog ---

func TestDemoRecordsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range DemoRecords() {
		if r.ID == "" || seen[r.ID] {
			t.Errorf("demo record ID %q missing or duplicated", r.ID)
		}
		seen[r.ID] = true
		if r.Source != types.SourceDemo {
			t.Errorf("demo record %s has source %q", r.ID, r.Source)
		}
		if r.Authors == nil || r.Categories == nil {
			t.Errorf("demo record %s has nil slices", r.ID)
		}
	}
}
