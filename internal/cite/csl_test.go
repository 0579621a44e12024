package cite

import (
	"bytes"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bookfinder/pkg/types"
)

func TestFormatCSL(t *testing.T) {
	records := []types.BookRecord{
		{
			ID:            "zyTCAlFPjgYC",
			Title:         "The Go Programming Language",
			Authors:       []string{"Alan Donovan", "Plato"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "2015-11-16",
			InfoLink:      "https://books.google.com/books?id=zyTCAlFPjgYC",
		},
		{
			ID:            "ol:OL1W",
			Title:         "Undated Work",
			Authors:       []string{},
			PublishedDate: "c1998",
		},
	}

	var buf bytes.Buffer
	if err := FormatCSL(records, &buf); err != nil {
		t.Fatalf("FormatCSL() error = %v", err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.Type != "book" {
		t.Errorf("Type = %q, want book", first.Type)
	}
	if first.Issued == nil || len(first.Issued.DateParts) != 1 || first.Issued.DateParts[0][0] != 2015 {
		t.Errorf("Issued = %+v, want date-parts [[2015]]", first.Issued)
	}
	if len(first.Author) != 2 {
		t.Fatalf("len(Author) = %d, want 2", len(first.Author))
	}
	if first.Author[0].Family != "Donovan" || first.Author[0].Given != "Alan" {
		t.Errorf("Author[0] = %+v", first.Author[0])
	}
	if first.Author[1].Literal != "Plato" {
		t.Errorf("single-token name should use literal, got %+v", first.Author[1])
	}
	if first.URL == "" {
		t.Error("URL should carry the info link")
	}

	second := items[1]
	if second.Issued != nil {
		t.Errorf("non-numeric date should omit issued, got %+v", second.Issued)
	}
	if len(second.Author) != 0 {
		t.Errorf("Author = %+v, want empty", second.Author)
	}
}
