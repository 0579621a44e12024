// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/bookfinder/internal/httputil"
	"github.com/pdiddy/bookfinder/pkg/types"
)

// openLibrarySearchBase is the Open Library search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openLibrarySearchBase = "https://openlibrary.org/search.json"

// maxOpenLibraryCategories caps the subject list; popular works carry
// hundreds of subject tags.
const maxOpenLibraryCategories = 5

// OpenLibraryBackend queries the Open Library search API.
type OpenLibraryBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *OpenLibraryBackend) Name() string { return "openlibrary" }

// Search queries the Open Library search API and returns normalized records.
func (b *OpenLibraryBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.BookRecord, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	// Open Library pages are 1-based.
	params := url.Values{
		"page":  {strconv.Itoa(query.Page + 1)},
		"limit": {strconv.Itoa(pageSize)},
	}

	text := strings.TrimSpace(query.Text)
	switch query.Mode {
	case ModeTitle:
		params.Set("title", text)
	case ModeAuthor:
		params.Set("author", text)
	case ModeISBN:
		params.Set("q", "isbn:"+text)
	case ModeSubject:
		params.Set("subject", text)
	default:
		params.Set("q", text)
	}

	resp, err := httputil.Get(ctx, b.Client, openLibrarySearchBase+"?"+params.Encode(), cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("Open Library request: %w", err)
	}
	defer resp.Body.Close()

	var sr openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Open Library response: %w", err)
	}

	results := make([]types.BookRecord, 0, len(sr.Docs))
	for _, doc := range sr.Docs {
		results = append(results, extractOpenLibraryDoc(doc))
	}
	return results, nil
}

// extractOpenLibraryDoc normalizes one search doc. Work keys such as
// "/works/OL27448W" become "ol:OL27448W" so IDs cannot collide with Google
// volume IDs.
func extractOpenLibraryDoc(doc openLibraryDoc) types.BookRecord {
	r := types.BookRecord{
		ID:      "ol:" + strings.TrimPrefix(doc.Key, "/works/"),
		Title:   doc.Title,
		Authors: doc.AuthorName,
		Source:  types.SourceOpenLibrary,
	}

	if len(doc.Publisher) > 0 {
		r.Publisher = doc.Publisher[0]
	}
	if doc.FirstPublishYear > 0 {
		r.PublishedDate = strconv.Itoa(doc.FirstPublishYear)
	}
	if len(doc.FirstSentence) > 0 {
		r.Description = doc.FirstSentence[0]
	}
	if doc.NumberOfPagesMedian > 0 {
		r.PageCount = doc.NumberOfPagesMedian
	}
	if len(doc.Subject) > 0 {
		n := len(doc.Subject)
		if n > maxOpenLibraryCategories {
			n = maxOpenLibraryCategories
		}
		r.Categories = doc.Subject[:n]
	}
	if doc.CoverID > 0 {
		r.Thumbnail = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
	}
	if doc.Key != "" {
		r.InfoLink = "https://openlibrary.org" + doc.Key
	}

	return normalize(r)
}

// Open Library search API JSON structures.
type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	Publisher           []string `json:"publisher"`
	Subject             []string `json:"subject"`
	CoverID             int      `json:"cover_i"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	FirstSentence       []string `json:"first_sentence"`
}
