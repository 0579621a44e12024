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

// googleBooksAPIBase is the Google Books volumes search endpoint. Declared
// as a var so tests can substitute an httptest server.
var googleBooksAPIBase = "https://www.googleapis.com/books/v1/volumes"

// googleMaxPageSize is the hard cap Google Books places on maxResults.
const googleMaxPageSize = 40

// GoogleBackend queries the Google Books volumes API.
type GoogleBackend struct {
	Client *http.Client
	// APIKey is optional; the endpoint works unauthenticated.
	APIKey string
}

// Name returns the backend identifier.
func (b *GoogleBackend) Name() string { return "google" }

// Search queries the Google Books API and returns normalized records.
func (b *GoogleBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.BookRecord, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > googleMaxPageSize {
		pageSize = googleMaxPageSize
	}

	params := url.Values{
		"q":          {buildGoogleQuery(query)},
		"startIndex": {strconv.Itoa(query.Page * pageSize)},
		"maxResults": {strconv.Itoa(pageSize)},
	}
	if b.APIKey != "" {
		params.Set("key", b.APIKey)
	}

	resp, err := httputil.Get(ctx, b.Client, googleBooksAPIBase+"?"+params.Encode(), cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("Google Books request: %w", err)
	}
	defer resp.Body.Close()

	var vr googleVolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("parsing Google Books response: %w", err)
	}

	results := make([]types.BookRecord, 0, len(vr.Items))
	for _, item := range vr.Items {
		results = append(results, extractGoogleVolume(item))
	}
	return results, nil
}

// buildGoogleQuery maps the search mode onto Google's field prefixes.
func buildGoogleQuery(q Query) string {
	text := strings.TrimSpace(q.Text)
	switch q.Mode {
	case ModeTitle:
		return "intitle:" + text
	case ModeAuthor:
		return "inauthor:" + text
	case ModeISBN:
		return "isbn:" + text
	case ModeSubject:
		return "subject:" + text
	default:
		return text
	}
}

// extractGoogleVolume normalizes one volume. Missing fields degrade to
// defaults rather than errors; the API omits most of volumeInfo for some
// records.
func extractGoogleVolume(item googleVolume) types.BookRecord {
	info := item.VolumeInfo
	return normalize(types.BookRecord{
		ID:            item.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		Thumbnail:     forceHTTPS(info.ImageLinks.Thumbnail),
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
		Source:        types.SourceGoogle,
	})
}

// Google Books API JSON structures.
type googleVolumesResponse struct {
	TotalItems int            `json:"totalItems"`
	Items      []googleVolume `json:"items"`
}

type googleVolume struct {
	ID         string           `json:"id"`
	VolumeInfo googleVolumeInfo `json:"volumeInfo"`
}

type googleVolumeInfo struct {
	Title         string           `json:"title"`
	Authors       []string         `json:"authors"`
	Publisher     string           `json:"publisher"`
	PublishedDate string           `json:"publishedDate"`
	Description   string           `json:"description"`
	PageCount     int              `json:"pageCount"`
	Categories    []string         `json:"categories"`
	ImageLinks    googleImageLinks `json:"imageLinks"`
	PreviewLink   string           `json:"previewLink"`
	InfoLink      string           `json:"infoLink"`
}

type googleImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
