// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "github.com/pdiddy/bookfinder/pkg/types"

// DemoRecords returns the built-in catalog shown when no query is given or
// when a source request fails. The slice is rebuilt on each call so callers
// may filter or reorder it freely.
func DemoRecords() []types.BookRecord {
	return []types.BookRecord{
		{
			ID:            "demo-1",
			Title:         "The Go Programming Language",
			Authors:       []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "2015-11-16",
			Description:   "The authoritative resource to writing clear and idiomatic Go.",
			PageCount:     380,
			Categories:    []string{"Computers"},
			Source:        types.SourceDemo,
		},
		{
			ID:            "demo-2",
			Title:         "The Pragmatic Programmer",
			Authors:       []string{"Andrew Hunt", "David Thomas"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "1999-10-30",
			Description:   "From journeyman to master.",
			PageCount:     352,
			Categories:    []string{"Computers"},
			Source:        types.SourceDemo,
		},
		{
			ID:            "demo-3",
			Title:         "Structure and Interpretation of Computer Programs",
			Authors:       []string{"Harold Abelson", "Gerald Jay Sussman"},
			Publisher:     "MIT Press",
			PublishedDate: "1985",
			Description:   "A classic introduction to programming and computer science.",
			PageCount:     657,
			Categories:    []string{"Computers"},
			Source:        types.SourceDemo,
		},
		{
			ID:            "demo-4",
			Title:         "The Mythical Man-Month",
			Authors:       []string{"Frederick P. Brooks"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "1975",
			Description:   "Essays on software engineering.",
			PageCount:     322,
			Categories:    []string{"Computers"},
			Source:        types.SourceDemo,
		},
		{
			ID:            "demo-5",
			Title:         "A Tour of C++",
			Authors:       []string{"Bjarne Stroustrup"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "2013",
			Categories:    []string{"Computers"},
			Source:        types.SourceDemo,
		},
	}
}
