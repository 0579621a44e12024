// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite formats book records as human-readable citations and as
// CSL-YAML bibliographies.
package cite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/bookfinder/pkg/types"
)

// Style selects a citation format.
type Style string

const (
	StyleAPA   Style = "apa"
	StyleMLA   Style = "mla"
	StylePlain Style = "plain"
)

// ParseStyle maps a style tag to a Style. Unknown tags fall back to
// StylePlain.
func ParseStyle(s string) Style {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleAPA, StyleMLA:
		return st
	default:
		return StylePlain
	}
}

// Format renders a single-line citation. Output is demonstration quality:
// no locale handling and no claim of full style-guide conformance.
func Format(r types.BookRecord, style Style) string {
	switch style {
	case StyleAPA:
		return formatAPA(r)
	case StyleMLA:
		return formatMLA(r)
	default:
		return formatPlain(r)
	}
}

// formatAPA renders "Doe, J., & Roe, A. (2015). Title. Publisher."
func formatAPA(r types.BookRecord) string {
	var b strings.Builder
	if a := apaAuthors(r.Authors); a != "" {
		b.WriteString(a)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "(%s). %s.", year(r), r.Title)
	if r.Publisher != "" {
		fmt.Fprintf(&b, " %s.", r.Publisher)
	}
	return b.String()
}

// formatMLA renders "Doe, Jane, and Ann Roe. Title. Publisher, 2015."
func formatMLA(r types.BookRecord) string {
	var b strings.Builder
	if a := mlaAuthors(r.Authors); a != "" {
		b.WriteString(a)
		b.WriteString(". ")
	}
	fmt.Fprintf(&b, "%s.", r.Title)
	if r.Publisher != "" {
		fmt.Fprintf(&b, " %s,", r.Publisher)
	}
	fmt.Fprintf(&b, " %s.", year(r))
	return b.String()
}

func formatPlain(r types.BookRecord) string {
	if len(r.Authors) == 0 {
		return fmt.Sprintf("%s (%s)", r.Title, year(r))
	}
	return fmt.Sprintf("%s by %s (%s)", r.Title, strings.Join(r.Authors, ", "), year(r))
}

// year extracts a publication year from the record's free-text date using
// the same first-four-characters rule as the search year filter. Dates
// without a numeric prefix render as "n.d.".
func year(r types.BookRecord) string {
	d := r.PublishedDate
	if len(d) < 4 {
		return "n.d."
	}
	if _, err := strconv.Atoi(d[:4]); err != nil {
		return "n.d."
	}
	return d[:4]
}

// apaAuthors renders "Doe, J., & Roe, A.".
func apaAuthors(authors []string) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		if n := abbrevName(a); n != "" {
			parts = append(parts, n)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1]
	}
}

// mlaAuthors renders "Doe, Jane, and Ann Roe": the first name inverted,
// the rest in source order.
func mlaAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return invertName(authors[0])
	default:
		return invertName(authors[0]) + ", and " + strings.Join(authors[1:], ", ")
	}
}

// invertName turns "Jane Doe" into "Doe, Jane". Single-token names are
// returned unchanged.
func invertName(name string) string {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name
	}
	return name[idx+1:] + ", " + name[:idx]
}

// abbrevName turns "Jane Q. Doe" into "Doe, J. Q.". The last token is the
// family name; everything before it is initialed.
func abbrevName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name
	}
	family := name[idx+1:]
	var initials []string
	for _, given := range strings.Fields(name[:idx]) {
		r := []rune(given)
		initials = append(initials, strings.ToUpper(string(r[0]))+".")
	}
	return family + ", " + strings.Join(initials, " ")
}
