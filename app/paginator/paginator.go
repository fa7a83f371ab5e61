// Package paginator splits ordered collections into fixed-size pages.
package paginator

import (
	"strconv"
	"strings"
)

// PerPage is the number of posts shown on every feed page.
const PerPage = 10

// Page is one slice of an ordered collection plus the metadata templates
// need to render navigation.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

// Paginate returns page number of items split into pages of perPage.
//
// Numbers below 1 select the first page; numbers past the last page select
// the last page. An empty collection still has one (empty) page.
func Paginate[T any](items []T, perPage, number int) Page[T] {
	if perPage < 1 {
		perPage = PerPage
	}
	count := len(items)
	numPages := (count + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Page[T]{
		Items:    items[start:end:end],
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}
}

// ParseNumber reads a page number from a query value. Anything that is not a
// positive integer means the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// HasPrevious reports whether a page comes before this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page comes after this one.
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasOtherPages reports whether navigation should be shown at all.
func (p Page[T]) HasOtherPages() bool { return p.NumPages > 1 }

// PreviousNumber is the number of the page before, or the current number on
// the first page.
func (p Page[T]) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// NextNumber is the number of the page after, or the current number on the
// last page.
func (p Page[T]) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

// StartIndex is the 1-based position of the first item on the page, or 0
// for an empty page.
func (p Page[T]) StartIndex() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Number-1)*p.PerPage + 1
}

// PageRange lists every page number, for numbered navigation links.
func (p Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}
