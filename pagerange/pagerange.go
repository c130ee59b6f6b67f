// Package pagerange parses page selection specs of the form "1-10,15-20".
// The session layer stores specs verbatim; converters call Parse once the
// document's page count is known.
package pagerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse evaluates spec against a document of pageCount pages and returns the
// selected 1-based page numbers, sorted and deduplicated. Grammar: comma
// separated items, each "N", "N-M", "N-" (N through last) or "-M" (first
// through M). Whitespace around items is ignored. Values outside [1,pageCount]
// are clamped. An empty spec selects every page.
func Parse(spec string, pageCount int) ([]int, error) {
	if pageCount <= 0 {
		return nil, fmt.Errorf("page count must be positive, got %d", pageCount)
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return all(pageCount), nil
	}
	selected := make(map[int]bool)
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("empty item in page range %q", spec)
		}
		lo, hi, err := parseItem(item, pageCount)
		if err != nil {
			return nil, err
		}
		for p := lo; p <= hi; p++ {
			selected[p] = true
		}
	}
	pages := make([]int, 0, len(selected))
	for p := range selected {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

func parseItem(item string, pageCount int) (int, int, error) {
	dash := strings.IndexByte(item, '-')
	if dash < 0 {
		n, err := strconv.Atoi(item)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page number %q", item)
		}
		n = clamp(n, pageCount)
		return n, n, nil
	}
	loStr := strings.TrimSpace(item[:dash])
	hiStr := strings.TrimSpace(item[dash+1:])
	lo, hi := 1, pageCount
	if loStr != "" {
		n, err := strconv.Atoi(loStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range start %q", loStr)
		}
		lo = clamp(n, pageCount)
	}
	if hiStr != "" {
		n, err := strconv.Atoi(hiStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range end %q", hiStr)
		}
		hi = clamp(n, pageCount)
	}
	if loStr == "" && hiStr == "" {
		return 0, 0, fmt.Errorf("invalid range %q", item)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("range %q is out of order", item)
	}
	return lo, hi, nil
}

func clamp(n, pageCount int) int {
	if n < 1 {
		return 1
	}
	if n > pageCount {
		return pageCount
	}
	return n
}

func all(pageCount int) []int {
	pages := make([]int, pageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
