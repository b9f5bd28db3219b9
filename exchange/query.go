package exchange

import (
	"slices"
	"strings"
)

// Query derives the visible, filtered listing view from books:
//
//  1. Hidden listings are dropped.
//  2. A non-empty search (trimmed, case-insensitive) must appear in the
//     title, author or course.
//  3. Each set filter must hold: course substring (case-insensitive), exact
//     condition, inclusive price bounds.
//  4. Results are ordered newest first; equal timestamps keep input order.
//
// books is never modified; the result is a fresh slice.
func Query(books []Book, search string, f Filters) []Book {
	q := strings.ToLower(strings.TrimSpace(search))
	course := strings.ToLower(f.Course)

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Status == StatusHidden {
			continue
		}
		if q != "" && !containsFold(b.Title, q) && !containsFold(b.Author, q) && !containsFold(b.Course, q) {
			continue
		}
		if course != "" && !containsFold(b.Course, course) {
			continue
		}
		if f.Condition != "" && b.Condition != f.Condition {
			continue
		}
		if f.MinPrice != nil && b.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && b.Price > *f.MaxPrice {
			continue
		}
		out = append(out, b)
	}

	slices.SortStableFunc(out, func(a, b Book) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// containsFold reports whether lowered needle occurs in s, ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
