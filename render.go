package main

import (
	"fmt"
	"strconv"
	"strings"

	"textbook-exchange/exchange"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	soldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	availStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	favStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))
)

const listingRowFormat = "%-8s %-30s %-18s %-9s %9s %-9s %-10s %-16s %s\n"

// printListings renders books as a table. The viewer's own listings and
// saved listings are flagged in the last column.
func (a *app) printListings(books []exchange.Book, search string) {
	if len(books) == 0 {
		if search != "" {
			fmt.Fprintf(a.out, "No books found matching '%s'.\n", search)
		} else {
			fmt.Fprintln(a.out, "No books match your search yet. Try clearing filters or add a new listing.")
		}
		return
	}

	viewer := a.market.Actor()
	header := fmt.Sprintf(strings.TrimSuffix(listingRowFormat, "\n"), "ID", "Title", "Author", "Course", "Price", "Cond.", "Status", "Seller", "")
	fmt.Fprintln(a.out, headerStyle.Render(header))
	fmt.Fprintln(a.out, mutedStyle.Render(strings.Repeat("-", 120)))

	for _, b := range books {
		sellerName := "unknown"
		if seller, ok := a.market.Seller(b); ok {
			sellerName = seller.Name
		}

		var marks []string
		if !viewer.Anonymous() {
			if b.SellerID == viewer.UserID {
				marks = append(marks, "yours")
			}
			if a.market.IsFavorite(viewer.UserID, b.ID) {
				marks = append(marks, favStyle.Render("saved"))
			}
		}
		if b.Image != "" {
			marks = append(marks, "cover")
		}

		fmt.Fprintf(a.out, listingRowFormat,
			shortID(b.ID),
			truncateString(b.Title, 30),
			truncateString(b.Author, 18),
			truncateString(b.Course, 9),
			formatPrice(b.Price),
			b.Condition,
			statusCell(b.Status),
			truncateString(sellerName, 16),
			strings.Join(marks, ", "))
	}
	fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("%d listing(s)", len(books))))
}

// statusCell pads before styling so ANSI codes do not break alignment.
func statusCell(s exchange.Status) string {
	cell := fmt.Sprintf("%-10s", s)
	switch s {
	case exchange.StatusSold:
		return soldStyle.Render(cell)
	case exchange.StatusAvailable:
		return availStyle.Render(cell)
	default:
		return mutedStyle.Render(cell)
	}
}

func formatPrice(p float64) string {
	return "R" + strconv.FormatFloat(p, 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
