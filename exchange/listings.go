package exchange

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// CreateListing posts a new Available listing owned by actor. The price must
// parse as a finite, non-negative number; anything else is rejected rather
// than stored as an invalid value.
func (m *Marketplace) CreateListing(actor Actor, in ListingInput) (Book, error) {
	if actor.Anonymous() {
		return Book{}, fmt.Errorf("%w: log in to post a listing", ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return Book{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return Book{}, err
	}
	cond := in.Condition
	if cond == "" {
		cond = ConditionGood
	}
	if !cond.Valid() {
		return Book{}, fmt.Errorf("%w: unknown condition %q", ErrValidation, in.Condition)
	}

	b := Book{
		ID:        m.opts.NewID(),
		Title:     in.Title,
		Author:    in.Author,
		Course:    in.Course,
		Price:     price,
		Condition: cond,
		Image:     in.Image,
		SellerID:  actor.UserID,
		Status:    StatusAvailable,
		CreatedAt: m.opts.Now(),
	}

	prev := m.books
	m.books = append([]Book{b}, m.books...)
	if err := m.saveBooks(); err != nil {
		m.books = prev
		return Book{}, err
	}
	m.log.Info("listing created", slog.String("book_id", b.ID), slog.String("seller_id", b.SellerID))
	return b, nil
}

// DeleteListing removes the listing id when actor owns it. Anything else is a
// no-op reported as false. Favorites pointing at the listing are left in
// place; ListFavorites skips them.
func (m *Marketplace) DeleteListing(actor Actor, id string) (bool, error) {
	i := m.bookIndex(id)
	if i < 0 || actor.Anonymous() || m.books[i].SellerID != actor.UserID {
		return false, nil
	}

	prev := m.books
	next := make([]Book, 0, len(m.books)-1)
	next = append(next, m.books[:i]...)
	next = append(next, m.books[i+1:]...)
	m.books = next
	if err := m.saveBooks(); err != nil {
		m.books = prev
		return false, err
	}
	m.log.Info("listing deleted", slog.String("book_id", id))
	return true, nil
}

// ToggleSold flips an owned listing between Available and Sold and returns
// the resulting status. Hidden, unknown and foreign listings are untouched.
func (m *Marketplace) ToggleSold(actor Actor, id string) (Status, bool, error) {
	i := m.bookIndex(id)
	if i < 0 {
		return "", false, nil
	}
	b := m.books[i]
	if actor.Anonymous() || b.SellerID != actor.UserID || b.Status == StatusHidden {
		return b.Status, false, nil
	}

	prev := b.Status
	if b.Status == StatusAvailable {
		m.books[i].Status = StatusSold
	} else {
		m.books[i].Status = StatusAvailable
	}
	if err := m.saveBooks(); err != nil {
		m.books[i].Status = prev
		return prev, false, err
	}
	return m.books[i].Status, true, nil
}

func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: price required", ErrValidation)
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: price %q is not a number", ErrValidation, raw)
	}
	if p < 0 {
		return 0, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return p, nil
}
