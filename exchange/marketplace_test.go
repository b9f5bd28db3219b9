package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuyerFlow walks a seller and a buyer through listing, searching,
// saving and deleting a book.
func TestBuyerFlow(t *testing.T) {
	m, _ := newMarket(t)

	a, err := m.Register("Seller", "a@x.com", "", "pw")
	require.NoError(t, err)
	calc, err := m.CreateListing(m.Actor(), ListingInput{Title: "Calculus", Price: "200", Course: "MATH101"})
	require.NoError(t, err)

	b, err := m.Register("Buyer", "b@x.com", "", "pw")
	require.NoError(t, err)
	require.Equal(t, b.ID, m.Actor().UserID)

	assert.Contains(t, ids(m.Search("calc", Filters{})), calc.ID)

	_, err = m.ToggleFavorite(m.Actor(), calc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{calc.ID}, ids(m.ListFavorites(b.ID)))

	_, err = m.Login("a@x.com", "pw")
	require.NoError(t, err)
	deleted, err := m.DeleteListing(ActorFor(a), calc.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Empty(t, m.ListFavorites(b.ID))
	assert.Empty(t, m.Search("calc", Filters{}))
}
