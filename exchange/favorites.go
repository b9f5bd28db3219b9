package exchange

// ToggleFavorite flips whether actor has saved bookID and returns the new
// state. Without a session it does nothing and reports false.
func (m *Marketplace) ToggleFavorite(actor Actor, bookID string) (bool, error) {
	if actor.Anonymous() {
		return false, nil
	}

	saved := m.favorites[actor.UserID]
	had := saved[bookID]
	next := make(map[string]bool, len(saved)+1)
	for k, v := range saved {
		next[k] = v
	}
	next[bookID] = !had

	prev, existed := m.favorites[actor.UserID]
	m.favorites[actor.UserID] = next
	if err := m.saveFavorites(); err != nil {
		if existed {
			m.favorites[actor.UserID] = prev
		} else {
			delete(m.favorites, actor.UserID)
		}
		return had, err
	}
	return !had, nil
}

// IsFavorite reports whether userID has saved bookID.
func (m *Marketplace) IsFavorite(userID, bookID string) bool {
	return m.favorites[userID][bookID]
}

// ListFavorites returns the listings userID has saved that still exist, in
// collection order. Hidden and sold listings are included.
func (m *Marketplace) ListFavorites(userID string) []Book {
	saved := m.favorites[userID]
	out := []Book{}
	if len(saved) == 0 {
		return out
	}
	for _, b := range m.books {
		if saved[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
