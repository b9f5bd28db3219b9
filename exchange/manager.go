package exchange

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options configures a Marketplace.
type Options struct {
	// KeyPrefix is prepended to every collection key (e.g. "tx_" gives
	// "tx_users").
	KeyPrefix string
	// Seed writes the demo users and listings when the store is empty.
	Seed bool
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Now and NewID override the clock and id generator, mainly for tests.
	Now   func() time.Time
	NewID func() string
}

// Marketplace holds in-memory mirrors of the four persisted collections and
// writes each collection back to the Store as soon as it changes.
//
// A Marketplace is not safe for concurrent use; callers handle one intent at
// a time.
type Marketplace struct {
	store Store
	opts  Options
	log   *slog.Logger

	users     []User
	books     []Book
	favorites Favorites
	session   *User
}

// Open loads every collection from store. Unreadable collections fall back
// to empty ones.
func Open(store Store, opts Options) (*Marketplace, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	m := &Marketplace{store: store, opts: opts, log: opts.Logger}
	if err := m.load(); err != nil {
		return nil, err
	}

	if opts.Seed {
		seeded, err := m.Seed()
		if err != nil {
			return nil, err
		}
		if seeded {
			m.log.Info("seeded demo data", slog.Int("users", len(m.users)), slog.Int("books", len(m.books)))
		}
	}
	return m, nil
}

// Close closes the underlying store.
func (m *Marketplace) Close() error { return m.store.Close() }

func (m *Marketplace) key(name string) string { return m.opts.KeyPrefix + name }

func (m *Marketplace) load() error {
	var err error
	if m.users, err = loadJSON(m.store, m.key(KeyUsers), []User{}, m.log); err != nil {
		return err
	}
	if m.books, err = loadJSON(m.store, m.key(KeyBooks), []Book{}, m.log); err != nil {
		return err
	}
	if m.favorites, err = loadJSON(m.store, m.key(KeyFavorites), Favorites{}, m.log); err != nil {
		return err
	}
	if m.session, err = loadJSON[*User](m.store, m.key(KeySession), nil, m.log); err != nil {
		return err
	}
	if m.users == nil {
		m.users = []User{}
	}
	if m.books == nil {
		m.books = []Book{}
	}
	if m.favorites == nil {
		m.favorites = Favorites{}
	}
	return nil
}

// ------------------ Flush helpers ------------------

func (m *Marketplace) saveUsers() error { return saveJSON(m.store, m.key(KeyUsers), m.users) }
func (m *Marketplace) saveBooks() error { return saveJSON(m.store, m.key(KeyBooks), m.books) }
func (m *Marketplace) saveFavorites() error {
	return saveJSON(m.store, m.key(KeyFavorites), m.favorites)
}

func (m *Marketplace) saveSession() error {
	if m.session == nil {
		if err := m.store.Remove(m.key(KeySession)); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}
	return saveJSON(m.store, m.key(KeySession), m.session)
}

// ------------------ Read helpers ------------------

// Users returns a copy of the user collection.
func (m *Marketplace) Users() []User { return append([]User(nil), m.users...) }

// Books returns a copy of the book collection in stored order (newest
// listings first).
func (m *Marketplace) Books() []Book { return append([]Book(nil), m.books...) }

// Book looks up a listing by id.
func (m *Marketplace) Book(id string) (Book, bool) {
	if i := m.bookIndex(id); i >= 0 {
		return m.books[i], true
	}
	return Book{}, false
}

// User looks up a user by id.
func (m *Marketplace) User(id string) (User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Seller returns the user who listed b.
func (m *Marketplace) Seller(b Book) (User, bool) { return m.User(b.SellerID) }

// Search runs Query over the current listings.
func (m *Marketplace) Search(search string, f Filters) []Book {
	return Query(m.books, search, f)
}

func (m *Marketplace) bookIndex(id string) int {
	for i, b := range m.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
