package exchange

import "fmt"

// Seed fills an empty marketplace with two demo students and one listing
// each. It does nothing, and reports false, once any user or book exists.
func (m *Marketplace) Seed() (bool, error) {
	if len(m.users) > 0 || len(m.books) > 0 {
		return false, nil
	}

	now := m.opts.Now()
	alex := User{ID: m.opts.NewID(), Name: "Alex Student", Email: "alex@campus.ac.za", Phone: "0601234567", Password: "pass", CreatedAt: now}
	bongani := User{ID: m.opts.NewID(), Name: "Bongani N.", Email: "bongani@campus.ac.za", Phone: "0619876543", Password: "pass", CreatedAt: now}

	books := []Book{
		{
			ID: m.opts.NewID(), Title: "Discrete Mathematics and Its Applications", Author: "Rosen",
			Course: "CS201", Price: 300, Condition: ConditionGood, SellerID: alex.ID,
			Status: StatusAvailable, CreatedAt: now,
		},
		{
			ID: m.opts.NewID(), Title: "Introduction to Algorithms", Author: "CLRS",
			Course: "CS301", Price: 450, Condition: ConditionUsed, SellerID: bongani.ID,
			Status: StatusAvailable, CreatedAt: now,
		},
	}

	m.users = []User{alex, bongani}
	m.books = books
	if err := m.saveUsers(); err != nil {
		m.users, m.books = []User{}, []Book{}
		return false, fmt.Errorf("seed users: %w", err)
	}
	if err := m.saveBooks(); err != nil {
		m.books = []Book{}
		return false, fmt.Errorf("seed books: %w", err)
	}
	return true, nil
}
