package exchange

import (
	"fmt"
	"log/slog"
	"strings"
)

// Register creates an account and makes it the current session. Name, email
// and password are required and the email must not already be registered.
func (m *Marketplace) Register(name, email, phone, password string) (User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return User{}, fmt.Errorf("%w: all fields required", ErrValidation)
	}
	for _, u := range m.users {
		if u.Email == email {
			return User{}, fmt.Errorf("%w: email already registered", ErrValidation)
		}
	}

	u := User{
		ID:        m.opts.NewID(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  password,
		CreatedAt: m.opts.Now(),
	}
	m.users = append(m.users, u)
	if err := m.saveUsers(); err != nil {
		m.users = m.users[:len(m.users)-1]
		return User{}, err
	}

	if err := m.setSession(&u); err != nil {
		return User{}, err
	}
	m.log.Info("registered user", slog.String("user_id", u.ID))
	return u, nil
}

// Login makes the user whose email and password both match exactly the
// current session.
func (m *Marketplace) Login(email, password string) (User, error) {
	for _, u := range m.users {
		if u.Email == email && u.Password == password {
			if err := m.setSession(&u); err != nil {
				return User{}, err
			}
			return u, nil
		}
	}
	return User{}, ErrAuth
}

// Logout clears the current session, if any.
func (m *Marketplace) Logout() error { return m.setSession(nil) }

// Session returns the current session user.
func (m *Marketplace) Session() (User, bool) {
	if m.session == nil {
		return User{}, false
	}
	return *m.session, true
}

// Actor returns the Actor for the current session; the zero Actor when
// nobody is logged in.
func (m *Marketplace) Actor() Actor {
	if m.session == nil {
		return Actor{}
	}
	return ActorFor(*m.session)
}

func (m *Marketplace) setSession(u *User) error {
	prev := m.session
	if u != nil {
		cp := *u
		u = &cp
	}
	m.session = u
	if err := m.saveSession(); err != nil {
		m.session = prev
		return err
	}
	return nil
}
