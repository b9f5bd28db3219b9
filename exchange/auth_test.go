package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m, _ := newMarket(t)

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		u, err := m.Register("User", email, "", "pw")
		require.NoError(t, err)
		assert.Len(t, m.Users(), i+1)

		sess, ok := m.Session()
		require.True(t, ok)
		assert.Equal(t, u, sess)
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	}
}

func TestRegister_Validation(t *testing.T) {
	m, _ := newMarket(t)
	_, err := m.Register("Ann", "ann@x.com", "", "pw")
	require.NoError(t, err)

	tests := []struct {
		name                   string
		uname, email, password string
	}{
		{"missing name", "", "b@x.com", "pw"},
		{"blank name", "   ", "b@x.com", "pw"},
		{"missing email", "Bob", "", "pw"},
		{"missing password", "Bob", "b@x.com", ""},
		{"duplicate email", "Bob", "ann@x.com", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := m.Session()
			_, err := m.Register(tt.uname, tt.email, "", tt.password)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Len(t, m.Users(), 1)
			after, _ := m.Session()
			assert.Equal(t, before, after)
		})
	}
}

func TestLogin(t *testing.T) {
	m, _ := newMarket(t)
	ann, err := m.Register("Ann", "ann@x.com", "", "pw")
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	first, err := m.Login("ann@x.com", "pw")
	require.NoError(t, err)
	second, err := m.Login("ann@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, ann, first)
	assert.Equal(t, first, second)

	sess, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, ann, sess)
}

func TestLogin_Failures(t *testing.T) {
	m, _ := newMarket(t)
	ann, err := m.Register("Ann", "ann@x.com", "", "pw")
	require.NoError(t, err)

	_, err = m.Login("ann@x.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
	_, err = m.Login("nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrAuth)
	_, err = m.Login("ANN@x.com", "pw")
	assert.ErrorIs(t, err, ErrAuth, "email match is exact")

	sess, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, ann, sess)
}

func TestLogout(t *testing.T) {
	m, s := newMarket(t)
	require.NoError(t, m.Logout(), "logout without a session")

	_, err := m.Register("Ann", "ann@x.com", "", "pw")
	require.NoError(t, err)
	_, ok, _ := s.Get(KeySession)
	require.True(t, ok)

	require.NoError(t, m.Logout())
	_, ok = m.Session()
	assert.False(t, ok)
	_, ok, _ = s.Get(KeySession)
	assert.False(t, ok)
}
