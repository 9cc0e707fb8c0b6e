// Package session tracks who is signed in and what their role allows.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/productcatalog/webapp/models"
)

// Session is the authenticated identity a request acts under.
type Session struct {
	Token    string
	UserID   uint
	Login    string
	FullName string
	Role     models.Role
}

// Credentials is the slice of the users repository the manager needs.
type Credentials interface {
	FindByCredentials(login, password string) (*models.User, error)
}

// Manager issues and resolves session tokens. Sessions live only in
// memory and vanish on process exit.
type Manager struct {
	users Credentials

	mu     sync.RWMutex
	active map[string]*Session
}

func NewManager(users Credentials) *Manager {
	return &Manager{
		users:  users,
		active: make(map[string]*Session),
	}
}

// Authenticate matches the login and password exactly against the
// stored credentials. A mismatch establishes nothing and returns
// models.ErrInvalidCredentials.
func (m *Manager) Authenticate(login, password string) (*Session, error) {
	user, err := m.users.FindByCredentials(login, password)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Token:    uuid.NewString(),
		UserID:   user.ID,
		Login:    user.Login,
		FullName: user.FullName,
		Role:     user.Role,
	}

	m.mu.Lock()
	m.active[s.Token] = s
	m.mu.Unlock()
	return s, nil
}

// Lookup resolves a token to its session.
func (m *Manager) Lookup(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.active[token]
	return s, ok
}

// Logout drops the session for token, if any.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.active, token)
	m.mu.Unlock()
}
