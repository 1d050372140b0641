// Package session holds the signed-in member's identity and token for the
// club client. The Manager is the only writer; everything else reads
// snapshots through Current.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

// Persisted keys. End deletes all of them.
const (
	KeyIdentity = "session/identity"
	KeyToken    = "session/token"
)

var keys = []string{KeyIdentity, KeyToken}

// ErrNoSession is returned by mutators when nobody is signed in.
var ErrNoSession = errors.New("no active session")

// Session is the signed-in member as the client knows it.
type Session struct {
	UserID    string
	Username  string
	Email     string
	Progress  int
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// IsAdmin reports whether the member may manage club content.
func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// Live reports whether the session carries a token that has not expired.
func (s Session) Live(now time.Time) bool {
	return s.UserID != "" && s.Token != "" && now.Before(s.ExpiresAt)
}

// FromUser builds a session for u holding token.
func FromUser(u *domain.User, token string, expiresAt time.Time) Session {
	return Session{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Progress:  u.CurrentChapter,
		Role:      u.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

type identityRecord struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Email    string      `json:"email,omitempty"`
	Progress int         `json:"progress"`
	Role     domain.Role `json:"role"`
}

type tokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager owns the session lifecycle: Begin on sign-in, mirror updates while
// signed in, End on sign-out.
type Manager struct {
	mu      sync.RWMutex
	backend Backend
	current *Session
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager restores any persisted session from backend. A partial or
// unreadable record is treated as signed out.
func NewManager(backend Backend, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Manager{backend: backend, logger: logger, now: time.Now}

	s, err := m.load()
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		logger.Warn("discarding unreadable session", "error", err)
	default:
		m.current = s
	}
	return m, nil
}

func (m *Manager) load() (*Session, error) {
	var id identityRecord
	if err := m.read(KeyIdentity, &id); err != nil {
		return nil, err
	}
	var tok tokenRecord
	if err := m.read(KeyToken, &tok); err != nil {
		return nil, err
	}
	return &Session{
		UserID:    id.UserID,
		Username:  id.Username,
		Email:     id.Email,
		Progress:  id.Progress,
		Role:      id.Role,
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
	}, nil
}

func (m *Manager) read(key string, dest any) error {
	data, err := m.backend.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return data, nil
}

func identityOf(s *Session) identityRecord {
	return identityRecord{
		UserID:   s.UserID,
		Username: s.Username,
		Email:    s.Email,
		Progress: s.Progress,
		Role:     s.Role,
	}
}

func (m *Manager) persistIdentity(s *Session) error {
	data, err := encode(KeyIdentity, identityOf(s))
	if err != nil {
		return err
	}
	return m.backend.Set(KeyIdentity, data)
}

// Begin replaces the current session with s. Identity and token are written
// in one batch, so a failure leaves the previous session intact on disk too.
func (m *Manager) Begin(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, err := encode(KeyIdentity, identityOf(&s))
	if err != nil {
		return err
	}
	token, err := encode(KeyToken, tokenRecord{Token: s.Token, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return err
	}
	if err := m.backend.SetMany(map[string][]byte{KeyIdentity: identity, KeyToken: token}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.current = &s
	m.logger.Debug("session started", "user_id", s.UserID)
	return nil
}

// Current returns a snapshot of the live session. It reports false when
// nobody is signed in or the token has expired.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil || !m.current.Live(m.now()) {
		return Session{}, false
	}
	return *m.current, true
}

// Token returns the live session's bearer token, or "".
func (m *Manager) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}
	return s.Token
}

// SetProgress mirrors a confirmed progress change into the session.
func (m *Manager) SetProgress(chapter int) error {
	return m.update(func(s *Session) { s.Progress = chapter })
}

// SetUsername mirrors a confirmed username change into the session.
func (m *Manager) SetUsername(username string) error {
	return m.update(func(s *Session) { s.Username = username })
}

func (m *Manager) update(fn func(*Session)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ErrNoSession
	}
	next := *m.current
	fn(&next)
	if err := m.persistIdentity(&next); err != nil {
		return err
	}
	m.current = &next
	return nil
}

// End signs out. Every persisted key is deleted even if an earlier delete
// fails; the in-memory session is always cleared.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil

	var errs []error
	for _, key := range keys {
		if err := m.backend.Delete(key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	m.logger.Debug("session ended")
	return errors.Join(errs...)
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
