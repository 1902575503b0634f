// Package memory implements in-memory storage for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"scaleshift/internal/domain"
)

// DB implements an in-memory key-value store.
type DB struct {
	mu     sync.Mutex
	values map[string]string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{values: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KeyValueStore = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- KeyValueStore ---

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	v, ok := db.values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.values[key] = value
	return nil
}

// Close is a no-op.
func (db *DB) Close() error { return nil }

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]domain.Session), now: time.Now}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[token]; ok {
		return &s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, v := range r.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.sessions, k)
		}
	}
	return nil
}
