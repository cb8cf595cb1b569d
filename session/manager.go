package session

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"go-currency-converter/rates"
	"sync"

	"github.com/go-kit/log"
	"github.com/google/uuid"
)

// Manager holds the live sessions by id
type Manager struct {
	ctx    context.Context
	quotes rates.Service
	cfg    Config
	logger log.Logger

	lock     sync.RWMutex
	sessions map[string]*Session
}

// NewManager constructs a Manager. Sessions it creates live no longer than ctx.
func NewManager(ctx context.Context, quotes rates.Service, cfg Config, logger log.Logger) *Manager {
	return &Manager{
		ctx:      ctx,
		quotes:   quotes,
		cfg:      cfg,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Create starts a new session
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := New(m.ctx, id, m.quotes, m.cfg, m.logger)

	m.lock.Lock()
	defer m.lock.Unlock()
	m.sessions[id] = s
	m.logger.Log("msg", "session created", "session", id)
	return s
}

// Get finds a live session
func (m *Manager) Get(id string) (*Session, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get [%v]: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Close stops and forgets a session
func (m *Manager) Close(id string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("close [%v]: %w", id, domain.ErrSessionNotFound)
	}
	s.Close()
	delete(m.sessions, id)
	m.logger.Log("msg", "session closed", "session", id)
	return nil
}

// Len the number of live sessions
func (m *Manager) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}

// Shutdown closes every session
func (m *Manager) Shutdown() {
	m.lock.Lock()
	defer m.lock.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
