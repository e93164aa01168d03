package session

import (
	"fmt"
	"sync"

	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/parser"
)

// Engine owns every active Session, all sharing one immutable Dictionary
// built once at startup.
type Engine struct {
	dict *dictionary.Dictionary

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewEngine builds an Engine around a pre-validated dictionary.
func NewEngine(dict *dictionary.Dictionary) *Engine {
	return &Engine{
		dict:     dict,
		sessions: make(map[string]*Session),
	}
}

// Open creates and registers a new Session, giving it its own Parser bound
// to the shared dictionary.
func (e *Engine) Open(cfg Config) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.sessions[cfg.ID]; exists {
		return nil, fmt.Errorf("session: %q already open", cfg.ID)
	}

	p := parser.New(e.dict)
	if cfg.BeginString == fixversion.FIXT11 {
		p.SetDefaultMessageVersion(fixversion.DefaultApplVerID)
	}

	s := New(cfg, p)
	e.sessions[cfg.ID] = s
	return s, nil
}

// Close removes a session from the engine; the caller owns closing the
// underlying transport.
func (e *Engine) Close(sessionID string) {
	e.mu.Lock()
	delete(e.sessions, sessionID)
	e.mu.Unlock()
}

// Get returns a currently-open session by ID.
func (e *Engine) Get(sessionID string) (*Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[sessionID]
	return s, ok
}

// Count returns how many sessions are currently open.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// Summaries returns a point-in-time snapshot of every open session, for
// the admin control API.
func (e *Engine) Summaries() []Summary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Summary, 0, len(e.sessions))
	for _, s := range e.sessions {
		out = append(out, s.Summary())
	}
	return out
}
