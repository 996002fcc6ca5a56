// Package session owns the single-writer discipline over open documents.
// The engine itself is synchronous and not concurrency-safe per instance, so
// every open document is wrapped in a Session whose mutex serializes all
// edits from the HTTP front end. Idle sessions are evicted by TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/torgen/internal/document"
)

// Session is one open authoring session over one document.
// All mutable state sits behind the session mutex: the cleanup ticker and
// concurrent handlers read it while edits are in flight.
type Session struct {
	ID string

	mu        sync.Mutex
	projectID string
	updatedAt time.Time
	doc       *document.Document
}

// Do runs fn with exclusive access to the session's document.
func (s *Session) Do(fn func(*document.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return fn(s.doc)
}

// View runs fn with exclusive read access, without bumping the idle clock.
func (s *Session) View(fn func(*document.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

// Project returns the stored-project id this session is bound to, if any.
func (s *Session) Project() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// SetProject binds the session to a stored project after a save.
func (s *Session) SetProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID = id
}

// idleSince returns the time of the last edit.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Registry is a thread-safe in-memory session table with TTL eviction.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry creates an empty registry; sessions idle longer than ttl are
// dropped by the cleanup loop.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Open registers a new session around a document and returns it.
func (r *Registry) Open(doc *document.Document, projectID string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		projectID: projectID,
		updatedAt: time.Now(),
		doc:       doc,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get returns a session by id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Close drops a session. Unsaved edits are discarded.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Cleanup removes sessions idle longer than the TTL. Each session's idle
// clock is read under its own mutex; session methods never take the registry
// mutex, so the lock order is safe.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

// Start launches the background cleanup loop.
func (r *Registry) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				r.Cleanup()
			}
		}
	}()
}

// Stop terminates the cleanup loop.
func (r *Registry) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}
