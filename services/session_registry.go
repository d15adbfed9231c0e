package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier pushes a fresh snapshot to whoever renders this session
// (the websocket hub in production).
type Notifier interface {
	Publish(sessionID string, snap Snapshot)
}

// SessionRegistry creates and tracks the in-memory sessions of this
// terminal. Nothing here survives a restart; that is deliberate.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog  *Catalog
	sched    Scheduler
	timings  Timings
	notifier Notifier

	// recorder persists staff calls; nil disables recording.
	recorder func(sessionID string, view View)

	// speechWindow is how long the simulated recognizer "listens".
	speechWindow time.Duration
}

func NewSessionRegistry(catalog *Catalog, sched Scheduler, timings Timings) *SessionRegistry {
	return &SessionRegistry{
		sessions:     make(map[string]*Session),
		catalog:      catalog,
		sched:        sched,
		timings:      timings,
		speechWindow: 3 * time.Second,
	}
}

func (r *SessionRegistry) SetNotifier(n Notifier) {
	r.notifier = n
}

func (r *SessionRegistry) SetStaffCallRecorder(fn func(sessionID string, view View)) {
	r.recorder = fn
}

func (r *SessionRegistry) Create() *Session {
	s := NewSession(uuid.NewString(), r.catalog, r.sched, r.timings)
	s.SetRecognizer(NewSimulatedRecognizer(r.sched, r.speechWindow))
	if r.notifier != nil {
		n := r.notifier
		s.SetNotify(func(snap Snapshot) { n.Publish(snap.ID, snap) })
	}
	if r.recorder != nil {
		s.SetStaffCallHook(r.recorder)
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Snapshots lists every active session, for the staff view.
func (r *SessionRegistry) Snapshots() []Snapshot {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	out := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}

// Remove drops a session, cancelling anything it still has scheduled.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Reset()
	}
}
