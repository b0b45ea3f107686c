package bot

import (
	"sync"
	"time"

	"github.com/zucenko/helperbot/model"
)

// Table tracks open interaction sessions keyed by session id.
type Table struct {
	mu       sync.Mutex
	sessions map[string]*model.TrackedSession
}

func NewTable() *Table {
	return &Table{sessions: make(map[string]*model.TrackedSession)}
}

func (t *Table) Add(s model.TrackedSession) {
	if s.OpenedAt.IsZero() {
		s.OpenedAt = time.Now()
	}
	t.mu.Lock()
	t.sessions[s.ID] = &s
	t.mu.Unlock()
}

func (t *Table) Remove(id string) {
	t.mu.Lock()
	delete(t.sessions, id)
	t.mu.Unlock()
}

func (t *Table) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[id]
	return ok
}

// Snapshot copies the table so scans never hold the lock across other
// work.
func (t *Table) Snapshot() []model.TrackedSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.TrackedSession, 0, len(t.sessions))
	for _, s := range t.sessions {
		out = append(out, *s)
	}
	return out
}

func (t *Table) MarkProactiveOffered(id string) {
	t.mu.Lock()
	if s, ok := t.sessions[id]; ok {
		s.ProactiveOffered = true
	}
	t.mu.Unlock()
}

// MarkHelpRequested flags the session owned by the named player so the
// stuck scan stops offering it nudges.
func (t *Table) MarkHelpRequested(name string) {
	t.mu.Lock()
	for _, s := range t.sessions {
		if s.Name == name {
			s.HelpRequestActive = true
		}
	}
	t.mu.Unlock()
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
