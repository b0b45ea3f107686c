package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zucenko/helperbot/model"
)

func newTestWatcher(sessions *Table) (*StuckWatcher, *[]model.TrackedSession) {
	var fired []model.TrackedSession
	w := &StuckWatcher{
		Sessions:  sessions,
		GateFree:  func() bool { return true },
		Approach:  func(s model.TrackedSession) { fired = append(fired, s) },
		Interval:  time.Millisecond,
		Threshold: time.Minute,
	}
	return w, &fired
}

func staleSession(id string) model.TrackedSession {
	return model.TrackedSession{
		ID:       id,
		Name:     "p-" + id,
		OpenedAt: time.Now().Add(-10 * time.Minute),
	}
}

func TestScanFlagsStuckSession(t *testing.T) {
	sessions := NewTable()
	sessions.Add(staleSession("s1"))
	w, fired := newTestWatcher(sessions)

	w.scan()

	assert.Len(t, *fired, 1)
	assert.Equal(t, "s1", (*fired)[0].ID)
}

func TestScanAtMostOnePerCycle(t *testing.T) {
	sessions := NewTable()
	sessions.Add(staleSession("s1"))
	sessions.Add(staleSession("s2"))
	w, fired := newTestWatcher(sessions)

	w.scan()

	assert.Len(t, *fired, 1, "one invocation attempt per scan cycle")
}

func TestScanSkipsFreshAndHandledSessions(t *testing.T) {
	sessions := NewTable()
	fresh := model.TrackedSession{ID: "fresh", OpenedAt: time.Now()}
	offered := staleSession("offered")
	offered.ProactiveOffered = true
	helped := staleSession("helped")
	helped.HelpRequestActive = true
	sessions.Add(fresh)
	sessions.Add(offered)
	sessions.Add(helped)
	w, fired := newTestWatcher(sessions)

	w.scan()

	assert.Empty(t, *fired)
}

func TestScanSkipsWhenGateBusy(t *testing.T) {
	sessions := NewTable()
	sessions.Add(staleSession("s1"))
	w, fired := newTestWatcher(sessions)
	w.GateFree = func() bool { return false }

	w.scan()

	assert.Empty(t, *fired, "never start a flow while one is active")
}

func TestWatcherStops(t *testing.T) {
	sessions := NewTable()
	w, _ := newTestWatcher(sessions)
	tok := NewToken()
	done := make(chan struct{})
	go func() {
		w.Run(tok)
		close(done)
	}()
	tok.Cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}
