package bot

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/model"
)

const (
	stuckScanInterval = 15 * time.Second
	stuckThreshold    = 5 * time.Minute
)

// StuckWatcher periodically scans the session table for players who
// have been on their challenge past the threshold without a nudge or a
// help request. It fires the approach callback for at most one session
// per scan and never waits for the flow to finish.
type StuckWatcher struct {
	Sessions *Table
	GateFree func() bool
	Approach func(s model.TrackedSession)

	Interval  time.Duration
	Threshold time.Duration
}

func NewStuckWatcher(sessions *Table, coord *Coordinator) *StuckWatcher {
	return &StuckWatcher{
		Sessions:  sessions,
		GateFree:  coord.GateFree,
		Approach:  func(s model.TrackedSession) { go coord.OfferNudge(s) },
		Interval:  stuckScanInterval,
		Threshold: stuckThreshold,
	}
}

func (w *StuckWatcher) Run(tok *Token) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-tok.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *StuckWatcher) scan() {
	if !w.GateFree() {
		return
	}
	for _, s := range w.Sessions.Snapshot() {
		if s.ProactiveOffered || s.HelpRequestActive {
			continue
		}
		if time.Since(s.OpenedAt) < w.Threshold {
			continue
		}
		log.Infof("stuck: session %s (%s) open since %s", s.ID, s.Name, s.OpenedAt.Format("15:04:05"))
		w.Approach(s)
		return
	}
}
