package bot

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/gen"
	"github.com/zucenko/helperbot/model"
)

// Session owns everything tied to one world connection: the shared
// world state, the tracked-session table, the coordinator and the two
// background tasks. Torn down with the connection; nothing survives it.
type Session struct {
	World    *World
	Sessions *Table
	Coord    *Coordinator
	Watcher  *StuckWatcher

	watcherTok *Token
}

func NewSession(pub Publisher, g gen.Generator) *Session {
	world := NewWorld()
	sessions := NewTable()
	coord := NewCoordinator(world, sessions, pub, g, NewWanderer(world, pub))
	return &Session{
		World:    world,
		Sessions: sessions,
		Coord:    coord,
		Watcher:  NewStuckWatcher(sessions, coord),
	}
}

// Start launches the wander task and the stuck scan.
func (s *Session) Start() {
	s.Coord.StartWander()
	s.watcherTok = NewToken()
	go s.Watcher.Run(s.watcherTok)
}

// Close cancels every background task.
func (s *Session) Close() {
	s.Coord.StopWander()
	s.Coord.cancelProactive()
	if s.watcherTok != nil {
		s.watcherTok.Cancel()
	}
}

// Dispatch applies one decoded inbound event. Malformed events are
// dropped here with a warning and never touch shared state.
func (s *Session) Dispatch(in model.Inbound) {
	switch {
	case in.Map != nil:
		s.applyMap(in.Map)
	case in.SessionOpened != nil:
		s.applySessionOpened(in.SessionOpened)
	case in.SessionClosed != nil:
		s.Sessions.Remove(in.SessionClosed.SessionID)
	case in.HelpRequest != nil:
		s.applyHelpRequest(in.HelpRequest)
	}
}

func (s *Session) applyMap(ev *model.MapEvent) {
	if ev.GridSize <= 0 || ev.CellSize <= 0 || ev.Spawn == nil {
		log.Warnf("session: dropping malformed map event %q", ev.MapID)
		return
	}
	m := &model.MapInfo{
		MapID:     ev.MapID,
		Barriers:  toCells(ev.Barriers),
		Terminals: toCells(ev.Terminals),
		Spawn:     model.Cell{X: ev.Spawn[0], Y: ev.Spawn[1]},
		GridSize:  ev.GridSize,
		CellSize:  ev.CellSize,
	}
	s.World.SetMap(m)
	log.Infof("session: map %s loaded, %d barriers, spawn %d,%d", m.MapID, len(m.Barriers), m.Spawn.X, m.Spawn.Y)
}

func (s *Session) applySessionOpened(ev *model.SessionOpenedEvent) {
	if ev.SessionID == "" || ev.Terminal == nil {
		log.Warnf("session: dropping malformed session_opened for %q", ev.SessionID)
		return
	}
	s.Sessions.Add(model.TrackedSession{
		ID:        ev.SessionID,
		Name:      ev.Name,
		Challenge: ev.Challenge,
		Terminal:  model.Cell{X: ev.Terminal[0], Y: ev.Terminal[1]},
		OpenedAt:  time.Now(),
	})
}

func (s *Session) applyHelpRequest(ev *model.HelpRequestEvent) {
	if ev.RequestID == "" || ev.X == nil || ev.Y == nil {
		log.Warnf("session: dropping malformed help_request %q", ev.RequestID)
		return
	}
	req := model.HelpRequest{
		RequestID: ev.RequestID,
		Target:    model.Cell{X: *ev.X, Y: *ev.Y},
		Name:      ev.Name,
		Challenge: ev.Challenge,
		Code:      ev.Code,
	}
	go s.Coord.HandleHelpRequest(req)
}

func toCells(pairs [][2]int) []model.Cell {
	cells := make([]model.Cell, 0, len(pairs))
	for _, p := range pairs {
		cells = append(cells, model.Cell{X: p[0], Y: p[1]})
	}
	return cells
}
