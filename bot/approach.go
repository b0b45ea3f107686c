package bot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/gen"
	"github.com/zucenko/helperbot/model"
	"github.com/zucenko/helperbot/nav"
)

const lingerDuration = 4 * time.Second

// Coordinator arbitrates movement between wandering, proactive
// check-ins and explicit help requests. Invariant: at most one of
// {wander, approach flow} drives movement. Every approach flow cancels
// wander synchronously on entry and starts a fresh wander on every exit
// path; the capacity-1 gate channel admits one approach flow at a time.
type Coordinator struct {
	World    *World
	Sessions *Table
	Pub      Publisher
	Gen      gen.Generator
	Wanderer *Wanderer

	Linger time.Duration

	gate chan struct{}

	mu         sync.Mutex
	wander     *Token
	wanderDone chan struct{}
	proactive  *Token
}

func NewCoordinator(world *World, sessions *Table, pub Publisher, g gen.Generator, wanderer *Wanderer) *Coordinator {
	return &Coordinator{
		World:    world,
		Sessions: sessions,
		Pub:      pub,
		Gen:      g,
		Wanderer: wanderer,
		Linger:   lingerDuration,
		gate:     make(chan struct{}, 1),
	}
}

// StartWander cancels any previous wander task, waits for its goroutine
// to exit and launches a fresh one from the current position. The join
// keeps two Run goroutines from ever overlapping on the shared
// Wanderer.
func (c *Coordinator) StartWander() {
	c.stopWanderAndJoin()
	tok := NewToken()
	done := make(chan struct{})
	c.mu.Lock()
	c.wander = tok
	c.wanderDone = done
	c.mu.Unlock()
	go func() {
		defer close(done)
		c.Wanderer.Run(tok)
	}()
}

// StopWander cancels the active wander task and waits until its
// goroutine is gone, so the caller owns movement before reaching its
// first suspension point and no late wander publish can follow.
func (c *Coordinator) StopWander() {
	c.stopWanderAndJoin()
}

func (c *Coordinator) stopWanderAndJoin() {
	c.mu.Lock()
	tok, done := c.wander, c.wanderDone
	c.wander = nil
	c.wanderDone = nil
	c.mu.Unlock()
	if tok != nil {
		tok.Cancel()
	}
	if done != nil {
		<-done
	}
}

// GateFree reports whether no approach flow currently holds the gate.
// The stuck scan uses it as a cheap pre-check so a busy cycle costs
// nothing.
func (c *Coordinator) GateFree() bool {
	return len(c.gate) == 0
}

func (c *Coordinator) tryAcquire() bool {
	select {
	case c.gate <- struct{}{}:
		return true
	default:
		return false
	}
}

func (c *Coordinator) release() {
	select {
	case <-c.gate:
	default:
	}
}

func (c *Coordinator) cancelProactive() {
	c.mu.Lock()
	if c.proactive != nil {
		c.proactive.Cancel()
		c.proactive = nil
	}
	c.mu.Unlock()
}

// HandleHelpRequest runs the user-initiated flow: preempt any proactive
// approach, take the gate, walk next to the requester's spot while the
// hint generates, deliver, linger, hand movement back to wander.
func (c *Coordinator) HandleHelpRequest(req model.HelpRequest) {
	log.Infof("approach: help request %s from %s at %d,%d", req.RequestID, req.Name, req.Target.X, req.Target.Y)

	// a help request always wins over a proactive approach
	c.cancelProactive()
	c.gate <- struct{}{}
	defer c.release()

	c.Sessions.MarkHelpRequested(req.Name)
	c.StopWander()
	defer c.StartWander()

	// generation is slow; start it before any walking
	hintCh := make(chan string, 1)
	go func() { hintCh <- gen.Hint(context.Background(), c.Gen, req) }()

	if m, barriers, pos, ok := c.World.Snapshot(); ok {
		c.walkAdjacent(m, barriers, pos, req.Target, nil)
	} else {
		// no map yet: answer from wherever we are
		log.Warnf("approach: no map, responding in place")
	}

	text := <-hintCh
	msg := model.ResponseMessage{
		Type:      model.TypeHint,
		ID:        uuid.NewString(),
		RequestID: req.RequestID,
		Text:      text,
	}
	if err := c.Pub.PublishResponse(msg); err != nil {
		log.Warnf("approach: hint publish failed: %v", err)
	}
	time.Sleep(c.Linger)
}

// OfferNudge runs the system-initiated flow for a session flagged by the
// stuck scan. It gives way to help requests at every suspension point
// and rechecks session freshness around the long generation call.
func (c *Coordinator) OfferNudge(s model.TrackedSession) {
	if !c.tryAcquire() {
		return
	}
	defer c.release()

	tok := NewToken()
	c.mu.Lock()
	c.proactive = tok
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.proactive == tok {
			c.proactive = nil
		}
		c.mu.Unlock()
	}()

	log.Infof("approach: nudging session %s (%s)", s.ID, s.Name)
	c.StopWander()
	defer c.StartWander()

	if m, barriers, pos, ok := c.World.Snapshot(); ok {
		if !c.walkAdjacent(m, barriers, pos, s.Terminal, tok) {
			return
		}
	}

	// the target may vanish while the model thinks; check both sides
	if tok.Cancelled() || !c.Sessions.Has(s.ID) {
		return
	}
	text := gen.Nudge(context.Background(), c.Gen, s)
	if tok.Cancelled() || !c.Sessions.Has(s.ID) {
		return
	}

	msg := model.ResponseMessage{
		Type:      model.TypeNudge,
		ID:        uuid.NewString(),
		SessionID: s.ID,
		Text:      text,
	}
	if err := c.Pub.PublishResponse(msg); err != nil {
		log.Warnf("approach: nudge publish failed: %v", err)
		return
	}
	c.Sessions.MarkProactiveOffered(s.ID)
	tok.Sleep(c.Linger)
}

// walkAdjacent moves the bot next to target and waits out the walk.
// With a token the wait is cancellable and false reports an abort; with
// tok nil the wait always runs to completion (help requests commit to
// the walk once published). Skips walking when already adjacent or when
// no approach point or route exists.
func (c *Coordinator) walkAdjacent(m *model.MapInfo, barriers *nav.BarrierIndex, pos, target model.Cell, tok *Token) bool {
	if nav.Chebyshev(pos, target) <= 1 {
		return true
	}
	adj, ok := nav.AdjacentCell(target, barriers, m.GridSize)
	if !ok {
		log.Warnf("approach: target %d,%d is walled in", target.X, target.Y)
		return true
	}
	path := nav.FindPath(pos, adj, barriers, m.GridSize)
	if len(path) < 2 {
		return true
	}
	path = nav.Truncate(path, c.Wanderer.MaxSteps)
	if err := c.Pub.PublishMove(nav.Pixels(path, m.CellSize), nav.Directions(path)); err != nil {
		log.Warnf("approach: move publish failed: %v", err)
		return true
	}
	wait := time.Duration(len(path)-1) * c.Wanderer.Step
	if tok == nil {
		time.Sleep(wait)
	} else if !tok.Sleep(wait) {
		return false
	}
	c.World.Commit(path[len(path)-1])
	return true
}
