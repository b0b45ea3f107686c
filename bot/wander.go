package bot

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/model"
	"github.com/zucenko/helperbot/nav"
)

// Publisher is the outbound side of the world connection.
type Publisher interface {
	PublishMove(points []model.Point, dirs []model.Direction) error
	PublishResponse(msg model.ResponseMessage) error
}

const (
	// StepDuration must equal the renderer's per-step animation time;
	// nothing enforces this, keep the two in sync by hand.
	StepDuration = 400 * time.Millisecond

	MaxWalkSteps = 15

	mapPollInterval   = 500 * time.Millisecond
	walkRetrySleep    = 2 * time.Second
	wanderRadius      = 6
	wanderSampleTries = 20
	pauseMin          = 3 * time.Second
	pauseMax          = 10 * time.Second
)

// Wanderer walks the bot to random nearby cells while nothing better is
// going on. WaitingForMap -> Walking -> Pausing, forever, until its
// token is cancelled.
type Wanderer struct {
	World *World
	Pub   Publisher

	// tunables, NewWanderer fills them from the package constants
	Step     time.Duration
	MaxSteps int
	Radius   int
	PollEach time.Duration
	Retry    time.Duration
	PauseMin time.Duration
	PauseMax time.Duration

	rng *rand.Rand
}

func NewWanderer(world *World, pub Publisher) *Wanderer {
	return &Wanderer{
		World:    world,
		Pub:      pub,
		Step:     StepDuration,
		MaxSteps: MaxWalkSteps,
		Radius:   wanderRadius,
		PollEach: mapPollInterval,
		Retry:    walkRetrySleep,
		PauseMin: pauseMin,
		PauseMax: pauseMax,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *Wanderer) Run(tok *Token) {
	log.Info("wander: started")
	for {
		if tok.Cancelled() {
			log.Info("wander: cancelled")
			return
		}
		m, barriers, pos, ok := w.World.Snapshot()
		if !ok {
			// WaitingForMap
			if !tok.Sleep(w.PollEach) {
				return
			}
			continue
		}

		target, found := w.pickTarget(pos, barriers, m.GridSize)
		if !found {
			if !tok.Sleep(w.Retry) {
				return
			}
			continue
		}
		path := nav.FindPath(pos, target, barriers, m.GridSize)
		if len(path) < 2 {
			if !tok.Sleep(w.Retry) {
				return
			}
			continue
		}
		path = nav.Truncate(path, w.MaxSteps)

		if err := w.Pub.PublishMove(nav.Pixels(path, m.CellSize), nav.Directions(path)); err != nil {
			// transient: drop this walk and retry the loop
			log.Warnf("wander: publish failed: %v", err)
			if !tok.Sleep(w.Retry) {
				return
			}
			continue
		}

		steps := len(path) - 1
		if !tok.Sleep(time.Duration(steps) * w.Step) {
			// walk abandoned mid-animation; the published move cannot
			// be retracted but the position stays uncommitted
			return
		}
		w.World.Commit(path[len(path)-1])

		// Pausing
		pause := w.PauseMin
		if w.PauseMax > w.PauseMin {
			pause += time.Duration(w.rng.Int63n(int64(w.PauseMax - w.PauseMin)))
		}
		if !tok.Sleep(pause) {
			return
		}
	}
}

// pickTarget samples random walkable cells within a Chebyshev radius of
// pos, giving up after a fixed try budget.
func (w *Wanderer) pickTarget(pos model.Cell, barriers *nav.BarrierIndex, gridSize int) (model.Cell, bool) {
	for i := 0; i < wanderSampleTries; i++ {
		c := model.Cell{
			X: pos.X + w.rng.Intn(2*w.Radius+1) - w.Radius,
			Y: pos.Y + w.rng.Intn(2*w.Radius+1) - w.Radius,
		}
		if c == pos || !nav.InBounds(c, gridSize) || barriers.Contains(c) {
			continue
		}
		return c, true
	}
	return model.Cell{}, false
}
