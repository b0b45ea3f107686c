package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zucenko/helperbot/model"
)

// fakePub records everything the bot publishes.
type fakePub struct {
	mu        sync.Mutex
	moves     [][]model.Point
	responses []model.ResponseMessage
	failMoves bool
	moved     chan struct{}
}

func newFakePub() *fakePub {
	return &fakePub{moved: make(chan struct{}, 16)}
}

func (p *fakePub) PublishMove(points []model.Point, dirs []model.Direction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failMoves {
		return errors.New("publish failed")
	}
	p.moves = append(p.moves, points)
	select {
	case p.moved <- struct{}{}:
	default:
	}
	return nil
}

func (p *fakePub) PublishResponse(msg model.ResponseMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, msg)
	return nil
}

func (p *fakePub) moveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.moves)
}

func (p *fakePub) responsesOfType(typ string) []model.ResponseMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.ResponseMessage
	for _, r := range p.responses {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// fakeGen answers after an optional delay, or fails.
type fakeGen struct {
	text  string
	delay time.Duration
	fail  bool
}

func (g *fakeGen) Generate(ctx context.Context, systemPrompt, userContext string) (string, error) {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if g.fail {
		return "", errors.New("model unavailable")
	}
	return g.text, nil
}

func testMap(gridSize int, spawn model.Cell, barriers ...model.Cell) *model.MapInfo {
	return &model.MapInfo{
		MapID:    "m1",
		Barriers: barriers,
		Spawn:    spawn,
		GridSize: gridSize,
		CellSize: 10,
	}
}

// fastWanderer keeps every delay tiny so tests run in milliseconds.
func fastWanderer(world *World, pub Publisher) *Wanderer {
	w := NewWanderer(world, pub)
	w.Step = time.Millisecond
	w.PollEach = time.Millisecond
	w.Retry = time.Millisecond
	w.PauseMin = time.Millisecond
	w.PauseMax = 2 * time.Millisecond
	return w
}
