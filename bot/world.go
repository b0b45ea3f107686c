package bot

import (
	"sync"

	"github.com/zucenko/helperbot/model"
	"github.com/zucenko/helperbot/nav"
)

// World is the shared picture of the current map and the bot's own grid
// position. One instance per connection, handed by reference to every
// task; the mutex covers the websocket read goroutine racing the task
// goroutines.
type World struct {
	mu       sync.Mutex
	m        *model.MapInfo
	barriers *nav.BarrierIndex
	pos      model.Cell
}

func NewWorld() *World {
	return &World{}
}

// SetMap replaces the map wholesale and snaps the position back to the
// spawn point.
func (w *World) SetMap(m *model.MapInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.m = m
	w.barriers = nav.NewBarrierIndex(m.Barriers)
	w.pos = m.Spawn
}

// Snapshot returns the current map, its barrier index and position.
// ok is false until the first map event arrives.
func (w *World) Snapshot() (*model.MapInfo, *nav.BarrierIndex, model.Cell, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.m == nil {
		return nil, nil, model.Cell{}, false
	}
	return w.m, w.barriers, w.pos, true
}

// Commit records the endpoint of a finished walk.
func (w *World) Commit(pos model.Cell) {
	w.mu.Lock()
	w.pos = pos
	w.mu.Unlock()
}

func (w *World) Pos() model.Cell {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos
}
