package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/helperbot/model"
)

func TestWanderWaitsForMap(t *testing.T) {
	world := NewWorld()
	pub := newFakePub()
	w := fastWanderer(world, pub)
	tok := NewToken()
	defer tok.Cancel()
	go w.Run(tok)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, pub.moveCount(), "no walking before a map arrives")

	world.SetMap(testMap(10, model.Cell{X: 5, Y: 5}))
	assert.Eventually(t, func() bool { return pub.moveCount() > 0 },
		time.Second, time.Millisecond)
}

func TestWanderCommitsAfterWalk(t *testing.T) {
	world := NewWorld()
	world.SetMap(testMap(10, model.Cell{X: 5, Y: 5}))
	pub := newFakePub()
	w := fastWanderer(world, pub)
	tok := NewToken()
	defer tok.Cancel()
	go w.Run(tok)

	assert.Eventually(t, func() bool { return world.Pos() != (model.Cell{X: 5, Y: 5}) },
		time.Second, time.Millisecond, "an uninterrupted walk commits the endpoint")
}

func TestWanderCancelledWalkLeavesPosition(t *testing.T) {
	world := NewWorld()
	spawn := model.Cell{X: 5, Y: 5}
	world.SetMap(testMap(10, spawn))
	pub := newFakePub()
	w := fastWanderer(world, pub)
	w.Step = 200 * time.Millisecond // walk sleep long enough to cancel into

	tok := NewToken()
	go w.Run(tok)

	select {
	case <-pub.moved:
	case <-time.After(time.Second):
		t.Fatal("no move published")
	}
	tok.Cancel()
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, spawn, world.Pos(), "abandoned walk must not move the bot")
}

func TestWanderPublishFailureRetries(t *testing.T) {
	world := NewWorld()
	world.SetMap(testMap(10, model.Cell{X: 5, Y: 5}))
	pub := newFakePub()
	pub.failMoves = true
	w := fastWanderer(world, pub)
	tok := NewToken()
	defer tok.Cancel()
	go w.Run(tok)

	time.Sleep(30 * time.Millisecond)
	pub.mu.Lock()
	pub.failMoves = false
	pub.mu.Unlock()
	assert.Eventually(t, func() bool { return pub.moveCount() > 0 },
		time.Second, time.Millisecond, "publish failure is transient, task keeps going")
}

func TestWanderRespectsStepCap(t *testing.T) {
	world := NewWorld()
	world.SetMap(testMap(40, model.Cell{X: 20, Y: 20}))
	pub := newFakePub()
	w := fastWanderer(world, pub)
	w.MaxSteps = 3
	w.Radius = 20
	tok := NewToken()
	defer tok.Cancel()
	go w.Run(tok)

	require.Eventually(t, func() bool { return pub.moveCount() >= 3 },
		time.Second, time.Millisecond)
	pub.mu.Lock()
	defer pub.mu.Unlock()
	for _, points := range pub.moves {
		assert.LessOrEqual(t, len(points), 4)
	}
}
