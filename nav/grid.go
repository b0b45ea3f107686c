package nav

import "github.com/zucenko/helperbot/model"

// BarrierIndex answers "is this cell blocked" in O(1). Built once per
// map and shared read-only between tasks.
type BarrierIndex struct {
	cells map[model.Cell]struct{}
}

func NewBarrierIndex(cells []model.Cell) *BarrierIndex {
	b := &BarrierIndex{cells: make(map[model.Cell]struct{}, len(cells))}
	for _, c := range cells {
		b.cells[c] = struct{}{}
	}
	return b
}

func (b *BarrierIndex) Contains(c model.Cell) bool {
	if b == nil {
		return false
	}
	_, ok := b.cells[c]
	return ok
}

func (b *BarrierIndex) Len() int {
	if b == nil {
		return 0
	}
	return len(b.cells)
}

func InBounds(c model.Cell, gridSize int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < gridSize && c.Y < gridSize
}

// Chebyshev is the heuristic distance for 8-directional movement.
func Chebyshev(a, b model.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
