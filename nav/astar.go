package nav

import "github.com/zucenko/helperbot/model"

// diagonalCost stays the truncated literal the renderer was tuned
// against, not math.Sqrt2.
const diagonalCost = 1.414

type neighbor struct {
	dx, dy   int
	cost     float64
	diagonal bool
	dir      model.Direction
}

var neighborOffsets = [...]neighbor{
	{dx: 0, dy: -1, cost: 1, dir: model.DirUp},
	{dx: 1, dy: 0, cost: 1, dir: model.DirRight},
	{dx: 0, dy: 1, cost: 1, dir: model.DirDown},
	{dx: -1, dy: 0, cost: 1, dir: model.DirLeft},
	{dx: 1, dy: -1, cost: diagonalCost, diagonal: true, dir: model.DirUpRight},
	{dx: 1, dy: 1, cost: diagonalCost, diagonal: true, dir: model.DirDownRight},
	{dx: -1, dy: 1, cost: diagonalCost, diagonal: true, dir: model.DirDownLeft},
	{dx: -1, dy: -1, cost: diagonalCost, diagonal: true, dir: model.DirUpLeft},
}

type pathNode struct {
	cell   model.Cell
	g      float64
	f      float64
	parent *pathNode
	closed bool
}

// FindPath runs A* from start to goal over a bounded square grid.
// An empty result means "no route"; pathfinding never errors.
// The frontier is a plain slice scanned for the lowest f, with ties
// going to the earliest discovered node, so identical inputs always
// produce the identical path. Fine for grids of a few thousand cells;
// switch to container/heap if maps ever get big.
func FindPath(start, goal model.Cell, barriers *BarrierIndex, gridSize int) []model.Cell {
	if start == goal {
		return []model.Cell{start}
	}
	if !InBounds(start, gridSize) || !InBounds(goal, gridSize) {
		return nil
	}
	if barriers.Contains(goal) {
		return nil
	}

	nodes := make(map[model.Cell]*pathNode, 64)
	startNode := &pathNode{cell: start, g: 0, f: float64(Chebyshev(start, goal))}
	nodes[start] = startNode
	open := []*pathNode{startNode}

	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if open[i].f < open[best].f {
				best = i
			}
		}
		current := open[best]
		open = append(open[:best], open[best+1:]...)
		current.closed = true

		if current.cell == goal {
			return reconstruct(current)
		}

		for _, delta := range neighborOffsets {
			next := model.Cell{X: current.cell.X + delta.dx, Y: current.cell.Y + delta.dy}
			if !InBounds(next, gridSize) || barriers.Contains(next) {
				continue
			}
			if delta.diagonal && cutsCorner(current.cell, delta, barriers) {
				continue
			}
			tentative := current.g + delta.cost
			node, seen := nodes[next]
			if !seen {
				node = &pathNode{
					cell:   next,
					g:      tentative,
					f:      tentative + float64(Chebyshev(next, goal)),
					parent: current,
				}
				nodes[next] = node
				open = append(open, node)
				continue
			}
			if node.closed || tentative >= node.g {
				continue
			}
			// relax in place, keeping the discovery slot in the frontier
			node.g = tentative
			node.f = tentative + float64(Chebyshev(next, goal))
			node.parent = current
		}
	}
	return nil
}

// cutsCorner rejects a diagonal step that would squeeze past a barrier
// touching either of its two cardinal sides.
func cutsCorner(from model.Cell, delta neighbor, barriers *BarrierIndex) bool {
	if barriers.Contains(model.Cell{X: from.X + delta.dx, Y: from.Y}) {
		return true
	}
	return barriers.Contains(model.Cell{X: from.X, Y: from.Y + delta.dy})
}

func reconstruct(end *pathNode) []model.Cell {
	path := make([]model.Cell, 0, 8)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
