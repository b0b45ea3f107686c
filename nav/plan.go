package nav

import "github.com/zucenko/helperbot/model"

// Directions maps each consecutive pair of path cells to one of the 8
// named directions. A delta that is not a unit offset means the caller
// handed us a broken path; it maps to DirNone instead of blowing up.
func Directions(path []model.Cell) []model.Direction {
	if len(path) < 2 {
		return []model.Direction{}
	}
	dirs := make([]model.Direction, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		dx := sign(path[i].X - path[i-1].X)
		dy := sign(path[i].Y - path[i-1].Y)
		dirs = append(dirs, directionFor(dx, dy))
	}
	return dirs
}

func directionFor(dx, dy int) model.Direction {
	for _, delta := range neighborOffsets {
		if delta.dx == dx && delta.dy == dy {
			return delta.dir
		}
	}
	return model.DirNone
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Pixels scales path cells to pixel coordinates for the renderer.
func Pixels(path []model.Cell, cellSize int) []model.Point {
	points := make([]model.Point, 0, len(path))
	for _, c := range path {
		points = append(points, model.Point{X: c.X * cellSize, Y: c.Y * cellSize})
	}
	return points
}

// Truncate caps a path at maxSteps moves. The truncated endpoint is the
// only position a walk may commit; the original goal is forgotten.
func Truncate(path []model.Cell, maxSteps int) []model.Cell {
	if maxSteps < 0 || len(path) <= maxSteps+1 {
		return path
	}
	return path[:maxSteps+1]
}

// AdjacentCell picks the approach point next to a (typically blocked)
// target: the first in-bounds, non-barrier neighbor in fixed offset
// order. ok is false when the target is walled in.
func AdjacentCell(target model.Cell, barriers *BarrierIndex, gridSize int) (model.Cell, bool) {
	for _, delta := range neighborOffsets {
		c := model.Cell{X: target.X + delta.dx, Y: target.Y + delta.dy}
		if !InBounds(c, gridSize) || barriers.Contains(c) {
			continue
		}
		return c, true
	}
	return model.Cell{}, false
}
