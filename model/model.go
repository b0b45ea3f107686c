package model

import "time"

// Cell is one grid coordinate. 0 <= X,Y < grid size, Y grows downward.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Direction string

const (
	DirNone      Direction = "none"
	DirUp        Direction = "up"
	DirDown      Direction = "down"
	DirLeft      Direction = "left"
	DirRight     Direction = "right"
	DirUpLeft    Direction = "upLeft"
	DirUpRight   Direction = "upRight"
	DirDownLeft  Direction = "downLeft"
	DirDownRight Direction = "downRight"
)

// MapInfo is replaced wholesale whenever the world sends a new map.
type MapInfo struct {
	MapID     string
	Barriers  []Cell
	Terminals []Cell
	Spawn     Cell
	GridSize  int
	CellSize  int
}

// TrackedSession is one open interaction session with a player.
type TrackedSession struct {
	ID                string
	Name              string
	Challenge         string
	Terminal          Cell
	OpenedAt          time.Time
	ProactiveOffered  bool
	HelpRequestActive bool
}

// HelpRequest is a user-initiated call for help at a target location.
type HelpRequest struct {
	RequestID string
	Target    Cell
	Name      string
	Challenge string
	Code      string
}
