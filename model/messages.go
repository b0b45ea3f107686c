package model

// Wire messages exchanged with the world server, JSON encoded, one
// object per websocket message, discriminated by the "type" field.

const (
	TypeMap           = "map"
	TypeSessionOpened = "session_opened"
	TypeSessionClosed = "session_closed"
	TypeHelpRequest   = "help_request"
	TypeMove          = "move"
	TypeHint          = "hint"
	TypeNudge         = "nudge"
)

type MapEvent struct {
	MapID     string   `json:"mapId"`
	Barriers  [][2]int `json:"barriers"`
	Terminals [][2]int `json:"terminals"`
	Spawn     *[2]int  `json:"spawn"`
	GridSize  int      `json:"gridSize"`
	CellSize  int      `json:"cellSize"`
}

type SessionOpenedEvent struct {
	SessionID string  `json:"sessionId"`
	Name      string  `json:"name"`
	Challenge string  `json:"challenge"`
	Terminal  *[2]int `json:"terminal"`
}

type SessionClosedEvent struct {
	SessionID string `json:"sessionId"`
}

type HelpRequestEvent struct {
	RequestID string `json:"requestId"`
	X         *int   `json:"x"`
	Y         *int   `json:"y"`
	Name      string `json:"name"`
	Challenge string `json:"challenge"`
	Code      string `json:"code"`
}

// Inbound carries exactly one decoded event.
type Inbound struct {
	Map           *MapEvent
	SessionOpened *SessionOpenedEvent
	SessionClosed *SessionClosedEvent
	HelpRequest   *HelpRequestEvent
}

// Point is a pixel coordinate on the rendered map.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MoveMessage struct {
	Type       string      `json:"type"`
	Points     []Point     `json:"points"`
	Directions []Direction `json:"directions"`
}

// ResponseMessage delivers generated text back to the world: a hint for
// an explicit help request, or a nudge toward a tracked session.
type ResponseMessage struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	RequestID string `json:"requestId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Text      string `json:"text"`
}
