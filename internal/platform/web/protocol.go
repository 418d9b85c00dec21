package web

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Message types on the websocket.
const (
	TypeKey   = "key"   // client: {"type":"key","key":"ArrowUp"}
	TypeReset = "reset" // client: {"type":"reset"}
	TypeFrame = "frame" // server: {"type":"frame","frame":{...}}
	TypeScore = "score" // server: {"type":"score","score":n}
	TypeFinal = "final" // server: {"type":"final","score":n}
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type  string          `json:"type"`
	Frame *snake.Snapshot `json:"frame,omitempty"`
	Score *int            `json:"score,omitempty"`
}

// browserKeys maps KeyboardEvent.key names to actions.
var browserKeys = map[string]core.Action{
	"ArrowUp":    core.ActionUp,
	"ArrowDown":  core.ActionDown,
	"ArrowLeft":  core.ActionLeft,
	"ArrowRight": core.ActionRight,
}

// ActionForKey translates a browser key name. Unknown keys map to ActionNone.
func ActionForKey(key string) core.Action {
	return browserKeys[key]
}

func frameMessage(snap snake.Snapshot) ServerMessage {
	return ServerMessage{Type: TypeFrame, Frame: &snap}
}

func scoreMessage(kind string, score int) ServerMessage {
	return ServerMessage{Type: kind, Score: &score}
}
