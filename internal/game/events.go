package game

import (
	"github.com/MartijnWelker/wizard/internal/engine"
)

// EventType tags an outbound message to a client.
type EventType string

const (
	// EventState carries a player's private projection of the game. Sent to
	// every connected player after each successful command.
	EventState EventType = "state"
	// EventError reports a rejected command to the player who issued it.
	EventError EventType = "error"
	// EventGameEnd announces the terminal result to everyone.
	EventGameEnd EventType = "game_end"
)

// ErrorInfo is the client-facing form of a rule violation.
type ErrorInfo struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Event is the envelope broadcast over the transport. Exactly one of the
// optional payloads is set, according to Type.
type Event struct {
	Type    EventType      `json:"type"`
	State   *engine.View   `json:"state,omitempty"`
	Error   *ErrorInfo     `json:"error,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// CommandType names a player command. The engine's command surface, one to
// one.
type CommandType string

const (
	CmdStart    CommandType = "start"
	CmdSetTrump CommandType = "set_trump_color"
	CmdGuess    CommandType = "submit_guess"
	CmdPlayCard CommandType = "play_card"
	CmdAdvance  CommandType = "advance_round"
	CmdAutoPlay CommandType = "auto_play"
)

// Command is a decoded client message. Fields beyond Type are only read for
// the command types that need them.
type Command struct {
	Type  CommandType   `json:"type"`
	Color *engine.Color `json:"color,omitempty"`
	Count int           `json:"count"`
	Card  *engine.Card  `json:"card,omitempty"`
}
