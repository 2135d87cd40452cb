package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is a connected (or temporarily disconnected) participant as the
// transport layer sees them. The engine only knows the ID and nickname; the
// connection handle never leaves this layer.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Nickname  string          `json:"nickname"`
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}

// NewPlayer allocates an identity for a joining nickname.
func NewPlayer(nickname string) *Player {
	return &Player{
		ID:        uuid.New(),
		Nickname:  nickname,
		Connected: false,
	}
}
