package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is the lobby record for one game session.
type Room struct {
	ID        uuid.UUID `json:"id"`
	HostID    uuid.UUID `json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
}
