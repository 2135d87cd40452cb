package engine

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// MinPlayers and MaxPlayers bound the lobby size. The set is frozen once
	// the game starts.
	MinPlayers = 3
	MaxPlayers = 6
)

// Player is one seat: identity, nickname, and the cards currently held.
// Seat order is join order and never changes after the lobby closes.
type Player struct {
	ID       uuid.UUID
	Nickname string
	Hand     []Card
}

// PlayedCard is a card on the table in the current trick, attributed to the
// seat that played it. Order within Game.played is play order.
type PlayedCard struct {
	Player   uuid.UUID `json:"playerId"`
	Nickname string    `json:"nickname"`
	Card     Card      `json:"card"`
}

// Trump is the card turned up after dealing plus the effective trump color.
// Color stays nil for a Jester trump (the round has no trump) and until the
// dealer chooses one for a Wizard trump.
type Trump struct {
	Card  Card   `json:"card"`
	Color *Color `json:"color,omitempty"`
}

// Game is the authoritative state of one Wizard session. It must only be
// mutated through its command methods, one command at a time. A command that
// returns an error has not changed anything.
type Game struct {
	state     State
	players   []*Player
	deck      []Card
	round     int
	turnIdx   int
	dealerIdx int

	trump  *Trump
	bids   map[uuid.UUID]int
	played []PlayedCard

	wins           map[uuid.UUID]int
	pointsPerRound []map[uuid.UUID]int
	totalPoints    map[uuid.UUID]int

	// lastTrick is the winning play of the most recently resolved trick,
	// cleared when the next trick starts.
	lastTrick *PlayedCard

	shuffle ShuffleFunc
}

// NewGame returns a fresh game in LOBBY. The shuffle function is the only
// source of randomness the engine will ever consult.
func NewGame(shuffle ShuffleFunc) *Game {
	if shuffle == nil {
		panic("engine: NewGame requires a shuffle function")
	}
	return &Game{
		state:       StateLobby,
		round:       1,
		bids:        map[uuid.UUID]int{},
		wins:        map[uuid.UUID]int{},
		totalPoints: map[uuid.UUID]int{},
		shuffle:     shuffle,
	}
}

// State returns the current state-machine state.
func (g *Game) State() State { return g.state }

// Round returns the 1-based round number. It equals the hand size dealt this
// round while the round is in progress.
func (g *Game) Round() int { return g.round }

// PlayerCount returns the number of seated players.
func (g *Game) PlayerCount() int { return len(g.players) }

// CurrentTurn returns the ID of the player the turn pointer indicates.
func (g *Game) CurrentTurn() uuid.UUID {
	return g.players[g.turnIdx].ID
}

// Dealer returns the ID of the current dealer.
func (g *Game) Dealer() uuid.UUID {
	return g.players[g.dealerIdx].ID
}

// seatOf returns the seat index of the given player, or -1 if not seated.
func (g *Game) seatOf(id uuid.UUID) int {
	for i, p := range g.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextSeat is the circular successor of a seat index.
func (g *Game) nextSeat(from int) int {
	return (from + 1) % len(g.players)
}

// playerByID returns the seated player with the given ID, or nil.
func (g *Game) playerByID(id uuid.UUID) *Player {
	if i := g.seatOf(id); i >= 0 {
		return g.players[i]
	}
	return nil
}

// currentPlayer returns the player the turn pointer indicates. The pointer
// always indexes a live seat once the game has started; anything else is a
// corrupted aggregate.
func (g *Game) currentPlayer() *Player {
	if g.turnIdx < 0 || g.turnIdx >= len(g.players) {
		panic(fmt.Sprintf("engine: turn index %d out of range for %d players", g.turnIdx, len(g.players)))
	}
	return g.players[g.turnIdx]
}

// trumpColor returns the effective trump color for trick resolution, or nil
// when the round has no trump.
func (g *Game) trumpColor() *Color {
	if g.trump == nil {
		return nil
	}
	return g.trump.Color
}

// firstNonSpecial returns the first suited card played this trick, which is
// the card that fixes the color to follow. Nil while only specials (or
// nothing) have been played.
func firstNonSpecial(plays []PlayedCard) *PlayedCard {
	for i := range plays {
		if !plays[i].Card.IsSpecial() {
			return &plays[i]
		}
	}
	return nil
}
