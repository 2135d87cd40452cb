package engine

import (
	"strings"

	"github.com/google/uuid"
)

// Join seats a new player. Only valid in LOBBY; the seat order is the join
// order and is frozen when the game starts.
func (g *Game) Join(id uuid.UUID, nickname string) error {
	if g.state != StateLobby {
		return ruleErrf(CodeGameAlreadyStarted, "game has already started")
	}
	if len(g.players) == MaxPlayers {
		return ruleErrf(CodeRoomFull, "a maximum of %d players is allowed", MaxPlayers)
	}
	if g.seatOf(id) >= 0 {
		return ruleErrf(CodeGameAlreadyStarted, "player %s already joined", id)
	}
	g.players = append(g.players, &Player{ID: id, Nickname: nickname})
	return nil
}

// Start closes the lobby and begins round 1.
func (g *Game) Start() error {
	if g.state != StateLobby {
		return ruleErrf(CodeGameAlreadyStarted, "game has already started")
	}
	if len(g.players) < MinPlayers {
		return ruleErrf(CodeNotEnoughPlayers, "a minimum of %d players is required", MinPlayers)
	}
	return g.transition(StateGuess)
}

// SetTrumpColor records the dealer's trump choice after a Wizard was turned
// up, then resumes bidding. Only the dealer may choose.
func (g *Game) SetTrumpColor(id uuid.UUID, color Color) error {
	if g.state != StateAskTrump {
		return ruleErrf(CodeWrongState, "game is not in ASK_TRUMP state")
	}
	if g.trump == nil {
		return ruleErrf(CodeNoActiveTrump, "tried to set trump color but there is no trump")
	}
	if g.players[g.dealerIdx].ID != id {
		return ruleErrf(CodeNotYourTurn, "only the dealer chooses the trump color")
	}
	c := color
	g.trump.Color = &c
	return g.transition(StateGuess)
}

// SubmitGuess records a player's bid for the round. When the final seat bids,
// play begins.
func (g *Game) SubmitGuess(id uuid.UUID, count int) error {
	if g.state != StateGuess {
		return ruleErrf(CodeWrongState, "cannot submit a guess while in %s state", g.state)
	}
	p := g.playerByID(id)
	if p == nil {
		return ruleErrf(CodeNotYourTurn, "player %s is not seated in this game", id)
	}
	if err := g.validateBid(p, count); err != nil {
		return err
	}

	g.bids[id] = count
	g.turnIdx = g.nextSeat(g.turnIdx)

	if len(g.bids) == len(g.players) {
		return g.transition(StatePlay)
	}
	return nil
}

// PlayCard plays the named card from the acting player's hand into the
// current trick. The trick resolves as soon as every seat has played.
func (g *Game) PlayCard(id uuid.UUID, card Card) error {
	if g.state != StatePlay {
		return ruleErrf(CodeWrongState, "cannot play a card while in %s state", g.state)
	}
	cur := g.currentPlayer()
	if cur.ID != id {
		return ruleErrf(CodeNotYourTurn, "it is %s's turn", cur.Nickname)
	}

	idx, ok := indexOfCard(cur.Hand, card)
	if !ok {
		return ruleErrf(CodeCardNotInHand, "card not in hand: got %s, but hand has %s", card, formatHand(cur.Hand))
	}

	if led := firstNonSpecial(g.played); led != nil && !card.IsSpecial() && card.Color != led.Card.Color {
		if hasColor(cur.Hand, led.Card.Color) {
			return ruleErrf(CodeSuitViolation, "must follow %s (the led color) or play a special card", led.Card.Color)
		}
	}

	cur.Hand = append(cur.Hand[:idx], cur.Hand[idx+1:]...)
	g.played = append(g.played, PlayedCard{Player: id, Nickname: cur.Nickname, Card: card})

	// The turn pointer advances one seat; if this completed the trick,
	// BATTLE_DONE's onEnter moves it to the trick winner instead.
	g.turnIdx = g.nextSeat(g.turnIdx)

	if len(g.played) == len(g.players) {
		return g.transition(StateBattleDone)
	}
	return nil
}

// AdvanceRound moves on from a completed trick or round: BATTLE_DONE starts
// the next trick, ROUND_DONE either deals the next round or ends the game
// when the deck cannot cover another deal.
func (g *Game) AdvanceRound() error {
	switch g.state {
	case StateBattleDone:
		return g.transition(StatePlay)
	case StateRoundDone:
		// round was already advanced on entering ROUND_DONE, so it names the
		// round about to be dealt.
		if g.round*len(g.players) > DeckSize {
			return g.transition(StateWinner)
		}
		return g.transition(StateGuess)
	default:
		return ruleErrf(CodeRoundNotComplete, "round is not done yet")
	}
}

func formatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
