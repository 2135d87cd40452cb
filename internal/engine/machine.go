package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// State is a phase of the game lifecycle.
type State string

const (
	StateLobby      State = "LOBBY"
	StateGuess      State = "GUESS"
	StateAskTrump   State = "ASK_TRUMP"
	StatePlay       State = "PLAY"
	StateBattleDone State = "BATTLE_DONE"
	StateRoundDone  State = "ROUND_DONE"
	StateWinner     State = "WINNER"

	// stateNone signals "no follow-up transition" from an onEnter hook.
	stateNone State = ""
)

// stateSpec is one row of the static transition table. onEnter may request a
// follow-up transition by returning a state, which the dispatcher applies in
// a loop; onExit validates leaving and may veto with a rule error.
type stateSpec struct {
	next    []State
	onEnter func(g *Game, prev State) (State, error)
	onExit  func(g *Game, next State) error
}

var stateTable = map[State]stateSpec{
	StateLobby: {
		next:   []State{StateGuess},
		onExit: exitLobby,
	},
	StateGuess: {
		next:    []State{StateAskTrump, StatePlay},
		onEnter: enterGuess,
	},
	StateAskTrump: {
		next:   []State{StateGuess},
		onExit: exitAskTrump,
	},
	StatePlay: {
		next:    []State{StateBattleDone},
		onEnter: enterPlay,
	},
	StateBattleDone: {
		next:    []State{StatePlay, StateRoundDone},
		onEnter: enterBattleDone,
	},
	StateRoundDone: {
		next:    []State{StateGuess, StateWinner},
		onEnter: enterRoundDone,
	},
	StateWinner: {
		next: nil, // terminal
	},
}

// transition moves the machine to next, running onExit and onEnter hooks,
// and keeps going while an onEnter requests a further transition. Attempting
// a transition absent from the table is a programming error, not a
// user-facing failure, and panics.
func (g *Game) transition(next State) error {
	for next != stateNone {
		cur, ok := stateTable[g.state]
		if !ok {
			panic(fmt.Sprintf("engine: unknown state %q", g.state))
		}
		if !allowedNext(cur.next, next) {
			panic(fmt.Sprintf("engine: cannot transition from %s to %s", g.state, next))
		}
		if cur.onExit != nil {
			if err := cur.onExit(g, next); err != nil {
				return err
			}
		}
		prev := g.state
		g.state = next

		spec := stateTable[next]
		next = stateNone
		if spec.onEnter != nil {
			follow, err := spec.onEnter(g, prev)
			if err != nil {
				return err
			}
			next = follow
		}
	}
	return nil
}

func allowedNext(allowed []State, s State) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// exitLobby freezes the player set: the first joiner becomes the dealer and
// the seat after them holds the first turn.
func exitLobby(g *Game, _ State) error {
	g.dealerIdx = 0
	g.turnIdx = g.nextSeat(g.dealerIdx)
	return nil
}

// enterGuess resets the per-round trick bookkeeping and, unless we are
// re-entering from ASK_TRUMP (dealing already happened), shuffles a fresh
// deck, deals round cards to every seat starting left of the dealer, and
// turns up the trump card.
func enterGuess(g *Game, prev State) (State, error) {
	g.wins = map[uuid.UUID]int{}
	g.played = nil
	g.lastTrick = nil

	if prev == StateAskTrump {
		return stateNone, nil
	}

	g.bids = map[uuid.UUID]int{}
	g.deck = g.shuffle(NewDeck())
	g.turnIdx = g.nextSeat(g.dealerIdx)

	for i := 0; i < g.round; i++ {
		for s := 0; s < len(g.players); s++ {
			// Always deal starting with the seat next to the dealer.
			p := g.players[(g.dealerIdx+1+s)%len(g.players)]
			card, rest, err := Draw(g.deck)
			if err != nil {
				// Round admission guarantees round*players <= DeckSize.
				panic(fmt.Sprintf("engine: deck exhausted dealing round %d to %d players", g.round, len(g.players)))
			}
			g.deck = rest
			p.Hand = append(p.Hand, card)
		}
	}

	if len(g.deck) == 0 {
		// All cards dealt out: the last round has no trump.
		g.trump = nil
		return stateNone, nil
	}

	card, rest, _ := Draw(g.deck)
	g.deck = rest
	g.trump = &Trump{Card: card}
	switch card.Kind {
	case KindSuited:
		color := card.Color
		g.trump.Color = &color
	case KindWizard:
		// The dealer chooses the trump color before bidding proceeds.
		return StateAskTrump, nil
	case KindJester:
		// Turned down: no trump this round, Color stays nil.
	}
	return stateNone, nil
}

// exitAskTrump refuses to resume bidding until the dealer has chosen a color.
func exitAskTrump(g *Game, _ State) error {
	if g.trump == nil || g.trump.Color == nil {
		return ruleErrf(CodeMissingTrumpColor, "cannot leave ASK_TRUMP before a trump color is set")
	}
	return nil
}

// enterPlay starts a fresh trick.
func enterPlay(g *Game, _ State) (State, error) {
	g.played = nil
	g.lastTrick = nil
	return stateNone, nil
}

// enterBattleDone resolves the completed trick, credits the winner, and moves
// the turn pointer to their seat so they lead the next trick. When every hand
// is empty the round is over.
func enterBattleDone(g *Game, _ State) (State, error) {
	win := ResolveTrick(g.played, g.trumpColor())
	g.wins[win.Player]++
	g.turnIdx = g.seatOf(win.Player)
	g.lastTrick = &win

	for _, p := range g.players {
		if len(p.Hand) > 0 {
			return stateNone, nil
		}
	}
	return StateRoundDone, nil
}

// enterRoundDone scores the round into the history and running totals, then
// advances the round counter and rotates the dealer one seat.
func enterRoundDone(g *Game, _ State) (State, error) {
	points := ScoreRound(g.bids, g.wins)
	g.pointsPerRound = append(g.pointsPerRound, points)
	for id, pts := range points {
		g.totalPoints[id] += pts
	}

	g.round++
	g.dealerIdx = g.nextSeat(g.dealerIdx)
	return stateNone, nil
}
