package engine

import "github.com/google/uuid"

// AutoPlay synthesizes a legal action for whichever player currently holds
// the turn (the dealer, in ASK_TRUMP) and routes it through the ordinary
// command validators. The transport layer injects this when a player takes
// too long; the engine treats it like any other command.
func (g *Game) AutoPlay() error {
	switch g.state {
	case StateAskTrump:
		return g.SetTrumpColor(g.Dealer(), ColorRed)

	case StateBattleDone, StateRoundDone:
		return g.AdvanceRound()

	case StateGuess:
		id, count := g.autoGuess()
		return g.SubmitGuess(id, count)

	case StatePlay:
		p := g.currentPlayer()
		return g.PlayCard(p.ID, g.autoCard(p))

	default:
		return ruleErrf(CodeWrongState, "nothing to auto-play in %s state", g.state)
	}
}

// autoGuess picks a pending bidder and a bid the hook rule will accept:
// the round number, stepped down by one when that total is forbidden.
func (g *Game) autoGuess() (uuid.UUID, int) {
	p := g.currentPlayer()
	if _, done := g.bids[p.ID]; done {
		// Bids may arrive out of seat order; fall back to any pending bidder.
		for _, cand := range g.players {
			if _, ok := g.bids[cand.ID]; !ok {
				p = cand
				break
			}
		}
	}

	count := g.round
	if len(g.bids) == len(g.players)-1 && g.BidSum()+count == g.round {
		count--
	}
	return p.ID, count
}

// autoCard follows the original auto-pick order: lead with the first card,
// otherwise prefer a special, then a card of the led color, then anything.
func (g *Game) autoCard(p *Player) Card {
	if len(g.played) == 0 {
		return p.Hand[0]
	}
	led := firstNonSpecial(g.played)
	for _, c := range p.Hand {
		if c.IsSpecial() {
			return c
		}
		if led == nil || c.Color == led.Card.Color {
			return c
		}
	}
	return p.Hand[0]
}
