package engine

import "fmt"

// validateBid checks a proposed bid against the round's constraints without
// mutating anything. Rules, in order: non-negative, no re-bidding, at most
// the hand size, and the hook rule for the last bidder — the bids may never
// sum to exactly the number of tricks in the round, so somebody always misses.
func (g *Game) validateBid(p *Player, count int) error {
	if count < 0 {
		return ruleErrf(CodeInvalidBid, "guess has to be 0 or higher")
	}
	if _, dup := g.bids[p.ID]; dup {
		return ruleErrf(CodeInvalidBid, "%s already submitted a guess this round", p.Nickname)
	}
	if count > len(p.Hand) {
		return ruleErrf(CodeBidExceedsHand, "cannot guess more than you have cards (%d)", len(p.Hand))
	}

	if len(g.bids) == len(g.players)-1 {
		// The player set is frozen after LOBBY and bidding happens before any
		// card is played, so the last bidder's hand size must equal the round
		// number. A mismatch means the aggregate is corrupted.
		if len(p.Hand) != g.round {
			panic(fmt.Sprintf("engine: last bidder holds %d cards in round %d", len(p.Hand), g.round))
		}
		sum := count
		for _, b := range g.bids {
			sum += b
		}
		if sum == len(p.Hand) {
			return ruleErrf(CodeHookViolation, "last player cannot make the bids sum to the trick count (%d)", len(p.Hand))
		}
	}
	return nil
}

// BidSum returns the total of the bids submitted so far this round.
func (g *Game) BidSum() int {
	sum := 0
	for _, b := range g.bids {
		sum += b
	}
	return sum
}
