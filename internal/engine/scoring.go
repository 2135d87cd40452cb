package engine

import "github.com/google/uuid"

// ScoreRound converts bids and tricks won into round points: hitting the bid
// exactly pays 20 plus 10 per predicted trick, missing costs 10 per trick of
// error. Totals are never clamped and may go negative.
func ScoreRound(bids map[uuid.UUID]int, wins map[uuid.UUID]int) map[uuid.UUID]int {
	points := make(map[uuid.UUID]int, len(bids))
	for id, bid := range bids {
		won := wins[id]
		if bid == won {
			points[id] = 20 + 10*bid
		} else {
			diff := bid - won
			if diff < 0 {
				diff = -diff
			}
			points[id] = -10 * diff
		}
	}
	return points
}

// TotalPoints returns a copy of the cumulative score per player.
func (g *Game) TotalPoints() map[uuid.UUID]int {
	totals := make(map[uuid.UUID]int, len(g.totalPoints))
	for id, pts := range g.totalPoints {
		totals[id] = pts
	}
	return totals
}

// winners returns the nicknames holding the maximum total score, computed as
// a max pass followed by a filter pass so ties are exact.
func (g *Game) winners() []string {
	if len(g.players) == 0 {
		return nil
	}
	max := g.totalPoints[g.players[0].ID]
	for _, p := range g.players[1:] {
		if pts := g.totalPoints[p.ID]; pts > max {
			max = pts
		}
	}
	var names []string
	for _, p := range g.players {
		if g.totalPoints[p.ID] == max {
			names = append(names, p.Nickname)
		}
	}
	return names
}
