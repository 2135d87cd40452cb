package engine

import "github.com/google/uuid"

// PlayerSummary is what every player may see about any seat: identity,
// nickname, and how many cards are left — never the cards themselves.
type PlayerSummary struct {
	ID        uuid.UUID `json:"id"`
	Nickname  string    `json:"nickname"`
	CardsLeft int       `json:"cardsLeft"`
}

// NicknamePoints attributes a point or bid count to a nickname for display.
type NicknamePoints struct {
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
}

// View is the projection of the game handed to one player: their own hand in
// full detail, everyone else reduced to seat metadata and counts.
type View struct {
	State    State  `json:"gameState"`
	Round    int    `json:"round"`
	Nickname string `json:"nickname"`

	Hand    []Card          `json:"hand"`
	Players []PlayerSummary `json:"players"`
	Turn    uuid.UUID       `json:"turn"`
	Dealer  uuid.UUID       `json:"dealer"`

	Trump       *Trump       `json:"trump,omitempty"`
	PlayedCards []PlayedCard `json:"playedCards"`
	LastTrick   *PlayedCard  `json:"lastTrick,omitempty"`

	Guesses        []NicknamePoints   `json:"guesses"`
	WinsThisRound  []NicknamePoints   `json:"winsThisRound"`
	PointsPerRound [][]NicknamePoints `json:"pointsPerRound"`
	TotalPoints    []NicknamePoints   `json:"totalPoints"`

	// Winners is populated only in the WINNER state.
	Winners []string `json:"winners,omitempty"`
}

// View projects the current state for the given player. It never exposes
// another player's hand.
func (g *Game) View(id uuid.UUID) View {
	v := View{
		State:       g.state,
		Round:       g.round,
		PlayedCards: append([]PlayedCard(nil), g.played...),
	}

	// The view is a snapshot, so pointer fields get copies of their own:
	// the live trump mutates when the dealer picks a color in ASK_TRUMP.
	if g.trump != nil {
		trump := *g.trump
		if trump.Color != nil {
			color := *trump.Color
			trump.Color = &color
		}
		v.Trump = &trump
	}
	if g.lastTrick != nil {
		last := *g.lastTrick
		v.LastTrick = &last
	}

	if p := g.playerByID(id); p != nil {
		v.Nickname = p.Nickname
		v.Hand = append([]Card(nil), p.Hand...)
	}

	v.Players = make([]PlayerSummary, len(g.players))
	for i, p := range g.players {
		v.Players[i] = PlayerSummary{ID: p.ID, Nickname: p.Nickname, CardsLeft: len(p.Hand)}
	}

	if len(g.players) > 0 && g.state != StateLobby {
		v.Turn = g.players[g.turnIdx].ID
		v.Dealer = g.players[g.dealerIdx].ID
	}

	for _, p := range g.players {
		if bid, ok := g.bids[p.ID]; ok {
			v.Guesses = append(v.Guesses, NicknamePoints{Nickname: p.Nickname, Points: bid})
		}
		if wins, ok := g.wins[p.ID]; ok {
			v.WinsThisRound = append(v.WinsThisRound, NicknamePoints{Nickname: p.Nickname, Points: wins})
		}
		v.TotalPoints = append(v.TotalPoints, NicknamePoints{Nickname: p.Nickname, Points: g.totalPoints[p.ID]})
	}

	for _, roundPoints := range g.pointsPerRound {
		row := make([]NicknamePoints, 0, len(roundPoints))
		for _, p := range g.players {
			if pts, ok := roundPoints[p.ID]; ok {
				row = append(row, NicknamePoints{Nickname: p.Nickname, Points: pts})
			}
		}
		v.PointsPerRound = append(v.PointsPerRound, row)
	}

	if g.state == StateWinner {
		v.Winners = g.winners()
	}
	return v
}
