package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScoreRound(t *testing.T) {
	exact0 := uuid.New()
	exact3 := uuid.New()
	under := uuid.New()
	over := uuid.New()

	bids := map[uuid.UUID]int{exact0: 0, exact3: 3, under: 2, over: 1}
	wins := map[uuid.UUID]int{exact3: 3, under: 0, over: 4}

	points := ScoreRound(bids, wins)

	assert.Equal(t, 20, points[exact0], "exact zero pays the base 20")
	assert.Equal(t, 50, points[exact3], "20 plus 10 per predicted trick")
	assert.Equal(t, -20, points[under], "10 per trick short")
	assert.Equal(t, -30, points[over], "10 per trick over")
}

func TestScoreRoundNeverClamps(t *testing.T) {
	p := uuid.New()
	points := ScoreRound(map[uuid.UUID]int{p: 0}, map[uuid.UUID]int{p: 13})
	assert.Equal(t, -130, points[p])
}

func TestWinnersMaxThenFilter(t *testing.T) {
	g := NewGame(func(d []Card) []Card { return d })
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	g.players = []*Player{
		{ID: a, Nickname: "ada"},
		{ID: b, Nickname: "ben"},
		{ID: c, Nickname: "cai"},
	}
	g.totalPoints = map[uuid.UUID]int{a: 40, b: 70, c: 70}

	assert.Equal(t, []string{"ben", "cai"}, g.winners(),
		"only holders of the true maximum are winners, regardless of order seen")
}
