package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidValidation(t *testing.T) {
	round1 := stackDeck(
		NewSuited(ColorBlue, 5), NewSuited(ColorRed, 7), NewSuited(ColorGreen, 2),
		NewSuited(ColorYellow, 9),
	)
	g, ids := newLobby(t, scriptedShuffle(round1), 3)
	require.NoError(t, g.Start())

	err := g.SubmitGuess(ids[1], -1)
	assert.Equal(t, CodeInvalidBid, ErrCode(err))

	err = g.SubmitGuess(ids[1], 2)
	assert.Equal(t, CodeBidExceedsHand, ErrCode(err), "hand size is 1 in round 1")

	require.NoError(t, g.SubmitGuess(ids[1], 1))

	err = g.SubmitGuess(ids[1], 0)
	assert.Equal(t, CodeInvalidBid, ErrCode(err), "one bid per player per round")
	assert.Equal(t, 1, g.bids[ids[1]], "the recorded bid is untouched")
}

func TestBidOutsideGuessState(t *testing.T) {
	g, ids := newLobby(t, scriptedShuffle(), 3)

	err := g.SubmitGuess(ids[0], 0)
	assert.Equal(t, CodeWrongState, ErrCode(err))
}

func TestHookRuleBlocksOnlyTheForbiddenTotal(t *testing.T) {
	round1 := stackDeck(
		NewSuited(ColorBlue, 5), NewSuited(ColorRed, 7), NewSuited(ColorGreen, 2),
		NewSuited(ColorYellow, 9),
	)
	g, ids := newLobby(t, scriptedShuffle(round1), 3)
	require.NoError(t, g.Start())

	require.NoError(t, g.SubmitGuess(ids[1], 0))
	require.NoError(t, g.SubmitGuess(ids[2], 1))

	// Existing bids already sum to the trick count, so the last bidder may
	// bid anything except 0.
	err := g.SubmitGuess(ids[0], 0)
	assert.Equal(t, CodeHookViolation, ErrCode(err))
	require.NoError(t, g.SubmitGuess(ids[0], 1))
	assert.Equal(t, StatePlay, g.State())
	assert.Equal(t, 2, g.BidSum())
}
