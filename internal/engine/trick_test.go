package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorPtr(c Color) *Color { return &c }

// trickOf builds an ordered trick from cards, attributing play i to a player
// nicknamed "p<i>".
func trickOf(cards ...Card) []PlayedCard {
	plays := make([]PlayedCard, len(cards))
	for i, c := range cards {
		plays[i] = PlayedCard{Player: uuid.New(), Nickname: string(rune('a' + i)), Card: c}
	}
	return plays
}

func TestResolveTrick(t *testing.T) {
	tests := []struct {
		name   string
		cards  []Card
		trump  *Color
		winner int // index into cards
	}{
		{
			name:   "led wizard wins unconditionally",
			cards:  []Card{NewWizard(0), NewWizard(1), NewSuited(ColorRed, 13)},
			trump:  colorPtr(ColorRed),
			winner: 0,
		},
		{
			name:   "mid-trick wizard beats a later trump",
			cards:  []Card{NewSuited(ColorRed, 5), NewWizard(2), NewSuited(ColorBlue, 9)},
			trump:  colorPtr(ColorBlue),
			winner: 1,
		},
		{
			name:   "first of two wizards past the lead wins",
			cards:  []Card{NewSuited(ColorGreen, 3), NewWizard(0), NewWizard(1)},
			trump:  nil,
			winner: 1,
		},
		{
			name:   "all jesters goes to the first played",
			cards:  []Card{NewJester(0), NewJester(1), NewJester(2)},
			trump:  colorPtr(ColorYellow),
			winner: 0,
		},
		{
			name:   "first suited card replaces a leading jester",
			cards:  []Card{NewJester(3), NewSuited(ColorBlue, 2), NewSuited(ColorGreen, 12)},
			trump:  nil,
			winner: 1,
		},
		{
			name:   "higher card of the led color wins",
			cards:  []Card{NewSuited(ColorRed, 5), NewSuited(ColorRed, 11), NewSuited(ColorRed, 8)},
			trump:  nil,
			winner: 1,
		},
		{
			name:   "off-color card never beats the led color without trump",
			cards:  []Card{NewSuited(ColorRed, 2), NewSuited(ColorBlue, 13), NewSuited(ColorGreen, 13)},
			trump:  nil,
			winner: 0,
		},
		{
			name:   "low trump beats a high led card",
			cards:  []Card{NewSuited(ColorRed, 13), NewSuited(ColorYellow, 1), NewSuited(ColorRed, 12)},
			trump:  colorPtr(ColorYellow),
			winner: 1,
		},
		{
			name:   "higher trump beats lower trump",
			cards:  []Card{NewSuited(ColorYellow, 4), NewSuited(ColorYellow, 9), NewSuited(ColorRed, 13)},
			trump:  colorPtr(ColorYellow),
			winner: 1,
		},
		{
			name:   "jester mid-trick is skipped",
			cards:  []Card{NewSuited(ColorGreen, 4), NewJester(1), NewSuited(ColorGreen, 6)},
			trump:  nil,
			winner: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plays := trickOf(tt.cards...)
			win := ResolveTrick(plays, tt.trump)
			assert.Equal(t, plays[tt.winner].Player, win.Player)
			assert.Equal(t, tt.cards[tt.winner], win.Card)
		})
	}
}

func TestResolveTrickWinnerIsAParticipant(t *testing.T) {
	plays := trickOf(NewSuited(ColorBlue, 4), NewJester(0), NewSuited(ColorRed, 9))
	win := ResolveTrick(plays, colorPtr(ColorRed))

	found := false
	for _, p := range plays {
		if p.Player == win.Player {
			found = true
		}
	}
	require.True(t, found)
	// A jester never wins a mixed trick.
	assert.NotEqual(t, KindJester, win.Card.Kind)
}
