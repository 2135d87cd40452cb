// Package engine implements the Wizard card game rules.
//
// The package is a pure, deterministic state machine: one Game aggregate per
// session, mutated only through its command methods. There is no I/O and no
// locking here; the surrounding session layer serializes command delivery.
// The only external input is the ShuffleFunc injected at construction.
package engine

import "fmt"

// Color is one of the four card suits.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
)

// NumColors is the number of suits in the deck.
const NumColors = 4

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "RED"
	case ColorGreen:
		return "GREEN"
	case ColorBlue:
		return "BLUE"
	case ColorYellow:
		return "YELLOW"
	}
	return fmt.Sprintf("COLOR(%d)", uint8(c))
}

// Kind distinguishes suited cards from the two special kinds.
type Kind uint8

const (
	KindSuited Kind = iota
	KindWizard
	KindJester
)

func (k Kind) String() string {
	switch k {
	case KindSuited:
		return "SUITED"
	case KindWizard:
		return "WIZARD"
	case KindJester:
		return "JESTER"
	}
	return fmt.Sprintf("KIND(%d)", uint8(k))
}

// Card is an immutable card value. Suited cards carry a Color and a Value in
// 1..13. Wizards and Jesters carry no color; their Value (0..3) only
// disambiguates the four copies of each so every card in the deck is unique.
//
// Card is comparable: two cards are the same exact card iff all three fields
// match, which is the equality hand lookups use.
type Card struct {
	Kind  Kind  `json:"kind"`
	Color Color `json:"color"`
	Value int   `json:"value"`
}

// NewSuited returns a suited card.
func NewSuited(color Color, value int) Card {
	return Card{Kind: KindSuited, Color: color, Value: value}
}

// NewWizard returns the idx-th Wizard (idx in 0..3).
func NewWizard(idx int) Card {
	return Card{Kind: KindWizard, Value: idx}
}

// NewJester returns the idx-th Jester (idx in 0..3).
func NewJester(idx int) Card {
	return Card{Kind: KindJester, Value: idx}
}

// IsSpecial reports whether the card is a Wizard or a Jester.
func (c Card) IsSpecial() bool {
	return c.Kind != KindSuited
}

func (c Card) String() string {
	if c.IsSpecial() {
		return fmt.Sprintf("%s-%d", c.Kind, c.Value)
	}
	return fmt.Sprintf("%s-%d", c.Color, c.Value)
}

// DeckSize is the number of cards in the canonical deck:
// 4 suits x 13 values + 4 Wizards + 4 Jesters.
const DeckSize = 60

// NewDeck returns the canonical 60-card deck in construction order. Callers
// shuffle it; the engine never does.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for value := 1; value <= 13; value++ {
		deck = append(deck,
			NewSuited(ColorBlue, value),
			NewSuited(ColorRed, value),
			NewSuited(ColorGreen, value),
			NewSuited(ColorYellow, value),
		)
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, NewWizard(i), NewJester(i))
	}
	return deck
}

// ShuffleFunc permutes a deck. It is supplied by the environment (the engine
// assumes uniform randomness but does not implement it) and may permute in
// place or return a fresh slice.
type ShuffleFunc func([]Card) []Card

// Draw removes the last card from the deck. It fails with EMPTY_DECK when no
// cards remain.
func Draw(deck []Card) (Card, []Card, error) {
	if len(deck) == 0 {
		return Card{}, deck, ruleErrf(CodeEmptyDeck, "cannot draw from an empty deck")
	}
	return deck[len(deck)-1], deck[:len(deck)-1], nil
}

// indexOfCard locates target in cards by exact (kind, color, value) match.
func indexOfCard(cards []Card, target Card) (int, bool) {
	for i, c := range cards {
		if c == target {
			return i, true
		}
	}
	return -1, false
}

// hasColor reports whether any suited card of the given color is held.
func hasColor(cards []Card, color Color) bool {
	for _, c := range cards {
		if c.Kind == KindSuited && c.Color == color {
			return true
		}
	}
	return false
}
