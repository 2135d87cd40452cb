package engine

// ResolveTrick determines the winning play of a completed trick.
//
// Ranking: a led Wizard wins unconditionally and nothing after it is even
// considered. Otherwise the first Wizard encountered wins and stops the scan.
// Jesters never beat anything, so a trick of nothing but Jesters goes to the
// first one played. Among suited cards, a candidate overtakes the current
// best when the best is a Jester, when it is a strictly higher card of the
// best's color, or when it is trump and the best either is not trump or is a
// lower trump.
func ResolveTrick(plays []PlayedCard, trump *Color) PlayedCard {
	if len(plays) == 0 {
		panic("engine: cannot resolve an empty trick")
	}

	best := plays[0]
	if best.Card.Kind == KindWizard {
		return best
	}

	for _, cand := range plays[1:] {
		if cand.Card.Kind == KindJester {
			continue
		}
		if cand.Card.Kind == KindWizard {
			best = cand
			break
		}
		switch {
		case best.Card.Kind == KindJester:
			best = cand
		case cand.Card.Color == best.Card.Color && cand.Card.Value > best.Card.Value:
			best = cand
		case trump != nil && cand.Card.Color == *trump &&
			(best.Card.Color != *trump || cand.Card.Value > best.Card.Value):
			best = cand
		}
	}
	return best
}
