package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MartijnWelker/wizard/internal/engine"
)

// scheduleTurnTimer arms a one-shot timer for the current turn. When it
// fires, the session plays the forced move for whoever is still on turn.
// The timer generation guards against a stale fire racing a real command.
// Caller holds the lock.
func (s *Session) scheduleTurnTimer() {
	s.stopTurnTimer()
	if s.TurnDuration <= 0 || s.ended {
		return
	}
	switch s.game.State() {
	case engine.StateGuess, engine.StateAskTrump, engine.StatePlay, engine.StateBattleDone, engine.StateRoundDone:
	default:
		return
	}

	s.timerGen++
	gen := s.timerGen
	s.turnTimer = time.AfterFunc(s.TurnDuration, func() {
		s.handleTurnTimeout(gen)
	})
}

// stopTurnTimer cancels any pending timer. Caller holds the lock.
func (s *Session) stopTurnTimer() {
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
}

// handleTurnTimeout forces the pending decision after a player ran out the
// clock. A command handled between the fire and the lock acquisition bumps
// the generation, which makes this a no-op.
func (s *Session) handleTurnTimeout(gen uint64) {
	s.mu.Lock()

	if gen != s.timerGen || s.ended {
		s.mu.Unlock()
		return
	}

	s.log.WithFields(logrus.Fields{
		"state": s.game.State(),
		"round": s.game.Round(),
	}).Info("turn timer expired, forcing move")

	if err := s.game.AutoPlay(); err != nil {
		s.mu.Unlock()
		s.log.WithError(err).Error("forced move failed")
		return
	}
	s.afterCommand()
	s.deliverPending()
}
