package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MartijnWelker/wizard/internal/engine"
)

// OnGameEndFunc is executed once when a session reaches WINNER. It receives
// the room ID, the winning nickname(s), and the final totals.
type OnGameEndFunc func(roomID uuid.UUID, winners []string, totals map[uuid.UUID]int)

// Session owns the authoritative engine state for one room and serializes
// every command onto it. All engine access happens under mu; the engine
// itself performs no locking (see the engine package docs).
type Session struct {
	ID uuid.UUID

	mu   sync.Mutex
	game *engine.Game
	log  *logrus.Entry

	// TurnDuration bounds how long the on-turn player may think before the
	// session injects an auto-play on their behalf. Zero disables the timer.
	TurnDuration time.Duration
	turnTimer    *time.Timer
	timerGen     uint64
	ended        bool

	connected map[uuid.UUID]bool

	// pending queues outbound events while the lock is held. Socket writes
	// can stall, so they happen only after the lock is released (see
	// deliverPending); a slow client must not freeze the whole room.
	pending    []outbound
	pendingEnd func()

	// BroadcastToPlayerFn delivers an event to a single player. Set by the
	// transport before any command is handled.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev Event)
	OnGameEnd           OnGameEndFunc
}

type outbound struct {
	playerID uuid.UUID
	ev       Event
}

// NewSession creates a session for a room. A nil shuffle gets the default
// rand-based Fisher-Yates, seeded from the clock.
func NewSession(roomID uuid.UUID, shuffle engine.ShuffleFunc, logger *logrus.Logger) *Session {
	if shuffle == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		shuffle = func(deck []engine.Card) []engine.Card {
			rng.Shuffle(len(deck), func(i, j int) {
				deck[i], deck[j] = deck[j], deck[i]
			})
			return deck
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Session{
		ID:        roomID,
		game:      engine.NewGame(shuffle),
		log:       logger.WithField("room", roomID),
		connected: map[uuid.UUID]bool{},
	}
}

// Join seats a player and, on success, fans out fresh projections.
func (s *Session) Join(playerID uuid.UUID, nickname string) error {
	s.mu.Lock()

	if err := s.game.Join(playerID, nickname); err != nil {
		s.mu.Unlock()
		s.log.WithError(err).WithField("player", playerID).Warn("join rejected")
		return err
	}
	s.connected[playerID] = true
	s.log.WithFields(logrus.Fields{"player": playerID, "nickname": nickname}).Info("player joined")
	s.broadcastState()
	s.deliverPending()
	return nil
}

// HandleCommand applies one player command to the engine. Validation errors
// go back to the issuing player only; successful commands fan out new
// projections to everyone and reschedule the turn timer.
func (s *Session) HandleCommand(playerID uuid.UUID, cmd Command) {
	s.mu.Lock()

	if err := s.apply(playerID, cmd); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"player":  playerID,
			"command": cmd.Type,
			"state":   s.game.State(),
		}).Info("command rejected")
		s.queueEvent(playerID, Event{
			Type:  EventError,
			Error: &ErrorInfo{Code: string(engine.ErrCode(err)), Reason: err.Error()},
		})
		s.deliverPending()
		return
	}

	s.log.WithFields(logrus.Fields{
		"player":  playerID,
		"command": cmd.Type,
		"state":   s.game.State(),
		"round":   s.game.Round(),
	}).Debug("command applied")
	s.afterCommand()
	s.deliverPending()
}

// apply routes a command to the engine. Caller holds the lock.
func (s *Session) apply(playerID uuid.UUID, cmd Command) error {
	switch cmd.Type {
	case CmdStart:
		return s.game.Start()
	case CmdSetTrump:
		if cmd.Color == nil {
			return &engine.RuleError{Code: engine.CodeMissingTrumpColor, Reason: "no color supplied"}
		}
		return s.game.SetTrumpColor(playerID, *cmd.Color)
	case CmdGuess:
		return s.game.SubmitGuess(playerID, cmd.Count)
	case CmdPlayCard:
		if cmd.Card == nil {
			return &engine.RuleError{Code: engine.CodeCardNotInHand, Reason: "no card supplied"}
		}
		return s.game.PlayCard(playerID, *cmd.Card)
	case CmdAdvance:
		return s.game.AdvanceRound()
	case CmdAutoPlay:
		return s.game.AutoPlay()
	default:
		return &engine.RuleError{Code: engine.CodeWrongState, Reason: fmt.Sprintf("unknown command %q", cmd.Type)}
	}
}

// afterCommand runs the post-mutation bookkeeping: projections out, timers
// rescheduled, terminal callback fired once. Caller holds the lock.
func (s *Session) afterCommand() {
	s.broadcastState()

	if s.game.State() == engine.StateWinner {
		s.finishGame()
		return
	}
	s.scheduleTurnTimer()
}

// finishGame stops the clock and announces the result. Caller holds the lock.
func (s *Session) finishGame() {
	if s.ended {
		return
	}
	s.ended = true
	s.stopTurnTimer()

	view := s.game.View(uuid.Nil)
	totals := s.game.TotalPoints()
	s.log.WithField("winners", view.Winners).Info("game over")

	for _, id := range s.playerIDs() {
		s.queueEvent(id, Event{
			Type: EventGameEnd,
			Payload: map[string]any{
				"winners":     view.Winners,
				"totalPoints": view.TotalPoints,
			},
		})
	}
	if cb := s.OnGameEnd; cb != nil {
		// Runs after the final events, outside the lock.
		s.pendingEnd = func() { cb(s.ID, view.Winners, totals) }
	}
}

// broadcastState queues every connected player's own projection. Caller
// holds the lock.
func (s *Session) broadcastState() {
	for _, id := range s.playerIDs() {
		if !s.connected[id] {
			continue
		}
		view := s.game.View(id)
		s.queueEvent(id, Event{Type: EventState, State: &view})
	}
}

// queueEvent stages one event for delivery after the lock is released.
// Caller holds the lock.
func (s *Session) queueEvent(playerID uuid.UUID, ev Event) {
	s.pending = append(s.pending, outbound{playerID: playerID, ev: ev})
}

// deliverPending releases the lock and hands the staged events to the
// transport, in order. Called exactly once at the end of every locked
// section that may queue events; the transport callback runs unlocked and
// may safely call back into the session.
func (s *Session) deliverPending() {
	out := s.pending
	s.pending = nil
	end := s.pendingEnd
	s.pendingEnd = nil
	fn := s.BroadcastToPlayerFn
	s.mu.Unlock()

	if fn != nil {
		for _, o := range out {
			fn(o.playerID, o.ev)
		}
	} else if len(out) > 0 {
		s.log.Warn("no broadcast function wired, dropping events")
	}
	if end != nil {
		end()
	}
}

// playerIDs snapshots the seated player IDs. Caller holds the lock.
func (s *Session) playerIDs() []uuid.UUID {
	view := s.game.View(uuid.Nil)
	ids := make([]uuid.UUID, len(view.Players))
	for i, p := range view.Players {
		ids[i] = p.ID
	}
	return ids
}

// MarkConnected flips a player's delivery flag, e.g. when their socket
// attaches or drops. The seat itself never goes away mid-game.
func (s *Session) MarkConnected(playerID uuid.UUID, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.connected[playerID]; !known {
		return
	}
	s.connected[playerID] = connected
	s.log.WithFields(logrus.Fields{"player": playerID, "connected": connected}).Info("connection state changed")
}

// IsConnected reports whether events are currently being delivered to the
// player.
func (s *Session) IsConnected(playerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected[playerID]
}

// View returns the projection for one player, for transports that need a
// snapshot outside the command flow (e.g. right after a socket attaches).
func (s *Session) View(playerID uuid.UUID) engine.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View(playerID)
}

// IsRuleError reports whether err is an expected validation failure rather
// than a transport or programming problem.
func IsRuleError(err error) bool {
	var re *engine.RuleError
	return errors.As(err, &re)
}
