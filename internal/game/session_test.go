package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartijnWelker/wizard/internal/engine"
)

// recorder captures every event a session fans out, keyed by recipient.
// The turn timer delivers from its own goroutine, hence the mutex.
type recorder struct {
	mu     sync.Mutex
	events map[uuid.UUID][]Event
}

func newRecorder() *recorder {
	return &recorder{events: map[uuid.UUID][]Event{}}
}

func (r *recorder) fn(playerID uuid.UUID, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[playerID] = append(r.events[playerID], ev)
}

func (r *recorder) count(playerID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events[playerID])
}

func (r *recorder) last(playerID uuid.UUID) Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.events[playerID]
	if len(evs) == 0 {
		return Event{}
	}
	return evs[len(evs)-1]
}

func (r *recorder) ofType(playerID uuid.UUID, t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events[playerID] {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func seededShuffle(seed int64) engine.ShuffleFunc {
	rng := rand.New(rand.NewSource(seed))
	return func(deck []engine.Card) []engine.Card {
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		return deck
	}
}

// newSessionWithPlayers seats n players and returns the session, the
// recorder behind its broadcast hook, and the player IDs in seat order.
func newSessionWithPlayers(t *testing.T, n int, shuffle engine.ShuffleFunc) (*Session, *recorder, []uuid.UUID) {
	t.Helper()

	s := NewSession(uuid.New(), shuffle, quietLogger())
	rec := newRecorder()
	s.BroadcastToPlayerFn = rec.fn

	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, s.Join(ids[i], nickname(i)))
	}
	return s, rec, ids
}

func nickname(i int) string {
	return string(rune('a' + i))
}

func TestJoinBroadcastsState(t *testing.T) {
	_, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(1))

	// The first player has seen three state events, one per join.
	states := rec.ofType(ids[0], EventState)
	require.Len(t, states, 3)
	assert.Equal(t, engine.StateLobby, states[2].State.State)
	assert.Len(t, states[2].State.Players, 3)

	// The last joiner only saw the state from their own join.
	require.Len(t, rec.ofType(ids[2], EventState), 1)
}

func TestRejectedCommandGoesToIssuerOnly(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(2))

	before := rec.count(ids[1])
	s.HandleCommand(ids[0], Command{Type: CmdGuess, Count: 1})

	last := rec.last(ids[0])
	require.Equal(t, EventError, last.Type)
	require.NotNil(t, last.Error)
	assert.Equal(t, string(engine.CodeWrongState), last.Error.Code)

	// Nobody else heard about it.
	assert.Equal(t, before, rec.count(ids[1]))
}

func TestCommandRouting(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(3))

	s.HandleCommand(ids[0], Command{Type: CmdStart})
	require.Equal(t, EventState, rec.last(ids[0]).Type)
	assert.Equal(t, engine.StateGuess, rec.last(ids[0]).State.State)

	// Each player's projection hides the other hands.
	for _, id := range ids {
		view := rec.last(id).State
		require.Len(t, view.Hand, 1)
		for _, p := range view.Players {
			assert.Equal(t, 1, p.CardsLeft)
		}
	}
}

func TestMalformedCommands(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(4))
	s.HandleCommand(ids[0], Command{Type: CmdStart})

	s.HandleCommand(ids[0], Command{Type: CmdPlayCard})
	assert.Equal(t, string(engine.CodeCardNotInHand), rec.last(ids[0]).Error.Code)

	s.HandleCommand(ids[0], Command{Type: CmdSetTrump})
	assert.Equal(t, string(engine.CodeMissingTrumpColor), rec.last(ids[0]).Error.Code)

	s.HandleCommand(ids[0], Command{Type: "no_such_command"})
	assert.Equal(t, string(engine.CodeWrongState), rec.last(ids[0]).Error.Code)
}

func TestDisconnectedPlayerReceivesNothing(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(5))

	s.MarkConnected(ids[2], false)
	before := rec.count(ids[2])

	s.HandleCommand(ids[0], Command{Type: CmdStart})
	assert.Equal(t, before, rec.count(ids[2]))

	// Reconnecting resumes delivery, and View gives the catch-up snapshot.
	s.MarkConnected(ids[2], true)
	view := s.View(ids[2])
	assert.Equal(t, engine.StateGuess, view.State)

	s.HandleCommand(ids[0], Command{Type: CmdAutoPlay})
	assert.Greater(t, rec.count(ids[2]), before)
}

func TestFullGameViaForcedMoves(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(6))

	var endedRoom uuid.UUID
	var endedWinners []string
	s.OnGameEnd = func(roomID uuid.UUID, winners []string, totals map[uuid.UUID]int) {
		endedRoom = roomID
		endedWinners = winners
		require.Len(t, totals, 3)
	}

	s.HandleCommand(ids[0], Command{Type: CmdStart})
	for i := 0; i < 10000; i++ {
		if s.View(uuid.Nil).State == engine.StateWinner {
			break
		}
		s.HandleCommand(ids[0], Command{Type: CmdAutoPlay})
	}

	require.Equal(t, engine.StateWinner, s.View(uuid.Nil).State)
	assert.Equal(t, s.ID, endedRoom)
	assert.NotEmpty(t, endedWinners)

	for _, id := range ids {
		ends := rec.ofType(id, EventGameEnd)
		require.Len(t, ends, 1)
		assert.Equal(t, endedWinners, ends[0].Payload["winners"])
	}

	// Further commands after the end still answer with errors, not panics.
	s.HandleCommand(ids[0], Command{Type: CmdAutoPlay})
	assert.Equal(t, EventError, rec.last(ids[0]).Type)
}

// TestDeliveryRunsOutsideSessionLock pins down that the broadcast callback
// is invoked with the session unlocked: a transport that blocks, or calls
// back into the session, must not freeze command handling.
func TestDeliveryRunsOutsideSessionLock(t *testing.T) {
	s := NewSession(uuid.New(), seededShuffle(9), quietLogger())

	var views []engine.View
	s.BroadcastToPlayerFn = func(playerID uuid.UUID, ev Event) {
		// Re-entering the session here deadlocks if delivery held the lock.
		views = append(views, s.View(playerID))
	}

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, s.Join(ids[i], nickname(i)))
	}
	s.HandleCommand(ids[0], Command{Type: CmdStart})

	require.NotEmpty(t, views)
	assert.Equal(t, engine.StateGuess, views[len(views)-1].State)
}

func TestTurnTimerForcesMove(t *testing.T) {
	s, rec, ids := newSessionWithPlayers(t, 3, seededShuffle(7))
	s.TurnDuration = 10 * time.Millisecond

	s.HandleCommand(ids[0], Command{Type: CmdStart})
	require.Equal(t, engine.StateGuess, s.View(uuid.Nil).State)

	// Nobody bids; the timer has to push the game into PLAY by itself.
	require.Eventually(t, func() bool {
		return s.View(uuid.Nil).State == engine.StatePlay
	}, time.Second, 5*time.Millisecond)

	states := rec.ofType(ids[0], EventState)
	assert.NotEmpty(t, states)
}

func TestTimerStopsWhenGameEnds(t *testing.T) {
	s, _, ids := newSessionWithPlayers(t, 3, seededShuffle(8))
	s.TurnDuration = time.Millisecond

	s.HandleCommand(ids[0], Command{Type: CmdStart})
	require.Eventually(t, func() bool {
		return s.View(uuid.Nil).State == engine.StateWinner
	}, 30*time.Second, 10*time.Millisecond)

	s.mu.Lock()
	assert.Nil(t, s.turnTimer)
	assert.True(t, s.ended)
	s.mu.Unlock()
}
