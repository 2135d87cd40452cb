package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MartijnWelker/wizard/internal/config"
	"github.com/MartijnWelker/wizard/internal/game"
	"github.com/MartijnWelker/wizard/internal/models"
)

const (
	tokenTTL     = 12 * time.Hour
	writeTimeout = 5 * time.Second
)

// Server owns the room registry and the HTTP surface: room creation, room
// join, and the per-player websocket that carries commands and events.
type Server struct {
	cfg config.Config
	log *logrus.Logger

	mu    sync.Mutex
	rooms map[uuid.UUID]*room
}

// room couples a session with the live connections of its players.
type room struct {
	info    models.Room
	session *game.Session

	mu      sync.Mutex
	players map[uuid.UUID]*models.Player
}

func New(cfg config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		rooms: map[uuid.UUID]*room{},
	}
}

// Handler returns the HTTP mux for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	mux.HandleFunc("POST /rooms/{id}/join", s.handleJoinRoom)
	mux.HandleFunc("GET /rooms/{id}/ws", s.handleWebsocket)
	return mux
}

type joinRequest struct {
	Nickname string `json:"nickname"`
}

type joinResponse struct {
	RoomID   uuid.UUID `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
	Token    string    `json:"token"`
}

// handleCreateRoom makes a fresh room and seats the caller as host.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		httpError(w, http.StatusBadRequest, "nickname required")
		return
	}

	player := models.NewPlayer(req.Nickname)
	roomID := uuid.New()

	rm := &room{
		info: models.Room{
			ID:        roomID,
			HostID:    player.ID,
			CreatedAt: time.Now(),
		},
		session: game.NewSession(roomID, nil, s.log),
		players: map[uuid.UUID]*models.Player{},
	}
	rm.session.TurnDuration = s.cfg.TurnTimer
	rm.session.BroadcastToPlayerFn = rm.deliver
	rm.session.OnGameEnd = s.onGameEnd

	s.mu.Lock()
	s.rooms[roomID] = rm
	s.mu.Unlock()

	if err := s.seatPlayer(w, rm, player, req.Nickname); err != nil {
		return
	}
	s.log.WithFields(logrus.Fields{"room": roomID, "host": player.ID}).Info("room created")
}

// handleJoinRoom seats a new player in an existing room.
func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	rm := s.roomFromPath(w, r)
	if rm == nil {
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		httpError(w, http.StatusBadRequest, "nickname required")
		return
	}

	player := models.NewPlayer(req.Nickname)
	if err := s.seatPlayer(w, rm, player, req.Nickname); err != nil {
		return
	}
	s.log.WithFields(logrus.Fields{"room": rm.info.ID, "player": player.ID}).Info("player joined room")
}

// seatPlayer joins the session, registers the connection slot, and writes
// the token response. A rule violation (full room, game started) maps to 409.
func (s *Server) seatPlayer(w http.ResponseWriter, rm *room, player *models.Player, nickname string) error {
	if err := rm.session.Join(player.ID, nickname); err != nil {
		status := http.StatusConflict
		if !game.IsRuleError(err) {
			status = http.StatusInternalServerError
		}
		httpError(w, status, err.Error())
		return err
	}

	rm.mu.Lock()
	rm.players[player.ID] = player
	rm.mu.Unlock()

	token, err := mintToken(s.cfg.JWTSecret, rm.info.ID, player.ID, nickname, tokenTTL)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "could not issue token")
		return err
	}

	writeJSON(w, http.StatusOK, joinResponse{
		RoomID:   rm.info.ID,
		PlayerID: player.ID,
		Token:    token,
	})
	return nil
}

// handleWebsocket upgrades the connection and pumps commands into the
// session until the socket drops.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	rm := s.roomFromPath(w, r)
	if rm == nil {
		return
	}

	roomID, playerID, _, err := verifyToken(s.cfg.JWTSecret, r.URL.Query().Get("token"))
	if err != nil || roomID != rm.info.ID {
		httpError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	rm.mu.Lock()
	player, ok := rm.players[playerID]
	rm.mu.Unlock()
	if !ok {
		httpError(w, http.StatusForbidden, "not seated in this room")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}

	rm.attach(player, conn)
	rm.session.MarkConnected(playerID, true)
	defer func() {
		rm.detach(player, conn)
		rm.session.MarkConnected(playerID, false)
	}()

	// Catch-up snapshot so a reconnecting client does not wait for the next
	// command to learn the current state.
	view := rm.session.View(playerID)
	rm.deliver(playerID, game.Event{Type: game.EventState, State: &view})

	s.readLoop(r.Context(), rm, playerID, conn)
}

// readLoop decodes commands off the socket until it closes.
func (s *Server) readLoop(ctx context.Context, rm *room, playerID uuid.UUID, conn *websocket.Conn) {
	for {
		var cmd game.Command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			s.log.WithError(err).WithField("player", playerID).Debug("websocket read ended")
			return
		}
		rm.session.HandleCommand(playerID, cmd)
	}
}

// deliver writes one event to one player's socket, if attached.
func (rm *room) deliver(playerID uuid.UUID, ev game.Event) {
	rm.mu.Lock()
	player, ok := rm.players[playerID]
	var conn *websocket.Conn
	if ok {
		conn = player.Conn
	}
	rm.mu.Unlock()
	if conn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		conn.Close(websocket.StatusInternalError, "write failed")
		// Stop attempting delivery right away instead of waiting for the
		// read loop to notice the dead socket.
		rm.session.MarkConnected(playerID, false)
	}
}

// attach binds a socket to a seat, displacing a stale one if present.
func (rm *room) attach(player *models.Player, conn *websocket.Conn) {
	rm.mu.Lock()
	old := player.Conn
	player.Conn = conn
	player.Connected = true
	rm.mu.Unlock()
	if old != nil {
		old.Close(websocket.StatusPolicyViolation, "replaced by a newer connection")
	}
}

// detach clears the seat's socket, unless a newer one already replaced it.
func (rm *room) detach(player *models.Player, conn *websocket.Conn) {
	rm.mu.Lock()
	if player.Conn == conn {
		player.Conn = nil
		player.Connected = false
	}
	rm.mu.Unlock()
}

// onGameEnd logs the result and schedules the room for removal. Clients get
// the game_end event before this runs.
func (s *Server) onGameEnd(roomID uuid.UUID, winners []string, totals map[uuid.UUID]int) {
	s.log.WithFields(logrus.Fields{"room": roomID, "winners": winners}).Info("room finished")

	// Leave the room around briefly so clients can fetch the final state.
	time.AfterFunc(time.Minute, func() {
		s.mu.Lock()
		delete(s.rooms, roomID)
		s.mu.Unlock()
	})
}

// roomFromPath resolves the {id} path segment, answering 404 itself on miss.
func (s *Server) roomFromPath(w http.ResponseWriter, r *http.Request) *room {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "bad room id")
		return nil
	}

	s.mu.Lock()
	rm, ok := s.rooms[id]
	s.mu.Unlock()
	if !ok {
		httpError(w, http.StatusNotFound, "room not found")
		return nil
	}
	return rm
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
