package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"

	"api/game"
	"api/moderation"
	"api/telemetry"
)

// GameRecorder persists finished-game stats for registered users.
type GameRecorder interface {
	RecordGameResult(ctx context.Context, userID string, score int, won bool) error
}

// Server wires the WebSocket endpoints to the game service.
type Server struct {
	games    *game.Service
	hub      *Hub
	timers   *timerRegistry
	filter   *moderation.Filter
	metrics  telemetry.Sink
	recorder GameRecorder
	logger   zerolog.Logger
	debug    bool
	upgrader websocket.Upgrader

	botsLock deadlock.Mutex
	botSeats map[uuid.UUID][]uuid.UUID
}

func NewServer(games *game.Service, filter *moderation.Filter, metrics telemetry.Sink, recorder GameRecorder, logger zerolog.Logger, debug bool) *Server {
	if metrics == nil {
		metrics = telemetry.Noop{}
	}
	return &Server{
		games:    games,
		hub:      NewHub(),
		timers:   newTimerRegistry(),
		filter:   filter,
		metrics:  metrics,
		recorder: recorder,
		logger:   logger,
		debug:    debug,
		botSeats: make(map[uuid.UUID][]uuid.UUID),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes mounts the REST and WebSocket endpoints. The origin checks
// happen in the router's CORS middleware, not here.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms", s.CreateRoomHandler)
	rg.GET("/rooms", s.ListRoomsHandler)
	rg.GET("/rooms/:code", s.RoomByCodeHandler)
	rg.GET("/ws/:room_id", s.JoinRoomHandler)
	rg.GET("/lobby/ws", s.LobbyFeedHandler)
	if s.debug {
		rg.POST("/debug/rooms", s.CreateDebugRoomHandler)
	}
}

type createRoomRequest struct {
	Name     string             `json:"name"`
	HostName string             `json:"host_name" binding:"required"`
	Settings *game.GameSettings `json:"settings"`
}

// CreateRoomHandler makes a room over plain HTTP; the creator then connects
// to the room socket with the returned ids.
func (s *Server) CreateRoomHandler(ctx *gin.Context) {
	var req createRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid room request"})
		return
	}

	settings := game.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if valid, rejected := s.filter.ValidateCustomWords(settings.CustomWords); len(rejected) > 0 {
		settings.CustomWords = valid
	}

	userID := s.identityFor(ctx)
	room, host := s.games.CreateRoom(userID, req.HostName, req.Name, settings)
	s.metrics.Incr(ctx.Request.Context(), telemetry.CounterRoomsCreated)

	if room.IsPublic() {
		s.hub.BroadcastLobby(Event{Type: EvRoomCreated, Data: room.LobbySummaryView()})
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"room":      room.Snapshot(),
		"player_id": host.ID,
		"user_id":   userID,
	})
}

// ListRoomsHandler returns the public lobby list, or games in progress
// when asked for spectatable rooms.
func (s *Server) ListRoomsHandler(ctx *gin.Context) {
	var rooms []*game.GameRoom
	if ctx.Query("state") == "active" {
		rooms = s.games.ActiveGames(true)
	} else {
		rooms = s.games.LobbyRooms(true)
	}
	out := make([]game.LobbySummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.LobbySummaryView())
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": out})
}

// RoomByCodeHandler resolves a join code to a room summary.
func (s *Server) RoomByCodeHandler(ctx *gin.Context) {
	room, err := s.games.GetRoomByCode(ctx.Param("code"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"room": room.LobbySummaryView()})
}

// JoinRoomHandler upgrades to a WebSocket and joins the player to the room.
// The connection itself is the join; closing it marks the player
// disconnected but keeps their seat for reconnects.
func (s *Server) JoinRoomHandler(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	name := ctx.Query("name")
	if name == "" {
		name = "Anonymous"
	}
	asSpectator := ctx.Query("spectator") == "true"
	userID := s.identityFor(ctx)

	socket, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := NewConn(socket)
	go conn.WritePump()

	room, player, err := s.games.JoinRoom(roomID, userID, name, ctx.Query("avatar_url"), asSpectator)
	if err != nil {
		conn.Send(errorEvent(err.Error()))
		conn.Close(err.Error())
		return
	}

	s.hub.Register(roomID, player.ID, conn)
	s.metrics.Incr(ctx.Request.Context(), telemetry.CounterConnectionsOpened)

	// Full state to the newcomer; mid-round this replays the current hint
	// and stroke history.
	conn.Send(Event{Type: EvRoomState, Data: gin.H{
		"room":      room.Snapshot(),
		"player_id": player.ID,
		"user_id":   userID,
	}})
	s.hub.BroadcastExcept(roomID, player.ID, Event{Type: EvPlayerJoined, Data: player.Snapshot()})
	s.notifyLobbyRoomUpdated(roomID)

	s.readLoop(room, player, conn)
}

// LobbyFeedHandler streams room-list changes to lobby browsers.
func (s *Server) LobbyFeedHandler(ctx *gin.Context) {
	socket, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := NewConn(socket)
	go conn.WritePump()

	s.hub.WatchLobby(conn)
	defer func() {
		s.hub.UnwatchLobby(conn)
		conn.Close("")
	}()

	rooms := s.games.LobbyRooms(true)
	out := make([]game.LobbySummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.LobbySummaryView())
	}
	conn.Send(Event{Type: EvLobbyList, Data: out})

	// Drain until the client goes away; the feed is one-directional.
	for {
		if _, err := conn.Read(); err != nil {
			return
		}
	}
}

func (s *Server) identityFor(ctx *gin.Context) string {
	if id := ctx.GetString("id"); id != "" {
		return id
	}
	if id := ctx.Query("user_id"); id != "" {
		return id
	}
	return "guest-" + uuid.NewString()
}

// readLoop dispatches client frames until the connection dies. A handler
// failure is answered on the offending connection only; it never tears down
// the room.
func (s *Server) readLoop(room *game.GameRoom, player *game.Player, conn *Conn) {
	roomID := room.ID()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("room_id", roomID.String()).Msg("websocket handler panicked")
		}
		s.hub.Unregister(roomID, player.ID, conn)
		conn.Close("")
		s.metrics.Incr(context.Background(), telemetry.CounterConnectionsClosed)
		s.handleDisconnect(room, player)
	}()

	for {
		data, err := conn.Read()
		if err != nil {
			return
		}
		if len(data) == 0 {
			continue
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			conn.Send(errorEvent("malformed message"))
			continue
		}

		if left := s.dispatch(room, player, conn, msg); left {
			return
		}
	}
}

// dispatch handles one inbound message. Returns true when the player left
// the room and the loop should exit.
func (s *Server) dispatch(room *game.GameRoom, player *game.Player, conn *Conn, msg InboundMessage) bool {
	roomID := room.ID()

	fail := func(err error) {
		conn.Send(errorEvent(err.Error()))
	}

	switch msg.Type {
	case InLeave:
		s.handleLeave(room, player)
		return true

	case InStartGame:
		turn, err := s.games.StartGame(roomID, player.ID)
		if err != nil {
			fail(err)
			return false
		}
		s.metrics.Incr(context.Background(), telemetry.CounterGamesStarted)
		s.hub.Broadcast(roomID, Event{Type: EvGameStarted, Data: room.Snapshot()})
		s.notifyLobbyRoomUpdated(roomID)
		s.announceTurn(roomID, turn)

	case InSelectWord:
		var p selectWordPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		snap, err := s.games.SelectWord(roomID, player.ID, p.Word)
		if err != nil {
			fail(err)
			return false
		}
		settings := room.Settings()
		s.hub.Broadcast(roomID, Event{Type: EvWordSelected, Data: gin.H{
			"word_hint":        snap.WordHint,
			"duration_seconds": settings.RoundDurationSeconds,
		}})
		go s.runRoundTimer(roomID, settings.RoundDurationSeconds, settings.HintsEnabled, settings.HintIntervals)
		if s.debug {
			go s.scheduleBotGuesses(roomID, player.ID)
		}

	case InGuess:
		var p guessPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		if !conn.AllowText() {
			conn.Send(errorEvent("slow down"))
			return false
		}
		s.handleGuess(room, player, conn, p.Text)

	case InChat:
		var p chatPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		if !conn.AllowText() {
			conn.Send(errorEvent("slow down"))
			return false
		}
		s.handleChat(room, player, p.Text)

	case InDraw, InDrawShape, InFill:
		stroke, err := json.Marshal(gin.H{"tool": msg.Type, "data": msg.Data})
		if err != nil {
			return false
		}
		if err := room.AddStroke(player.ID, stroke); err != nil {
			fail(err)
			return false
		}
		s.hub.BroadcastExcept(roomID, player.ID, Event{Type: EvDrawStroke, Data: json.RawMessage(stroke)})

	case InClear:
		if err := room.ClearCanvas(player.ID); err != nil {
			fail(err)
			return false
		}
		s.hub.Broadcast(roomID, Event{Type: EvClearCanvas})

	case InKickPlayer:
		var p targetPlayerPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		target, err := room.KickPlayer(player.ID, p.PlayerID)
		if err != nil {
			fail(err)
			return false
		}
		s.hub.SendTo(roomID, target.ID, Event{Type: EvYouWereKicked})
		s.hub.Broadcast(roomID, Event{Type: EvPlayerKicked, Data: gin.H{"player_id": target.ID, "name": target.UserName}})
		s.dropPlayerConnection(roomID, target.ID, "kicked")
		s.notifyLobbyRoomUpdated(roomID)

	case InBanPlayer:
		var p targetPlayerPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		target, err := room.BanPlayer(player.ID, p.PlayerID)
		if err != nil {
			fail(err)
			return false
		}
		s.hub.SendTo(roomID, target.ID, Event{Type: EvYouWereBanned})
		s.hub.Broadcast(roomID, Event{Type: EvPlayerBanned, Data: gin.H{"player_id": target.ID, "name": target.UserName}})
		s.dropPlayerConnection(roomID, target.ID, "banned")
		s.notifyLobbyRoomUpdated(roomID)

	case InUnbanPlayer:
		var p unbanPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		if _, err := room.UnbanPlayer(player.ID, p.UserID); err != nil {
			fail(err)
		}

	case InTransferHost:
		var p targetPlayerPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		if err := room.TransferHost(player.ID, p.PlayerID); err != nil {
			fail(err)
			return false
		}
		s.hub.Broadcast(roomID, Event{Type: EvHostTransferred, Data: gin.H{"host_id": p.PlayerID}})

	case InUpdateSettings:
		var p updateSettingsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			fail(err)
			return false
		}
		valid, rejected := s.filter.ValidateCustomWords(p.Settings.CustomWords)
		p.Settings.CustomWords = valid
		if err := room.UpdateSettings(player.ID, p.Settings); err != nil {
			fail(err)
			return false
		}
		if len(rejected) > 0 {
			conn.Send(Event{Type: EvError, Data: gin.H{"reason": "some custom words were rejected", "rejected": rejected}})
		}
		s.hub.Broadcast(roomID, Event{Type: EvSettingsUpdated, Data: room.Settings()})
		s.notifyLobbyRoomUpdated(roomID)

	case InNextRound:
		if !room.IsHostPlayer(player.ID) {
			fail(&game.StateError{Reason: "only the host can advance the round"})
			return false
		}
		turn, err := s.games.NextRound(roomID)
		if err != nil {
			fail(err)
			return false
		}
		// Manual advance supersedes the pending auto-advance.
		s.timers.stop(roomID)
		s.announceTurn(roomID, turn)

	case InResetGame:
		if !room.IsHostPlayer(player.ID) {
			fail(&game.StateError{Reason: "only the host can reset the game"})
			return false
		}
		if _, err := s.games.ResetGame(roomID); err != nil {
			fail(err)
			return false
		}
		s.timers.stop(roomID)
		s.hub.Broadcast(roomID, Event{Type: EvRoomState, Data: gin.H{"room": room.Snapshot()}})
		s.notifyLobbyRoomUpdated(roomID)

	default:
		conn.Send(errorEvent("unknown message type"))
	}
	return false
}

func (s *Server) handleGuess(room *game.GameRoom, player *game.Player, conn *Conn, text string) {
	roomID := room.ID()

	filtered, blocked := s.filter.FilterMessage(text)
	if blocked {
		s.hub.Broadcast(roomID, Event{Type: EvChatMessage, Data: game.ChatMessage{
			ID:         uuid.New(),
			Type:       game.ChatGuess,
			SenderID:   player.ID,
			SenderName: player.UserName,
			Content:    filtered,
			Timestamp:  time.Now().UTC(),
		}})
		return
	}

	guess, msg, err := s.games.SubmitGuess(roomID, player.ID, text)
	if err != nil {
		conn.Send(errorEvent(err.Error()))
		return
	}
	s.metrics.Incr(context.Background(), telemetry.CounterGuessesTotal)

	conn.Send(Event{Type: EvGuessResult, Data: gin.H{
		"result": guess.Result,
		"points": guess.PointsAwarded,
	}})

	// Rejections (spectator, drawer, already guessed) stay between the
	// server and the sender.
	switch guess.Result {
	case game.GuessInvalid, game.GuessDrawer, game.GuessAlreadyGuessed:
		conn.Send(Event{Type: EvChatMessage, Data: msg})
		return
	}

	// Close guesses go out as plain chat, and only the guesser gets the
	// private nudge.
	if guess.Result == game.GuessClose {
		s.hub.Broadcast(roomID, Event{Type: EvChatMessage, Data: game.ChatMessage{
			ID:         msg.ID,
			Type:       game.ChatGuess,
			SenderID:   player.ID,
			SenderName: player.UserName,
			Content:    guess.Text,
			Timestamp:  msg.Timestamp,
		}})
		conn.Send(Event{Type: EvChatMessage, Data: game.SystemMessage("You're close!")})
		return
	}

	s.hub.Broadcast(roomID, Event{Type: EvChatMessage, Data: msg})

	if guess.Result == game.GuessCorrect {
		s.metrics.Incr(context.Background(), telemetry.CounterGuessesCorrect)
		s.hub.Broadcast(roomID, Event{Type: EvCorrectGuess, Data: gin.H{
			"player_id": player.ID,
			"name":      player.UserName,
			"points":    guess.PointsAwarded,
		}})
		s.hub.Broadcast(roomID, Event{Type: EvScoreUpdate, Data: room.Leaderboard()})

		if room.AllGuessed() {
			s.finishRound(roomID)
		}
	}
}

func (s *Server) handleChat(room *game.GameRoom, player *game.Player, text string) {
	filtered, _ := s.filter.FilterMessage(text)
	msg := game.ChatMessage{
		ID:         uuid.New(),
		Type:       game.ChatPlain,
		SenderID:   player.ID,
		SenderName: player.UserName,
		Content:    filtered,
		Timestamp:  time.Now().UTC(),
	}
	room.AppendChat(msg)
	s.hub.Broadcast(room.ID(), Event{Type: EvChatMessage, Data: msg})
}

func (s *Server) handleLeave(room *game.GameRoom, player *game.Player) {
	roomID := room.ID()
	if _, err := s.games.LeaveRoom(roomID, player.ID); err != nil {
		return
	}
	s.hub.Broadcast(roomID, Event{Type: EvPlayerLeft, Data: gin.H{
		"player_id": player.ID,
		"name":      player.UserName,
	}})
	s.afterRosterChange(roomID)
}

// handleDisconnect keeps the seat: the player is only flagged disconnected
// so a reconnect restores their score and role.
func (s *Server) handleDisconnect(room *game.GameRoom, player *game.Player) {
	roomID := room.ID()
	newHost, kept := room.MarkDisconnected(player.ID)
	if !kept {
		// Already left, kicked or banned; that path did its own broadcast.
		return
	}
	s.hub.Broadcast(roomID, Event{Type: EvPlayerLeft, Data: gin.H{
		"player_id":    player.ID,
		"name":         player.UserName,
		"disconnected": true,
	}})
	if newHost != nil {
		s.hub.Broadcast(roomID, Event{Type: EvHostTransferred, Data: gin.H{"host_id": newHost.ID}})
	}
	s.afterRosterChange(roomID)
}

// afterRosterChange cleans up timers for dead rooms and refreshes the lobby
// feed.
func (s *Server) afterRosterChange(roomID uuid.UUID) {
	if _, err := s.games.GetRoom(roomID); err != nil {
		// Room deleted with its last player.
		s.timers.stop(roomID)
		s.hub.DropRoom(roomID, "room closed")
		s.hub.BroadcastLobby(Event{Type: EvRoomClosed, Data: gin.H{"room_id": roomID}})
		return
	}
	s.notifyLobbyRoomUpdated(roomID)
}

func (s *Server) announceTurn(roomID uuid.UUID, turn game.TurnInfo) {
	s.hub.Broadcast(roomID, Event{Type: EvRoundStarted, Data: gin.H{
		"round_number":  turn.RoundNumber,
		"display_round": turn.DisplayRound,
		"total_rounds":  turn.TotalRounds,
		"drawer_id":     turn.DrawerID,
		"drawer_name":   turn.DrawerName,
	}})
	s.hub.SendTo(roomID, turn.DrawerID, Event{Type: EvWordOptions, Data: gin.H{
		"options": turn.WordOptions,
	}})
	if s.debug {
		go s.maybeBotSelectWord(roomID, turn)
	}
}

func (s *Server) dropPlayerConnection(roomID, playerID uuid.UUID, reason string) {
	s.hub.Drop(roomID, playerID, reason)
}

func (s *Server) notifyLobbyRoomUpdated(roomID uuid.UUID) {
	room, err := s.games.GetRoom(roomID)
	if err != nil {
		return
	}
	if !room.IsPublic() {
		return
	}
	s.hub.BroadcastLobby(Event{Type: EvRoomUpdated, Data: room.LobbySummaryView()})
}

// recordGameResults persists final scores for registered players. Guests
// are skipped; failures only log.
func (s *Server) recordGameResults(roomID uuid.UUID, leaderboard []game.LeaderboardEntry) {
	if s.recorder == nil || len(leaderboard) == 0 {
		return
	}
	room, err := s.games.GetRoom(roomID)
	if err != nil {
		return
	}
	s.metrics.Incr(context.Background(), telemetry.CounterGamesCompleted)

	topScore := leaderboard[0].Score
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range room.Snapshot().Players {
		if p.IsSpectator || p.UserID == "" {
			continue
		}
		won := p.Score == topScore && topScore > 0
		if err := s.recorder.RecordGameResult(ctx, p.UserID, p.Score, won); err != nil {
			s.logger.Warn().Err(err).Str("user_id", p.UserID).Msg("failed to record game result")
		}
	}
}
