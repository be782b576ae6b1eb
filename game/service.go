package game

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"

	"api/wordbank"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomCodeLength = 6

// Service owns the room registry. The registry lock only guards the maps;
// room state is guarded by each room's own lock, so gameplay in one room
// never blocks another.
type Service struct {
	locker    deadlock.RWMutex
	rooms     map[uuid.UUID]*GameRoom
	roomCodes map[string]uuid.UUID

	bank   *wordbank.Bank
	logger zerolog.Logger
}

func NewService(bank *wordbank.Bank, logger zerolog.Logger) *Service {
	if bank == nil {
		bank = wordbank.New()
	}
	return &Service{
		rooms:     make(map[uuid.UUID]*GameRoom),
		roomCodes: make(map[string]uuid.UUID),
		bank:      bank,
		logger:    logger,
	}
}

// CreateRoom makes a room with the creator as connected host.
func (s *Service) CreateRoom(hostUserID, hostName, roomName string, settings GameSettings) (*GameRoom, *Player) {
	if roomName == "" {
		roomName = "Untitled Game"
	}

	s.locker.Lock()
	code := s.generateRoomCodeLocked()
	room := newRoom(code, roomName, settings, s.bank)
	s.rooms[room.id] = room
	s.roomCodes[code] = room.id
	s.locker.Unlock()

	host := NewPlayer(hostUserID, hostName)
	// Cannot fail: the room is empty and in the lobby.
	_ = room.AddPlayer(host)

	s.logger.Info().
		Str("room_id", room.id.String()).
		Str("room_code", code).
		Str("host_name", hostName).
		Msg("game room created")

	return room, host
}

// GetRoom looks a room up by ID.
func (s *Service) GetRoom(roomID uuid.UUID) (*GameRoom, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, &RoomNotFoundError{Ref: roomID.String()}
	}
	return room, nil
}

// GetRoomByCode looks a room up by its join code, case-insensitively.
func (s *Service) GetRoomByCode(code string) (*GameRoom, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	roomID, ok := s.roomCodes[strings.ToUpper(code)]
	if !ok {
		return nil, &RoomNotFoundError{Ref: code}
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, &RoomNotFoundError{Ref: code}
	}
	return room, nil
}

// DeleteRoom drops a room from the registry.
func (s *Service) DeleteRoom(roomID uuid.UUID) {
	s.locker.Lock()
	defer s.locker.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	delete(s.rooms, roomID)
	delete(s.roomCodes, room.code)
	s.bank.ResetGameWords(roomID)

	s.logger.Info().Str("room_id", roomID.String()).Msg("game room deleted")
}

// JoinRoom admits a user, reconnecting them to their old seat when they
// were already in the room.
func (s *Service) JoinRoom(roomID uuid.UUID, userID, userName, avatarURL string, asSpectator bool) (*GameRoom, *Player, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, nil, err
	}

	if userID != "" {
		if existing := room.Rejoin(userID); existing != nil {
			s.logger.Info().
				Str("room_id", roomID.String()).
				Str("player_id", existing.ID.String()).
				Str("user_name", existing.UserName).
				Msg("player reconnected")
			return room, existing, nil
		}
	}

	player := NewPlayer(userID, userName)
	player.AvatarURL = avatarURL
	player.IsSpectator = asSpectator

	if err := room.AddPlayer(player); err != nil {
		return nil, nil, err
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Str("player_id", player.ID.String()).
		Str("user_name", userName).
		Bool("spectator", asSpectator).
		Msg("player joined room")

	return room, player, nil
}

// LeaveRoom removes a player and deletes the room once nobody is left.
func (s *Service) LeaveRoom(roomID, playerID uuid.UUID) (*Player, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	player := room.RemovePlayer(playerID)
	if player == nil {
		return nil, &PlayerNotFoundError{PlayerID: playerID}
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Str("player_id", playerID.String()).
		Str("user_name", player.UserName).
		Msg("player left room")

	if room.ActivePlayerCount() == 0 {
		s.DeleteRoom(roomID)
	}
	return player, nil
}

// StartGame starts the game and returns the first turn.
func (s *Service) StartGame(roomID, playerID uuid.UUID) (TurnInfo, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return TurnInfo{}, err
	}

	turn, err := room.StartGame(playerID)
	if err != nil {
		return TurnInfo{}, err
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Str("drawer", turn.DrawerName).
		Int("total_rounds", turn.TotalRounds).
		Msg("game started")

	return turn, nil
}

// SelectWord is the drawer committing to one of the offered words.
func (s *Service) SelectWord(roomID, playerID uuid.UUID, word string) (RoundSnapshot, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return RoundSnapshot{}, err
	}

	snap, err := room.SelectWord(playerID, word)
	if err != nil {
		return RoundSnapshot{}, err
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Int("round", snap.RoundNumber).
		Msg("word selected, round started")

	return snap, nil
}

// SubmitGuess scores a guess attempt.
func (s *Service) SubmitGuess(roomID, playerID uuid.UUID, text string) (Guess, ChatMessage, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return Guess{}, ChatMessage{}, err
	}

	guess, msg, err := room.SubmitGuess(playerID, text)
	if err != nil {
		return Guess{}, ChatMessage{}, err
	}

	s.logger.Debug().
		Str("room_id", roomID.String()).
		Str("player", guess.PlayerName).
		Str("result", string(guess.Result)).
		Int("points", guess.PointsAwarded).
		Msg("guess submitted")

	return guess, msg, nil
}

// EndRound finishes the current turn and returns the reveal summary.
func (s *Service) EndRound(roomID uuid.UUID) (RoundSummary, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return RoundSummary{}, err
	}

	summary, err := room.EndRound()
	if err != nil {
		return RoundSummary{}, err
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Int("round", summary.RoundNumber).
		Str("word", summary.Word).
		Bool("game_over", summary.IsGameOver).
		Msg("round ended")

	return summary, nil
}

// NextRound advances to the following turn.
func (s *Service) NextRound(roomID uuid.UUID) (TurnInfo, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return TurnInfo{}, err
	}

	turn, err := room.NextTurn()
	if err != nil {
		return TurnInfo{}, err
	}

	s.logger.Info().
		Str("room_id", roomID.String()).
		Int("round", turn.RoundNumber).
		Msg("next round started")

	return turn, nil
}

// RevealHint uncovers one more letter of the hint during a drawing phase.
func (s *Service) RevealHint(roomID uuid.UUID) (string, bool) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return "", false
	}
	return room.RevealHint()
}

// ResetGame returns a finished room to the lobby for a rematch.
func (s *Service) ResetGame(roomID uuid.UUID) (*GameRoom, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	room.ResetToLobby()
	s.logger.Info().Str("room_id", roomID.String()).Msg("game reset to lobby")
	return room, nil
}

// AllRooms returns every registered room.
func (s *Service) AllRooms() []*GameRoom {
	s.locker.RLock()
	defer s.locker.RUnlock()

	out := make([]*GameRoom, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// LobbyRooms lists joinable rooms, optionally restricted to public ones.
func (s *Service) LobbyRooms(publicOnly bool) []*GameRoom {
	var out []*GameRoom
	for _, r := range s.AllRooms() {
		if r.State() != StateLobby {
			continue
		}
		if publicOnly && !r.IsPublic() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ActiveGames lists rooms with a game in progress, for spectating.
func (s *Service) ActiveGames(publicOnly bool) []*GameRoom {
	var out []*GameRoom
	for _, r := range s.AllRooms() {
		switch r.State() {
		case StateWordSelection, StateDrawing, StateRoundEnd:
		default:
			continue
		}
		if publicOnly && !r.IsPublic() {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Service) generateRoomCodeLocked() string {
	for {
		b := make([]byte, roomCodeLength)
		for i := range b {
			b[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
		}
		code := string(b)
		if _, taken := s.roomCodes[code]; !taken {
			return code
		}
	}
}
