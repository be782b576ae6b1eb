package game

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"api/wordbank"
)

// GameRoom is one game lobby and its full lifecycle. Every exported method
// takes the room's own lock, so concurrent socket handlers for the same room
// serialize here while different rooms proceed independently.
type GameRoom struct {
	locker deadlock.Mutex

	id       uuid.UUID
	code     string
	name     string
	state    GameState
	settings GameSettings
	bank     *wordbank.Bank

	hostID        uuid.UUID
	players       []*Player
	bannedUserIDs map[string]struct{}

	currentRound *Round
	roundHistory []*Round
	turnNumber   int // completed turns, 0-indexed

	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time
}

// TurnInfo describes a freshly created turn. WordOptions go to the drawer
// only.
type TurnInfo struct {
	RoundID      uuid.UUID
	RoundNumber  int
	DisplayRound int
	TotalRounds  int
	DrawerID     uuid.UUID
	DrawerName   string
	WordOptions  []string
}

// RoundSummary is the result of a finished turn.
type RoundSummary struct {
	Word        string             `json:"word"`
	RoundNumber int                `json:"round_number"`
	DrawerID    uuid.UUID          `json:"drawer_id"`
	DrawerName  string             `json:"drawer_name"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	IsGameOver  bool               `json:"is_game_over"`
}

// LeaderboardEntry is one row of the score table.
type LeaderboardEntry struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
}

func newRoom(code, name string, settings GameSettings, bank *wordbank.Bank) *GameRoom {
	return &GameRoom{
		id:            uuid.New(),
		code:          code,
		name:          name,
		state:         StateLobby,
		settings:      settings,
		bank:          bank,
		bannedUserIDs: make(map[string]struct{}),
		createdAt:     time.Now().UTC(),
	}
}

func (r *GameRoom) ID() uuid.UUID { return r.id }
func (r *GameRoom) Code() string  { return r.code }
func (r *GameRoom) Name() string  { return r.name }

func (r *GameRoom) State() GameState {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.state
}

func (r *GameRoom) HostID() uuid.UUID {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.hostID
}

// Settings returns a copy of the room configuration.
func (r *GameRoom) Settings() GameSettings {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.settings.clone()
}

// UpdateSettings replaces the room configuration while still in the lobby.
func (r *GameRoom) UpdateSettings(playerID uuid.UUID, settings GameSettings) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.hostID != playerID {
		return stateErrorf("only the host can change settings")
	}
	if r.state != StateLobby {
		return stateErrorf("settings can only be changed in the lobby")
	}
	r.settings = settings.clone()
	return nil
}

// AddPlayer admits a player. Spectators may join in any phase except
// game over; regular players only in the lobby or mid-drawing, and only
// while the room has capacity. The first non-spectator becomes host.
func (r *GameRoom) AddPlayer(p *Player) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.addPlayerLocked(p)
}

func (r *GameRoom) addPlayerLocked(p *Player) error {
	if p.UserID != "" {
		if _, banned := r.bannedUserIDs[p.UserID]; banned {
			return stateErrorf("you have been banned from this room")
		}
	}

	if p.IsSpectator {
		if r.state == StateGameOver {
			return stateErrorf("cannot spectate: game is over")
		}
	} else {
		if len(r.activeGuessersLocked()) >= r.settings.MaxPlayers {
			return stateErrorf("room is full")
		}
		if r.state != StateLobby && r.state != StateDrawing {
			return stateErrorf("cannot join: game already in progress")
		}
	}

	if r.hostID == uuid.Nil && !p.IsSpectator {
		p.IsHost = true
		r.hostID = p.ID
	}
	r.players = append(r.players, p)
	return nil
}

// Rejoin reconnects an existing player by their external user ID. Returns
// nil when the user was never in this room.
func (r *GameRoom) Rejoin(userID string) *Player {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, p := range r.players {
		// A left seat is forfeited; kicked and banned players do not get
		// their seat back either.
		if p.UserID == userID && p.ConnectionState != PlayerLeft {
			p.ConnectionState = PlayerConnected
			p.MarkActive()
			// Reclaim the host role only while it sits vacant.
			if r.hostID == uuid.Nil && !p.IsSpectator {
				p.IsHost = true
				r.hostID = p.ID
			}
			return p
		}
	}
	return nil
}

// RemovePlayer marks a player as left and reassigns the host role to the
// first remaining connected non-spectator if needed.
func (r *GameRoom) RemovePlayer(playerID uuid.UUID) *Player {
	r.locker.Lock()
	defer r.locker.Unlock()

	p := r.getPlayerLocked(playerID)
	if p == nil {
		return nil
	}
	p.ConnectionState = PlayerLeft

	if p.IsHost {
		p.IsHost = false
		// Host goes to the first connected non-spectator; spectators are
		// never host-eligible.
		if eligible := r.activeGuessersLocked(); len(eligible) > 0 {
			eligible[0].IsHost = true
			r.hostID = eligible[0].ID
		} else {
			r.hostID = uuid.Nil
		}
	}
	return p
}

// MarkDisconnected flags a player whose socket dropped without leaving, so
// they can reclaim their seat and score on reconnect. Reports whether the
// seat was kept; false means the player had already left the room. A
// disconnected host loses the role: it moves to the first connected
// non-spectator (returned so callers can announce it), or sits vacant
// until someone eligible reconnects.
func (r *GameRoom) MarkDisconnected(playerID uuid.UUID) (*Player, bool) {
	r.locker.Lock()
	defer r.locker.Unlock()

	p := r.getPlayerLocked(playerID)
	if p == nil || p.ConnectionState == PlayerLeft {
		return nil, false
	}
	if p.ConnectionState == PlayerConnected {
		p.ConnectionState = PlayerDisconnected
	}

	var newHost *Player
	if p.IsHost {
		p.IsHost = false
		r.hostID = uuid.Nil
		if eligible := r.activeGuessersLocked(); len(eligible) > 0 {
			newHost = eligible[0]
			newHost.IsHost = true
			r.hostID = newHost.ID
		}
	}
	return newHost, true
}

// GetPlayer returns the player or nil.
func (r *GameRoom) GetPlayer(playerID uuid.UUID) *Player {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.getPlayerLocked(playerID)
}

func (r *GameRoom) getPlayerLocked(playerID uuid.UUID) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *GameRoom) activePlayersLocked() []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.ConnectionState == PlayerConnected {
			out = append(out, p)
		}
	}
	return out
}

func (r *GameRoom) activeGuessersLocked() []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.ConnectionState == PlayerConnected && !p.IsSpectator {
			out = append(out, p)
		}
	}
	return out
}

// ActivePlayerCount reports how many players are currently connected,
// spectators included.
func (r *GameRoom) ActivePlayerCount() int {
	r.locker.Lock()
	defer r.locker.Unlock()
	return len(r.activePlayersLocked())
}

// StartGame begins the game and sets up the first turn. Host only, lobby
// only, at least two non-spectators required.
func (r *GameRoom) StartGame(playerID uuid.UUID) (TurnInfo, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	p := r.getPlayerLocked(playerID)
	if p == nil || !p.IsHost {
		return TurnInfo{}, stateErrorf("only the host can start the game")
	}
	if r.state != StateLobby {
		return TurnInfo{}, stateErrorf("game already started")
	}
	if len(r.activeGuessersLocked()) < 2 {
		return TurnInfo{}, stateErrorf("need at least 2 players to start")
	}

	r.startedAt = time.Now().UTC()
	r.turnNumber = 0
	return r.nextTurnLocked()
}

// NextTurn rotates the drawer and creates the following turn. Only valid
// between rounds; a live round is never replaced.
func (r *GameRoom) NextTurn() (TurnInfo, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state == StateGameOver {
		return TurnInfo{}, stateErrorf("game is already over")
	}
	if r.state != StateRoundEnd {
		return TurnInfo{}, stateErrorf("can only advance after a round ends")
	}
	return r.nextTurnLocked()
}

func (r *GameRoom) nextTurnLocked() (TurnInfo, error) {
	if r.turnNumber >= r.totalTurnsLocked() {
		r.state = StateGameOver
		r.endedAt = time.Now().UTC()
		return TurnInfo{}, stateErrorf("game is over")
	}

	guessers := r.activeGuessersLocked()
	if len(guessers) == 0 {
		return TurnInfo{}, stateErrorf("no active players")
	}
	drawer := guessers[r.turnNumber%len(guessers)]

	for _, p := range guessers {
		p.ResetRoundState()
	}

	options, err := r.bank.GetWordOptions(r.id, wordbank.Options{
		Count:           3,
		CustomWords:     r.settings.CustomWords,
		CustomWordsOnly: r.settings.CustomWordsOnly,
	})
	if err != nil {
		return TurnInfo{}, err
	}

	round := &Round{
		ID:              uuid.New(),
		RoundNumber:     r.turnNumber + 1,
		DrawerID:        drawer.ID,
		WordOptions:     options,
		DurationSeconds: r.settings.RoundDurationSeconds,
	}
	r.currentRound = round
	r.state = StateWordSelection

	return TurnInfo{
		RoundID:      round.ID,
		RoundNumber:  round.RoundNumber,
		DisplayRound: r.currentDisplayRoundLocked(),
		TotalRounds:  r.settings.RoundsPerGame,
		DrawerID:     drawer.ID,
		DrawerName:   drawer.UserName,
		WordOptions:  append([]string(nil), options...),
	}, nil
}

// SelectWord locks in the drawer's choice, consumes it from the word pool
// and starts the drawing phase.
func (r *GameRoom) SelectWord(playerID uuid.UUID, word string) (RoundSnapshot, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state != StateWordSelection {
		return RoundSnapshot{}, stateErrorf("not in word selection phase")
	}
	if r.currentRound == nil {
		return RoundSnapshot{}, stateErrorf("no active round")
	}
	if r.currentRound.DrawerID != playerID {
		return RoundSnapshot{}, stateErrorf("only the drawer can select the word")
	}

	selected := ""
	for _, opt := range r.currentRound.WordOptions {
		if strings.EqualFold(opt, word) {
			selected = opt
			break
		}
	}
	if selected == "" {
		return RoundSnapshot{}, stateErrorf("invalid word selection")
	}

	r.bank.MarkWordUsed(r.id, selected)
	r.currentRound.Start(selected)
	r.state = StateDrawing

	return r.currentRound.snapshot(), nil
}

// SubmitGuess runs the whole guess flow: eligibility, closeness check,
// scoring for guesser and drawer, and the chat entry to broadcast.
func (r *GameRoom) SubmitGuess(playerID uuid.UUID, text string) (Guess, ChatMessage, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	p := r.getPlayerLocked(playerID)
	if p == nil {
		return Guess{}, ChatMessage{}, &PlayerNotFoundError{PlayerID: playerID}
	}
	if r.state != StateDrawing {
		return Guess{}, ChatMessage{}, stateErrorf("not in drawing phase")
	}
	if r.currentRound == nil {
		return Guess{}, ChatMessage{}, stateErrorf("no active round")
	}

	now := time.Now().UTC()
	rejected := func(result GuessResult, content string) (Guess, ChatMessage, error) {
		g := Guess{
			ID:         uuid.New(),
			PlayerID:   playerID,
			PlayerName: p.UserName,
			Text:       text,
			Result:     result,
			Timestamp:  now,
		}
		m := ChatMessage{
			ID:         uuid.New(),
			Type:       ChatSystem,
			SenderID:   playerID,
			SenderName: p.UserName,
			Content:    content,
			Timestamp:  now,
		}
		return g, m, nil
	}

	if p.IsSpectator {
		return rejected(GuessInvalid, "Spectators cannot guess!")
	}
	if r.currentRound.DrawerID == playerID {
		return rejected(GuessDrawer, "Drawer cannot guess!")
	}
	if p.HasGuessed {
		return rejected(GuessAlreadyGuessed, p.UserName+" has already guessed!")
	}

	timeElapsed := 0.0
	if !r.currentRound.StartTime.IsZero() {
		timeElapsed = now.Sub(r.currentRound.StartTime).Seconds()
	}

	var result GuessResult
	switch r.bank.CheckGuess(r.currentRound.Word, text) {
	case wordbank.MatchCorrect:
		result = GuessCorrect
	case wordbank.MatchClose:
		result = GuessClose
	default:
		result = GuessWrong
	}

	points := 0
	if result == GuessCorrect {
		points = r.currentRound.CalculatePoints(timeElapsed)
		p.HasGuessed = true
		p.GuessTime = timeElapsed
		p.AwardPoints(points)

		if drawer := r.getPlayerLocked(r.currentRound.DrawerID); drawer != nil {
			drawer.AwardPoints(int(float64(points) * r.settings.DrawerPointsShare))
		}
	}

	guess := Guess{
		ID:            uuid.New(),
		PlayerID:      playerID,
		PlayerName:    p.UserName,
		Text:          text,
		Result:        result,
		PointsAwarded: points,
		TimeElapsed:   timeElapsed,
		Timestamp:     now,
	}
	r.currentRound.AddGuess(guess)

	var msg ChatMessage
	switch result {
	case GuessCorrect:
		msg = ChatMessage{
			ID:         uuid.New(),
			Type:       ChatCorrect,
			SenderID:   playerID,
			SenderName: p.UserName,
			Content:    p.UserName + " guessed the word!",
			Timestamp:  now,
		}
	case GuessClose:
		msg = HintMessage(p.UserName)
		msg.SenderID = playerID
	default:
		msg = ChatMessage{
			ID:         uuid.New(),
			Type:       ChatGuess,
			SenderID:   playerID,
			SenderName: p.UserName,
			Content:    text,
			Timestamp:  now,
		}
	}
	r.currentRound.AddChatMessage(msg)

	return guess, msg, nil
}

// CurrentWord returns the word being drawn, or empty outside a drawing
// phase. Only the simulation and round-end paths read it; it is never
// broadcast.
func (r *GameRoom) CurrentWord() string {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.currentRound == nil {
		return ""
	}
	return r.currentRound.Word
}

// AllGuessed reports whether every eligible guesser has found the word, so
// the round can end early.
func (r *GameRoom) AllGuessed() bool {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state != StateDrawing || r.currentRound == nil {
		return false
	}
	counted := 0
	for _, p := range r.activeGuessersLocked() {
		if p.ID == r.currentRound.DrawerID {
			continue
		}
		counted++
		if !p.HasGuessed {
			return false
		}
	}
	return counted > 0
}

// EndRound closes the current turn and returns the reveal summary.
func (r *GameRoom) EndRound() (RoundSummary, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.currentRound == nil {
		return RoundSummary{}, stateErrorf("no active round")
	}

	round := r.currentRound
	drawerName := "Unknown"
	if drawer := r.getPlayerLocked(round.DrawerID); drawer != nil {
		drawerName = drawer.UserName
	}

	round.End()
	r.roundHistory = append(r.roundHistory, round)
	r.currentRound = nil
	r.turnNumber++

	summary := RoundSummary{
		Word:        round.Word,
		RoundNumber: round.RoundNumber,
		DrawerID:    round.DrawerID,
		DrawerName:  drawerName,
		Leaderboard: r.leaderboardLocked(),
	}

	if r.turnNumber >= r.totalTurnsLocked() {
		r.state = StateGameOver
		r.endedAt = time.Now().UTC()
		summary.IsGameOver = true
	} else {
		r.state = StateRoundEnd
	}
	return summary, nil
}

// RevealHint uncovers one more letter during the drawing phase.
func (r *GameRoom) RevealHint() (string, bool) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state != StateDrawing || r.currentRound == nil {
		return "", false
	}
	return r.currentRound.RevealHint(1), true
}

// AddStroke buffers a drawing event. Only the current drawer may draw.
func (r *GameRoom) AddStroke(playerID uuid.UUID, stroke json.RawMessage) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state != StateDrawing || r.currentRound == nil {
		return stateErrorf("not in drawing phase")
	}
	if r.currentRound.DrawerID != playerID {
		return stateErrorf("only the drawer can draw")
	}
	r.currentRound.AddStroke(stroke)
	return nil
}

// ClearCanvas wipes the stroke buffer. Only the current drawer may clear.
func (r *GameRoom) ClearCanvas(playerID uuid.UUID) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.state != StateDrawing || r.currentRound == nil {
		return stateErrorf("not in drawing phase")
	}
	if r.currentRound.DrawerID != playerID {
		return stateErrorf("only the drawer can clear the canvas")
	}
	r.currentRound.ClearStrokes()
	return nil
}

// AppendChat records a plain chat message in the round log when a round is
// active.
func (r *GameRoom) AppendChat(msg ChatMessage) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.currentRound != nil {
		r.currentRound.AddChatMessage(msg)
	}
}

// Leaderboard returns scores for non-spectators, highest first.
func (r *GameRoom) Leaderboard() []LeaderboardEntry {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.leaderboardLocked()
}

func (r *GameRoom) leaderboardLocked() []LeaderboardEntry {
	guessers := r.activeGuessersLocked()
	out := make([]LeaderboardEntry, 0, len(guessers))
	for _, p := range guessers {
		out = append(out, LeaderboardEntry{PlayerID: p.ID, Name: p.UserName, Score: p.Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// TotalTurns is rounds_per_game turns for every active non-spectator.
func (r *GameRoom) TotalTurns() int {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.totalTurnsLocked()
}

func (r *GameRoom) totalTurnsLocked() int {
	n := len(r.activeGuessersLocked())
	if n == 0 {
		return r.settings.RoundsPerGame
	}
	return r.settings.RoundsPerGame * n
}

// CurrentDisplayRound is the 1-indexed round shown to players; a round
// completes once everyone has drawn.
func (r *GameRoom) CurrentDisplayRound() int {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.currentDisplayRoundLocked()
}

func (r *GameRoom) currentDisplayRoundLocked() int {
	n := len(r.activeGuessersLocked())
	if n == 0 || r.turnNumber == 0 {
		return 1
	}
	return (r.turnNumber-1)/n + 1
}

// IsGameOver reports whether all turns are done.
func (r *GameRoom) IsGameOver() bool {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.turnNumber >= r.totalTurnsLocked()
}

// IsHostPlayer reports whether the player holds the host role.
func (r *GameRoom) IsHostPlayer(playerID uuid.UUID) bool {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.hostID == playerID
}

// KickPlayer removes a player from the room. The kicked player may rejoin.
// Host only; the host cannot be kicked.
func (r *GameRoom) KickPlayer(kickerID, targetID uuid.UUID) (*Player, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.hostID != kickerID {
		return nil, stateErrorf("only the host can kick players")
	}
	target := r.getPlayerLocked(targetID)
	if target == nil {
		return nil, &PlayerNotFoundError{PlayerID: targetID}
	}
	if target.IsHost {
		return nil, stateErrorf("cannot kick the host")
	}
	target.ConnectionState = PlayerLeft
	return target, nil
}

// BanPlayer removes a player and bars their user ID from rejoining. Host
// only; the host cannot be banned.
func (r *GameRoom) BanPlayer(bannerID, targetID uuid.UUID) (*Player, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.hostID != bannerID {
		return nil, stateErrorf("only the host can ban players")
	}
	target := r.getPlayerLocked(targetID)
	if target == nil {
		return nil, &PlayerNotFoundError{PlayerID: targetID}
	}
	if target.IsHost {
		return nil, stateErrorf("cannot ban the host")
	}
	if target.UserID != "" {
		r.bannedUserIDs[target.UserID] = struct{}{}
	}
	target.ConnectionState = PlayerLeft
	return target, nil
}

// UnbanPlayer lifts a ban by user ID. Host only.
func (r *GameRoom) UnbanPlayer(unbannerID uuid.UUID, userID string) (bool, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.hostID != unbannerID {
		return false, stateErrorf("only the host can unban players")
	}
	if _, banned := r.bannedUserIDs[userID]; !banned {
		return false, nil
	}
	delete(r.bannedUserIDs, userID)
	return true, nil
}

// TransferHost hands the host role to another connected non-spectator.
func (r *GameRoom) TransferHost(currentHostID, newHostID uuid.UUID) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.hostID != currentHostID {
		return stateErrorf("only the host can transfer host privileges")
	}
	current := r.getPlayerLocked(currentHostID)
	next := r.getPlayerLocked(newHostID)
	if current == nil || next == nil {
		return &PlayerNotFoundError{PlayerID: newHostID}
	}
	if next.ConnectionState != PlayerConnected {
		return stateErrorf("cannot transfer host to disconnected player")
	}
	if next.IsSpectator {
		return stateErrorf("cannot transfer host to a spectator")
	}

	current.IsHost = false
	next.IsHost = true
	r.hostID = newHostID
	return nil
}

// ResetToLobby clears scores and round history so the room can replay.
func (r *GameRoom) ResetToLobby() {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.state = StateLobby
	r.currentRound = nil
	r.roundHistory = nil
	r.turnNumber = 0
	r.startedAt = time.Time{}
	r.endedAt = time.Time{}

	for _, p := range r.players {
		p.Score = 0
		p.ResetRoundState()
	}
	r.bank.ResetGameWords(r.id)
}

// RoomSnapshot is the full broadcast view of a room.
type RoomSnapshot struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	State        GameState        `json:"state"`
	HostID       uuid.UUID        `json:"host_id"`
	Players      []PlayerSnapshot `json:"players"`
	Settings     GameSettings     `json:"settings"`
	CurrentRound *RoundSnapshot   `json:"current_round,omitempty"`
	DisplayRound int              `json:"display_round"`
	TotalRounds  int              `json:"total_rounds"`
}

// Snapshot captures the room state for broadcasting. The secret word stays
// out of it.
func (r *GameRoom) Snapshot() RoomSnapshot {
	r.locker.Lock()
	defer r.locker.Unlock()

	players := make([]PlayerSnapshot, 0, len(r.players))
	for _, p := range r.players {
		if p.ConnectionState == PlayerLeft {
			continue
		}
		players = append(players, p.snapshot())
	}

	snap := RoomSnapshot{
		ID:           r.id,
		Code:         r.code,
		Name:         r.name,
		State:        r.state,
		HostID:       r.hostID,
		Players:      players,
		Settings:     r.settings.clone(),
		DisplayRound: r.currentDisplayRoundLocked(),
		TotalRounds:  r.settings.RoundsPerGame,
	}
	if r.currentRound != nil {
		rs := r.currentRound.snapshot()
		snap.CurrentRound = &rs
	}
	return snap
}

// LobbySummary is the compact listing shown in the public room browser.
type LobbySummary struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	State       GameState `json:"state"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	IsPublic    bool      `json:"is_public"`
}

func (r *GameRoom) LobbySummaryView() LobbySummary {
	r.locker.Lock()
	defer r.locker.Unlock()

	return LobbySummary{
		ID:          r.id,
		Code:        r.code,
		Name:        r.name,
		State:       r.state,
		PlayerCount: len(r.activeGuessersLocked()),
		MaxPlayers:  r.settings.MaxPlayers,
		IsPublic:    r.settings.IsPublic,
	}
}

// IsPublic reports lobby-browser visibility.
func (r *GameRoom) IsPublic() bool {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.settings.IsPublic
}
