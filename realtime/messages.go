// Package realtime is the WebSocket layer: per-connection sessions, per-room
// fan-out, the lobby browser feed and the round countdown scheduler. All
// game state mutation goes through the game service; this package only moves
// messages.
package realtime

import (
	"encoding/json"

	"github.com/google/uuid"

	"api/game"
)

// InboundType is the closed set of client message types. Dispatch over this
// set is exhaustive, with a single unknown-type fallback.
type InboundType string

const (
	InLeave          InboundType = "leave"
	InStartGame      InboundType = "start_game"
	InSelectWord     InboundType = "select_word"
	InGuess          InboundType = "guess"
	InChat           InboundType = "chat"
	InDraw           InboundType = "draw"
	InDrawShape      InboundType = "draw_shape"
	InFill           InboundType = "fill"
	InClear          InboundType = "clear"
	InKickPlayer     InboundType = "kick_player"
	InBanPlayer      InboundType = "ban_player"
	InUnbanPlayer    InboundType = "unban_player"
	InTransferHost   InboundType = "transfer_host"
	InUpdateSettings InboundType = "update_settings"
	InNextRound      InboundType = "next_round"
	InResetGame      InboundType = "reset_game"
)

// InboundMessage is the envelope every client frame decodes into. Data is
// decoded a second time into the variant payload for the given type.
type InboundMessage struct {
	Type InboundType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type selectWordPayload struct {
	Word string `json:"word"`
}

type guessPayload struct {
	Text string `json:"text"`
}

type chatPayload struct {
	Text string `json:"text"`
}

type targetPlayerPayload struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type unbanPayload struct {
	UserID string `json:"user_id"`
}

type updateSettingsPayload struct {
	Settings game.GameSettings `json:"settings"`
}

// Outbound event types.
const (
	EvRoomState       = "room_state"
	EvPlayerJoined    = "player_joined"
	EvPlayerLeft      = "player_left"
	EvPlayerKicked    = "player_kicked"
	EvPlayerBanned    = "player_banned"
	EvYouWereKicked   = "you_were_kicked"
	EvYouWereBanned   = "you_were_banned"
	EvHostTransferred = "host_transferred"
	EvGameStarted     = "game_started"
	EvRoundStarted    = "round_started"
	EvWordOptions     = "word_options"
	EvWordSelected    = "word_selected"
	EvTimerUpdate     = "timer_update"
	EvHintUpdate      = "hint_update"
	EvGuessResult     = "guess_result"
	EvCorrectGuess    = "correct_guess"
	EvChatMessage     = "chat_message"
	EvScoreUpdate     = "score_update"
	EvRoundEnd        = "round_end"
	EvGameOver        = "game_over"
	EvDrawStroke      = "draw_stroke"
	EvClearCanvas     = "clear_canvas"
	EvSettingsUpdated = "settings_updated"
	EvError           = "error"

	// Lobby browser feed.
	EvLobbyList   = "lobby_list"
	EvRoomCreated = "room_created"
	EvRoomUpdated = "room_updated"
	EvRoomClosed  = "room_closed"
)

// Event is the envelope for every server-to-client frame.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func errorEvent(reason string) Event {
	return Event{Type: EvError, Data: map[string]string{"reason": reason}}
}
