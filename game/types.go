// Package game implements the room and round lifecycle for the drawing
// guessing game: lobbies, turn rotation, word selection, guess scoring and
// host moderation actions.
package game

import (
	"time"

	"github.com/google/uuid"
)

// GameState is the phase a room is in. Rooms progress
// lobby -> word_selection -> drawing -> round_end and either loop back to
// word_selection for the next turn or finish at game_over.
type GameState string

const (
	StateLobby         GameState = "lobby"
	StateWordSelection GameState = "word_selection"
	StateDrawing       GameState = "drawing"
	StateRoundEnd      GameState = "round_end"
	StateGameOver      GameState = "game_over"
)

// PlayerState tracks a player's connection to the room.
type PlayerState string

const (
	PlayerConnected    PlayerState = "connected"
	PlayerDisconnected PlayerState = "disconnected"
	PlayerLeft         PlayerState = "left"
)

// GuessResult classifies a single guess attempt.
type GuessResult string

const (
	GuessCorrect        GuessResult = "correct"
	GuessClose          GuessResult = "close"
	GuessWrong          GuessResult = "wrong"
	GuessAlreadyGuessed GuessResult = "already_guessed"
	GuessDrawer         GuessResult = "drawer"
	GuessInvalid        GuessResult = "invalid"
)

// ChatMessageType distinguishes chat entries in the round log.
type ChatMessageType string

const (
	ChatGuess   ChatMessageType = "guess"
	ChatSystem  ChatMessageType = "system"
	ChatHint    ChatMessageType = "hint"
	ChatCorrect ChatMessageType = "correct"
	ChatPlain   ChatMessageType = "chat"
)

// Guess records one guess attempt inside a round.
type Guess struct {
	ID            uuid.UUID   `json:"id"`
	PlayerID      uuid.UUID   `json:"player_id"`
	PlayerName    string      `json:"player_name"`
	Text          string      `json:"text"`
	Result        GuessResult `json:"result"`
	PointsAwarded int         `json:"points_awarded"`
	TimeElapsed   float64     `json:"time_elapsed"`
	Timestamp     time.Time   `json:"timestamp"`
}

// ChatMessage is an entry in a round's chat log. SenderID is the zero UUID
// for system messages.
type ChatMessage struct {
	ID         uuid.UUID       `json:"id"`
	Type       ChatMessageType `json:"type"`
	SenderID   uuid.UUID       `json:"sender_id"`
	SenderName string          `json:"sender_name"`
	Content    string          `json:"content"`
	Timestamp  time.Time       `json:"timestamp"`
}

// SystemMessage builds a system chat entry.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{
		ID:         uuid.New(),
		Type:       ChatSystem,
		SenderName: "System",
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}
}

// HintMessage builds the public "is close" entry for a near-miss guess.
func HintMessage(playerName string) ChatMessage {
	return ChatMessage{
		ID:         uuid.New(),
		Type:       ChatHint,
		SenderName: playerName,
		Content:    playerName + " is close!",
		Timestamp:  time.Now().UTC(),
	}
}
