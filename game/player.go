package game

import (
	"time"

	"github.com/google/uuid"
)

// Player is a participant in a room. Fields are mutated only while holding
// the room lock; external readers get copies via snapshots.
type Player struct {
	ID         uuid.UUID
	UserID     string
	UserName   string
	AvatarURL  string
	AuthUserID uuid.UUID // zero when the player is anonymous

	Score           int
	IsHost          bool
	IsSpectator     bool
	ConnectionState PlayerState
	HasGuessed      bool
	GuessTime       float64

	JoinedAt time.Time
	LastSeen time.Time
}

// NewPlayer builds a connected player with a fresh ID.
func NewPlayer(userID, userName string) *Player {
	now := time.Now().UTC()
	return &Player{
		ID:              uuid.New(),
		UserID:          userID,
		UserName:        userName,
		ConnectionState: PlayerConnected,
		JoinedAt:        now,
		LastSeen:        now,
	}
}

// ResetRoundState clears the per-turn guessing flags.
func (p *Player) ResetRoundState() {
	p.HasGuessed = false
	p.GuessTime = 0
}

func (p *Player) AwardPoints(points int) {
	p.Score += points
}

// MarkActive refreshes the activity timestamp used for stale-connection
// sweeps.
func (p *Player) MarkActive() {
	p.LastSeen = time.Now().UTC()
}

// PlayerSnapshot is the read-only view of a player used in broadcasts.
type PlayerSnapshot struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Score       int       `json:"score"`
	IsHost      bool      `json:"is_host"`
	IsSpectator bool      `json:"is_spectator"`
	HasGuessed  bool      `json:"has_guessed"`
	Connected   bool      `json:"connected"`
}

// Snapshot copies the player's broadcast view.
func (p *Player) Snapshot() PlayerSnapshot {
	return p.snapshot()
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:          p.ID,
		UserID:      p.UserID,
		UserName:    p.UserName,
		AvatarURL:   p.AvatarURL,
		Score:       p.Score,
		IsHost:      p.IsHost,
		IsSpectator: p.IsSpectator,
		HasGuessed:  p.HasGuessed,
		Connected:   p.ConnectionState == PlayerConnected,
	}
}
