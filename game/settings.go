package game

import "strings"

// GameSettings holds the host-configurable knobs of a room.
type GameSettings struct {
	IsPublic             bool     `json:"is_public"`
	RoundDurationSeconds int      `json:"round_duration_seconds"`
	RoundsPerGame        int      `json:"rounds_per_game"`
	MaxPlayers           int      `json:"max_players"`
	AllowCustomWords     bool     `json:"allow_custom_words"`
	CustomWords          []string `json:"custom_words,omitempty"`
	CustomWordsOnly      bool     `json:"custom_words_only"`
	HintsEnabled         bool     `json:"hints_enabled"`
	HintIntervals        []int    `json:"hint_intervals"`
	DrawerPointsShare    float64  `json:"drawer_points_share"`
}

// DefaultSettings returns the stock room configuration. Rooms are private by
// default and need the join code.
func DefaultSettings() GameSettings {
	return GameSettings{
		IsPublic:             false,
		RoundDurationSeconds: 80,
		RoundsPerGame:        8,
		MaxPlayers:           8,
		AllowCustomWords:     true,
		HintsEnabled:         true,
		HintIntervals:        []int{20, 40, 60},
		DrawerPointsShare:    0.5,
	}
}

// AddCustomWord appends a word to the custom pool, lowercased and deduped.
func (s *GameSettings) AddCustomWord(word string) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return
	}
	for _, w := range s.CustomWords {
		if w == normalized {
			return
		}
	}
	s.CustomWords = append(s.CustomWords, normalized)
}

// RemoveCustomWord drops a word from the custom pool.
func (s *GameSettings) RemoveCustomWord(word string) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	for i, w := range s.CustomWords {
		if w == normalized {
			s.CustomWords = append(s.CustomWords[:i], s.CustomWords[i+1:]...)
			return
		}
	}
}

func (s *GameSettings) clone() GameSettings {
	out := *s
	out.CustomWords = append([]string(nil), s.CustomWords...)
	out.HintIntervals = append([]int(nil), s.HintIntervals...)
	return out
}
