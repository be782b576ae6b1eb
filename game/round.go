package game

import (
	"encoding/json"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxGuessPoints = 1000

// Round is one drawing turn. All mutation happens under the owning room's
// lock.
type Round struct {
	ID          uuid.UUID
	RoundNumber int
	DrawerID    uuid.UUID

	Word        string
	WordHint    string
	WordOptions []string

	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int

	Guesses      []Guess
	ChatMessages []ChatMessage
	Strokes      []json.RawMessage
	IsActive     bool
}

// Start begins the turn with the drawer's selected word and builds the
// initial all-underscores hint.
func (r *Round) Start(word string) {
	r.Word = strings.ToLower(strings.TrimSpace(word))
	r.WordHint = buildHint(r.Word)
	r.StartTime = time.Now().UTC()
	r.EndTime = r.StartTime.Add(time.Duration(r.DurationSeconds) * time.Second)
	r.IsActive = true
}

// End closes the turn. The end time is kept if the timer already set it.
func (r *Round) End() {
	r.IsActive = false
	if r.EndTime.IsZero() {
		r.EndTime = time.Now().UTC()
	}
}

func (r *Round) AddGuess(g Guess) {
	r.Guesses = append(r.Guesses, g)
}

func (r *Round) AddChatMessage(m ChatMessage) {
	r.ChatMessages = append(r.ChatMessages, m)
}

// AddStroke buffers a drawing event for replay to late joiners.
func (r *Round) AddStroke(stroke json.RawMessage) {
	r.Strokes = append(r.Strokes, stroke)
}

func (r *Round) ClearStrokes() {
	r.Strokes = nil
}

// CalculatePoints scores a correct guess by elapsed time. Instant guesses
// earn the full pot and the reward decays exponentially down to a floor of
// 100 points.
func (r *Round) CalculatePoints(timeElapsed float64) int {
	if timeElapsed <= 0 {
		return maxGuessPoints
	}

	ratio := timeElapsed / float64(r.DurationSeconds)
	points := int(maxGuessPoints * math.Exp(-2*ratio))
	if points < 100 {
		return 100
	}
	return points
}

// IsExpired reports whether the turn timer has run out.
func (r *Round) IsExpired() bool {
	if r.EndTime.IsZero() {
		return false
	}
	return !time.Now().UTC().Before(r.EndTime)
}

// TimeRemaining is the number of seconds left, clamped at zero.
func (r *Round) TimeRemaining() float64 {
	if r.EndTime.IsZero() {
		return 0
	}
	remaining := time.Until(r.EndTime).Seconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RevealHint uncovers revealCount random hidden letters and returns the
// updated hint.
func (r *Round) RevealHint(revealCount int) string {
	if r.Word == "" {
		return r.WordHint
	}
	if revealCount <= 0 {
		revealCount = 1
	}

	mapping := hintCharMapping(r.Word)
	letters := wordLetters(r.Word)

	hint := []byte(r.WordHint)
	var unrevealed []int
	for i := range letters {
		pos := mapping[i]
		if pos < len(hint) && hint[pos] == '_' {
			unrevealed = append(unrevealed, i)
		}
	}
	if len(unrevealed) == 0 {
		return r.WordHint
	}

	rand.Shuffle(len(unrevealed), func(i, j int) {
		unrevealed[i], unrevealed[j] = unrevealed[j], unrevealed[i]
	})
	if revealCount > len(unrevealed) {
		revealCount = len(unrevealed)
	}
	for _, i := range unrevealed[:revealCount] {
		hint[mapping[i]] = letters[i]
	}

	r.WordHint = string(hint)
	return r.WordHint
}

// buildHint renders the word as underscores: letters of a word separated by
// single spaces, words separated by three spaces.
func buildHint(word string) string {
	words := strings.Split(word, " ")
	hints := make([]string, 0, len(words))
	for _, w := range words {
		underscores := make([]string, len(w))
		for i := range underscores {
			underscores[i] = "_"
		}
		hints = append(hints, strings.Join(underscores, " "))
	}
	return strings.Join(hints, "   ")
}

// hintCharMapping maps each letter index of the word (spaces excluded) to
// its character position inside the rendered hint. Letters occupy every
// other slot within a word; the three-space gap between words advances the
// cursor past the separator to the next word's first slot.
func hintCharMapping(word string) []int {
	var mapping []int
	pos := 0
	words := strings.Split(word, " ")

	for wi, w := range words {
		for range w {
			mapping = append(mapping, pos)
			pos += 2
		}
		if wi < len(words)-1 {
			pos += 2
		}
	}
	return mapping
}

func wordLetters(word string) []byte {
	letters := make([]byte, 0, len(word))
	for i := 0; i < len(word); i++ {
		if word[i] != ' ' {
			letters = append(letters, word[i])
		}
	}
	return letters
}

// RoundSnapshot is the broadcast view of the current turn. The secret word
// is never included; guessers only ever see the hint.
type RoundSnapshot struct {
	ID            uuid.UUID         `json:"id"`
	RoundNumber   int               `json:"round_number"`
	DrawerID      uuid.UUID         `json:"drawer_id"`
	WordHint      string            `json:"word_hint"`
	TimeRemaining float64           `json:"time_remaining"`
	Strokes       []json.RawMessage `json:"strokes,omitempty"`
}

func (r *Round) snapshot() RoundSnapshot {
	return RoundSnapshot{
		ID:            r.ID,
		RoundNumber:   r.RoundNumber,
		DrawerID:      r.DrawerID,
		WordHint:      r.WordHint,
		TimeRemaining: r.TimeRemaining(),
		Strokes:       append([]json.RawMessage(nil), r.Strokes...),
	}
}
